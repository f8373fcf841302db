package actions

import (
	"context"

	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/client/state"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
)

// ProductList fetches one page of the catalogue.
func (c *Coordinator) ProductList(ctx context.Context, q api.ProductQuery) (*product.Page, error) {
	return run(ctx, c, "ProductList", state.ProductList, func(ctx context.Context, _ string) (*product.Page, error) {
		return c.api.ListProducts(ctx, q)
	})
}

// ProductDetails fetches product id with its reviews.
func (c *Coordinator) ProductDetails(ctx context.Context, id string) (*product.Product, error) {
	return run(ctx, c, "ProductDetails", state.ProductDetails, func(ctx context.Context, _ string) (*product.Product, error) {
		return c.api.GetProduct(ctx, id)
	})
}

// ProductTopList fetches the best-rated products.
func (c *Coordinator) ProductTopList(ctx context.Context) ([]product.Product, error) {
	return run(ctx, c, "ProductTopList", state.ProductTopList, func(ctx context.Context, _ string) ([]product.Product, error) {
		return c.api.TopProducts(ctx)
	})
}

// ProductCreate asks the server for a new sample product. Admin only.
func (c *Coordinator) ProductCreate(ctx context.Context) (*product.Product, error) {
	return run(ctx, c, "ProductCreate", state.ProductCreate, func(ctx context.Context, token string) (*product.Product, error) {
		return c.api.CreateProduct(ctx, token)
	})
}

// ProductUpdate edits product id. Admin only. On success the catalogue
// caches are dropped.
func (c *Coordinator) ProductUpdate(ctx context.Context, id string, upd api.ProductUpdate) (*product.Product, error) {
	p, err := run(ctx, c, "ProductUpdate", state.ProductUpdate, func(ctx context.Context, token string) (*product.Product, error) {
		return c.api.UpdateProduct(ctx, id, upd, token)
	})
	if err != nil {
		return nil, err
	}
	c.store.ResetGroup(state.CatalogGroup)
	return p, nil
}

// ProductDelete removes product id. Admin only.
func (c *Coordinator) ProductDelete(ctx context.Context, id string) (string, error) {
	return run(ctx, c, "ProductDelete", state.ProductDelete, func(ctx context.Context, token string) (string, error) {
		return c.api.DeleteProduct(ctx, id, token)
	})
}

// ProductCreateReview posts the caller's review of product id.
func (c *Coordinator) ProductCreateReview(ctx context.Context, id string, review api.Review) (string, error) {
	return run(ctx, c, "ProductCreateReview", state.ProductCreateReview, func(ctx context.Context, token string) (string, error) {
		return c.api.CreateReview(ctx, id, review, token)
	})
}
