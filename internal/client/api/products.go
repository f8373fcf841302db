package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Sentinel-Gate/storefront/internal/domain/product"
)

// ProductQuery selects a page of the catalogue. Zero values are omitted
// and the server defaults apply.
type ProductQuery struct {
	Keyword  string
	Page     int
	PageSize int
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.Page > 0 {
		v.Set("pageNumber", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ProductUpdate is the full set of editable product fields.
type ProductUpdate struct {
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
}

// Review is a customer's rating of a product.
type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListProducts returns one page of the catalogue.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*product.Page, error) {
	var page product.Page
	if err := c.doRequest(ctx, http.MethodGet, "/api/products"+q.encode(), "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TopProducts returns the best-rated products.
func (c *Client) TopProducts(ctx context.Context) ([]product.Product, error) {
	var products []product.Product
	if err := c.doRequest(ctx, http.MethodGet, "/api/products/top", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a product with its reviews.
func (c *Client) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	if err := c.doRequest(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct asks the server for a new sample product. Admin only.
func (c *Client) CreateProduct(ctx context.Context, token string) (*product.Product, error) {
	var p product.Product
	if err := c.doRequest(ctx, http.MethodPost, "/api/products", token, struct{}{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct replaces the editable fields of product id. Admin only.
func (c *Client) UpdateProduct(ctx context.Context, id string, upd ProductUpdate, token string) (*product.Product, error) {
	var p product.Product
	if err := c.doRequest(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), token, upd, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes product id. Admin only.
func (c *Client) DeleteProduct(ctx context.Context, id, token string) (string, error) {
	var ack messageResponse
	if err := c.doRequest(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), token, nil, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}

// CreateReview posts the caller's review of product id.
func (c *Client) CreateReview(ctx context.Context, id string, review Review, token string) (string, error) {
	var ack messageResponse
	path := "/api/products/" + url.PathEscape(id) + "/reviews"
	if err := c.doRequest(ctx, http.MethodPost, path, token, review, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}
