package actions

import (
	"context"
	"sync"

	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/domain/order"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

var errNotStubbed = &api.Error{Kind: api.KindServer, Status: 500, Message: "Internal Server Error"}

// fakeAPI answers from the stub funcs set by each test and records the
// token every authenticated call received.
type fakeAPI struct {
	mu     sync.Mutex
	tokens []string

	login          func(api.Credentials) (*user.Session, error)
	register       func(api.Registration) (*user.Session, error)
	updateProfile  func(api.ProfileUpdate) (*user.Session, error)
	getProduct     func(ctx context.Context, id string) (*product.Product, error)
	updateProduct  func(string, api.ProductUpdate) (*product.Product, error)
	listMyOrders   func() ([]order.Order, error)
	createOrder    func(api.NewOrder) (*order.Order, error)
	listProducts   func(api.ProductQuery) (*product.Page, error)
	deleteUser     func(string) (string, error)
	getUserDetails func(string) (*user.Profile, error)
}

func (f *fakeAPI) record(token string) {
	f.mu.Lock()
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
}

func (f *fakeAPI) seenTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

func (f *fakeAPI) Login(_ context.Context, creds api.Credentials) (*user.Session, error) {
	if f.login == nil {
		return nil, errNotStubbed
	}
	return f.login(creds)
}

func (f *fakeAPI) Register(_ context.Context, reg api.Registration) (*user.Session, error) {
	if f.register == nil {
		return nil, errNotStubbed
	}
	return f.register(reg)
}

func (f *fakeAPI) GetUserDetails(_ context.Context, id, token string) (*user.Profile, error) {
	f.record(token)
	if f.getUserDetails == nil {
		return nil, errNotStubbed
	}
	return f.getUserDetails(id)
}

func (f *fakeAPI) UpdateProfile(_ context.Context, upd api.ProfileUpdate, token string) (*user.Session, error) {
	f.record(token)
	if f.updateProfile == nil {
		return nil, errNotStubbed
	}
	return f.updateProfile(upd)
}

func (f *fakeAPI) ListUsers(_ context.Context, token string) ([]user.Profile, error) {
	f.record(token)
	return nil, errNotStubbed
}

func (f *fakeAPI) UpdateUser(_ context.Context, _ string, _ api.UserUpdate, token string) (*user.Profile, error) {
	f.record(token)
	return nil, errNotStubbed
}

func (f *fakeAPI) DeleteUser(_ context.Context, id, token string) (string, error) {
	f.record(token)
	if f.deleteUser == nil {
		return "", errNotStubbed
	}
	return f.deleteUser(id)
}

func (f *fakeAPI) ListProducts(_ context.Context, q api.ProductQuery) (*product.Page, error) {
	if f.listProducts == nil {
		return nil, errNotStubbed
	}
	return f.listProducts(q)
}

func (f *fakeAPI) TopProducts(context.Context) ([]product.Product, error) {
	return nil, errNotStubbed
}

func (f *fakeAPI) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	if f.getProduct == nil {
		return nil, errNotStubbed
	}
	return f.getProduct(ctx, id)
}

func (f *fakeAPI) CreateProduct(_ context.Context, token string) (*product.Product, error) {
	f.record(token)
	return nil, errNotStubbed
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id string, upd api.ProductUpdate, token string) (*product.Product, error) {
	f.record(token)
	if f.updateProduct == nil {
		return nil, errNotStubbed
	}
	return f.updateProduct(id, upd)
}

func (f *fakeAPI) DeleteProduct(_ context.Context, _, token string) (string, error) {
	f.record(token)
	return "", errNotStubbed
}

func (f *fakeAPI) CreateReview(_ context.Context, _ string, _ api.Review, token string) (string, error) {
	f.record(token)
	return "", errNotStubbed
}

func (f *fakeAPI) CreateOrder(_ context.Context, in api.NewOrder, token string) (*order.Order, error) {
	f.record(token)
	if f.createOrder == nil {
		return nil, errNotStubbed
	}
	return f.createOrder(in)
}

func (f *fakeAPI) GetOrder(_ context.Context, _, token string) (*order.Order, error) {
	f.record(token)
	return nil, errNotStubbed
}

func (f *fakeAPI) ListMyOrders(_ context.Context, token string) ([]order.Order, error) {
	f.record(token)
	if f.listMyOrders == nil {
		return nil, errNotStubbed
	}
	return f.listMyOrders()
}

func (f *fakeAPI) ListOrders(_ context.Context, token string) ([]order.Order, error) {
	f.record(token)
	return nil, errNotStubbed
}

func (f *fakeAPI) DeliverOrder(_ context.Context, _, token string) (*order.Order, error) {
	f.record(token)
	return nil, errNotStubbed
}
