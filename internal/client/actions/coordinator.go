// Package actions holds the async resource coordinators. Each coordinator
// runs one business operation: it dispatches the REQUEST transition,
// makes a single adapter call, then dispatches exactly one SUCCESS or FAIL.
// Coordinators may be called from independent goroutines; the Store
// serializes their transitions. There is no cancellation between calls,
// so when two calls for the same slice overlap the last response wins.
package actions

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/client/state"
	"github.com/Sentinel-Gate/storefront/internal/domain/order"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

const instrumentationName = "github.com/Sentinel-Gate/storefront/internal/client/actions"

// API is the set of resource adapters the coordinators call.
// *api.Client implements it.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (*user.Session, error)
	Register(ctx context.Context, reg api.Registration) (*user.Session, error)
	GetUserDetails(ctx context.Context, id, token string) (*user.Profile, error)
	UpdateProfile(ctx context.Context, upd api.ProfileUpdate, token string) (*user.Session, error)
	ListUsers(ctx context.Context, token string) ([]user.Profile, error)
	UpdateUser(ctx context.Context, id string, upd api.UserUpdate, token string) (*user.Profile, error)
	DeleteUser(ctx context.Context, id, token string) (string, error)

	ListProducts(ctx context.Context, q api.ProductQuery) (*product.Page, error)
	TopProducts(ctx context.Context) ([]product.Product, error)
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	CreateProduct(ctx context.Context, token string) (*product.Product, error)
	UpdateProduct(ctx context.Context, id string, upd api.ProductUpdate, token string) (*product.Product, error)
	DeleteProduct(ctx context.Context, id, token string) (string, error)
	CreateReview(ctx context.Context, id string, review api.Review, token string) (string, error)

	CreateOrder(ctx context.Context, in api.NewOrder, token string) (*order.Order, error)
	GetOrder(ctx context.Context, id, token string) (*order.Order, error)
	ListMyOrders(ctx context.Context, token string) ([]order.Order, error)
	ListOrders(ctx context.Context, token string) ([]order.Order, error)
	DeliverOrder(ctx context.Context, id, token string) (*order.Order, error)
}

var _ API = (*api.Client)(nil)

// Coordinator runs business operations against a Store.
type Coordinator struct {
	store  *state.Store
	api    API
	token  state.TokenProvider
	tracer trace.Tracer
	logger *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTracerProvider sets where coordinator spans go. The default is the
// global provider, which is a no-op unless one was installed.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Coordinator) {
		c.tracer = tp.Tracer(instrumentationName)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithTokenProvider overrides where the session token is read from. The
// default reads it from the store.
func WithTokenProvider(p state.TokenProvider) Option {
	return func(c *Coordinator) {
		c.token = p
	}
}

// New creates a Coordinator dispatching into store and calling client.
func New(store *state.Store, client API, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  store,
		api:    client,
		token:  store.Token,
		tracer: otel.Tracer(instrumentationName),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the store the coordinator dispatches into.
func (c *Coordinator) Store() *state.Store {
	return c.store
}

// run executes one request lifecycle for resource r inside a span named
// op. call receives the session token as read after REQUEST was applied;
// an absent token is passed as "" and the call is still made. The returned
// error is the adapter's, for callers that want it; the slice only ever
// sees its message.
func run[T any](ctx context.Context, c *Coordinator, op string, r state.Resource, call func(ctx context.Context, token string) (T, error)) (T, error) {
	ctx, span := c.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("storefront.resource", string(r)),
	))
	defer span.End()

	c.store.Dispatch(r.Request())

	token := c.token()
	span.SetAttributes(attribute.Bool("storefront.authenticated", token != ""))

	result, err := call(ctx, token)
	if err != nil {
		msg := api.Message(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		c.logger.Debug("operation failed", "operation", op, "error", msg)
		c.store.Dispatch(r.Fail(msg))
		var zero T
		return zero, err
	}

	c.store.Dispatch(r.Success(result))
	span.SetStatus(codes.Ok, "")
	return result, nil
}

// span starts a span for operations that make no request lifecycle.
func (c *Coordinator) span(ctx context.Context, op string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, op)
}
