package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sentinel-Gate/storefront/internal/domain/order"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
	"github.com/Sentinel-Gate/storefront/internal/service"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// APIHandler serves the /api routes.
type APIHandler struct {
	users    *service.UserService
	products *service.ProductService
	orders   *service.OrderService
	metrics  *Metrics
	logger   *slog.Logger
}

// APIOption configures an APIHandler dependency.
type APIOption func(*APIHandler)

// WithUserService sets the account service.
func WithUserService(s *service.UserService) APIOption {
	return func(h *APIHandler) { h.users = s }
}

// WithProductService sets the catalogue service.
func WithProductService(s *service.ProductService) APIOption {
	return func(h *APIHandler) { h.products = s }
}

// WithOrderService sets the order service.
func WithOrderService(s *service.OrderService) APIOption {
	return func(h *APIHandler) { h.orders = s }
}

// WithAPIMetrics sets the metrics recorded by handlers (login attempts,
// orders, 304s). Nil disables them.
func WithAPIMetrics(m *Metrics) APIOption {
	return func(h *APIHandler) { h.metrics = m }
}

// WithAPILogger sets the logger used outside a request scope.
func WithAPILogger(l *slog.Logger) APIOption {
	return func(h *APIHandler) { h.logger = l }
}

// NewAPIHandler creates a new APIHandler with the given options.
func NewAPIHandler(opts ...APIOption) *APIHandler {
	h := &APIHandler{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns an http.Handler with all /api routes registered.
func (h *APIHandler) Routes() http.Handler {
	mux := http.NewServeMux()

	// Users.
	mux.HandleFunc("POST /api/users/login", h.handleLogin)
	mux.HandleFunc("POST /api/users", h.handleRegister)
	mux.Handle("GET /api/users/profile", h.requireAuth(h.handleGetProfile))
	mux.Handle("PUT /api/users/profile", h.requireAuth(h.handleUpdateProfile))
	mux.Handle("GET /api/users", h.requireAdmin(h.handleListUsers))
	mux.Handle("GET /api/users/{id}", h.requireAdmin(h.handleGetUser))
	mux.Handle("PUT /api/users/{id}", h.requireAdmin(h.handleUpdateUser))
	mux.Handle("DELETE /api/users/{id}", h.requireAdmin(h.handleDeleteUser))

	// Catalogue.
	mux.HandleFunc("GET /api/products", h.handleListProducts)
	mux.HandleFunc("GET /api/products/top", h.handleTopProducts)
	mux.HandleFunc("GET /api/products/{id}", h.handleGetProduct)
	mux.Handle("POST /api/products", h.requireAdmin(h.handleCreateProduct))
	mux.Handle("PUT /api/products/{id}", h.requireAdmin(h.handleUpdateProduct))
	mux.Handle("DELETE /api/products/{id}", h.requireAdmin(h.handleDeleteProduct))
	mux.Handle("POST /api/products/{id}/reviews", h.requireAuth(h.handleCreateReview))

	// Orders.
	mux.Handle("POST /api/orders", h.requireAuth(h.handleCreateOrder))
	mux.Handle("GET /api/orders/mine", h.requireAuth(h.handleListMyOrders))
	mux.Handle("GET /api/orders/{id}", h.requireAuth(h.handleGetOrder))
	mux.Handle("GET /api/orders", h.requireAdmin(h.handleListOrders))
	mux.Handle("PUT /api/orders/{id}/deliver", h.requireAdmin(h.handleDeliverOrder))

	// Unknown /api paths answer in the API's own error format.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, r, http.StatusNotFound, "Not Found - "+r.URL.Path)
	})

	return mux
}

// --- JSON helper methods ---

// respondJSON writes a JSON response with the given status code and data.
func (h *APIHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		LoggerFromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes {"message": message} with the given status code.
func (h *APIHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"message": message})
}

// readJSON decodes the request body into v.
func (h *APIHandler) readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// respondServiceError maps a service or store error to a status code and
// message. Unknown errors are logged and reported as 500.
func (h *APIHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.respondError(w, r, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		h.respondError(w, r, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, user.ErrEmailTaken):
		h.respondError(w, r, http.StatusConflict, "User already exists")
	case errors.Is(err, user.ErrNotFound):
		h.respondError(w, r, http.StatusNotFound, "User not found")
	case errors.Is(err, product.ErrAlreadyReviewed):
		h.respondError(w, r, http.StatusConflict, "Product already reviewed")
	case errors.Is(err, product.ErrNotFound):
		h.respondError(w, r, http.StatusNotFound, "Product not found")
	case errors.Is(err, order.ErrNoItems):
		h.respondError(w, r, http.StatusBadRequest, "No order items")
	case errors.Is(err, order.ErrNotFound):
		h.respondError(w, r, http.StatusNotFound, "Order not found")
	default:
		LoggerFromContext(r.Context()).Error("request failed", "error", err)
		h.respondError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func (h *APIHandler) respondBadBody(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, r, http.StatusBadRequest, "Invalid request body")
}
