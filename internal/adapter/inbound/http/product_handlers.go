package http

import (
	"net/http"
	"strconv"

	"github.com/Sentinel-Gate/storefront/internal/service"
)

// handleListProducts serves GET /api/products?keyword=&pageNumber=&pageSize=.
// Missing or malformed numbers fall back to the first page and the
// configured page size.
func (h *APIHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("pageNumber"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageSize > 100 {
		pageSize = 100
	}

	result, err := h.products.List(r.Context(), q.Get("keyword"), page, pageSize)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondCacheable(w, r, result)
}

func (h *APIHandler) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Top(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondCacheable(w, r, products)
}

func (h *APIHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondCacheable(w, r, p)
}

func (h *APIHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	p, err := h.products.CreateSample(r.Context(), caller.ID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, p)
}

func (h *APIHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req service.ProductInput
	if err := h.readJSON(w, r, &req); err != nil {
		h.respondBadBody(w, r)
		return
	}

	p, err := h.products.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, p)
}

func (h *APIHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, map[string]string{"message": "Product removed"})
}

func (h *APIHandler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req service.ReviewInput
	if err := h.readJSON(w, r, &req); err != nil {
		h.respondBadBody(w, r)
		return
	}

	caller := UserFromContext(r.Context())
	if err := h.products.AddReview(r.Context(), r.PathValue("id"), caller, req); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, map[string]string{"message": "Review added"})
}
