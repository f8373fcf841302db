package http

import (
	"net/http"

	"github.com/Sentinel-Gate/storefront/internal/service"
)

func (h *APIHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req service.OrderInput
	if err := h.readJSON(w, r, &req); err != nil {
		h.respondBadBody(w, r)
		return
	}

	caller := UserFromContext(r.Context())
	o, err := h.orders.Create(r.Context(), caller.ID, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.OrdersCreated.Inc()
	}
	h.respondJSON(w, r, http.StatusCreated, o)
}

func (h *APIHandler) handleListMyOrders(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	orders, err := h.orders.ListMine(r.Context(), caller.ID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, orders)
}

func (h *APIHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), r.PathValue("id"), UserFromContext(r.Context()))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, o)
}

func (h *APIHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, orders)
}

func (h *APIHandler) handleDeliverOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Deliver(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, o)
}
