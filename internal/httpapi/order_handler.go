package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thejayadad/seafoodapp/internal/order"
)

type OrderHandler struct {
	repo order.Repository
}

func NewOrderHandler(repo order.Repository) *OrderHandler {
	return &OrderHandler{repo: repo}
}

func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.repo.ListByUser(ctx, UserEmail(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// CancelMyOrder cancels the caller's own pending order. A non-pending order
// is already processed and the request is a harmless no-op.
func (h *OrderHandler) CancelMyOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing orderId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.repo.GetByID(ctx, orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if o == nil || o.UserEmail != UserEmail(r.Context()) {
		// Do not leak other users' order ids.
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	if o.Status != order.StatusPending {
		writeJSON(w, http.StatusOK, map[string]string{"status": string(o.Status)})
		return
	}

	if err := h.repo.UpdateStatus(ctx, orderID, order.StatusCanceled); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to cancel order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(order.StatusCanceled)})
}
