package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/thejayadad/seafoodapp/internal/cart"
	"github.com/thejayadad/seafoodapp/internal/checkout"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// StartCheckout snapshots the cart into a pending order and redirects the
// caller to the processor-hosted payment page. An empty cart redirects back
// to the cart with no side effect.
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	c := cart.ReadCookie(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	url, err := h.service.Start(ctx, UserEmail(r.Context()), c)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
		case errors.Is(err, checkout.ErrNotAuthenticated):
			writeError(w, http.StatusUnauthorized, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	w.Header().Set("Location", url)
	writeJSON(w, http.StatusSeeOther, map[string]string{"url": url})
}

// ConfirmCheckout is the return leg from the payment page. On success it
// clears the cart cookie; confirmation itself never touches client state.
func (h *CheckoutHandler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	res, err := h.service.Confirm(ctx, sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "confirmation failed")
		return
	}

	if !res.OK {
		writeJSON(w, confirmStatus(res.Reason), res)
		return
	}

	cart.ClearCookie(w)
	writeJSON(w, http.StatusOK, res)
}

// confirmStatus maps expected confirmation failures to response codes.
// All of them are informative, non-fatal conditions.
func confirmStatus(reason string) int {
	switch reason {
	case checkout.ReasonMissingSession:
		return http.StatusBadRequest
	case checkout.ReasonOrderNotFound:
		return http.StatusNotFound
	case checkout.ReasonNotPaid:
		return http.StatusConflict
	case checkout.ReasonSessionLookup:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
