package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thejayadad/seafoodapp/internal/cart"
	"github.com/thejayadad/seafoodapp/internal/menu"
	"github.com/thejayadad/seafoodapp/internal/pricing"
)

// CartHandler mutates the cookie-persisted cart. The cookie is the only
// store; concurrent tabs race with last-write-wins semantics.
type CartHandler struct {
	catalog menu.Repository
}

func NewCartHandler(catalog menu.Repository) *CartHandler {
	return &CartHandler{catalog: catalog}
}

type cartView struct {
	Cart   *cart.Cart     `json:"cart"`
	Totals pricing.Totals `json:"totals"`
}

func respondCart(w http.ResponseWriter, c *cart.Cart) {
	writeJSON(w, http.StatusOK, cartView{Cart: c, Totals: pricing.Compute(c)})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondCart(w, cart.ReadCookie(r))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MenuItemID string `json:"menuItemId"`
		Qty        int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.MenuItemID == "" {
		writeError(w, http.StatusBadRequest, "missing menuItemId")
		return
	}

	line, ok := h.buildLine(w, r, body.MenuItemID, func(it menu.Item, qty int) (cart.Line, error) {
		return cart.NewLine(it, qty)
	}, body.Qty)
	if !ok {
		return
	}

	c := cart.ReadCookie(r)
	c.Add(line)
	cart.WriteCookie(w, c)
	respondCart(w, c)
}

func (h *CartHandler) AddConfiguredItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MenuItemID string   `json:"menuItemId"`
		Qty        int      `json:"qty"`
		Size       string   `json:"size"`
		AddonIDs   []string `json:"addonIds"`
		Notes      string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.MenuItemID == "" {
		writeError(w, http.StatusBadRequest, "missing menuItemId")
		return
	}

	line, ok := h.buildLine(w, r, body.MenuItemID, func(it menu.Item, qty int) (cart.Line, error) {
		return cart.NewConfiguredLine(it, qty, body.Size, body.AddonIDs, body.Notes)
	}, body.Qty)
	if !ok {
		return
	}

	c := cart.ReadCookie(r)
	c.Add(line)
	cart.WriteCookie(w, c)
	respondCart(w, c)
}

func (h *CartHandler) buildLine(w http.ResponseWriter, r *http.Request, itemID string,
	build func(menu.Item, int) (cart.Line, error), qty int) (cart.Line, bool) {

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it, err := h.catalog.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return cart.Line{}, false
		}
		writeError(w, http.StatusInternalServerError, "failed to load item")
		return cart.Line{}, false
	}

	line, err := build(it, qty)
	if err != nil {
		if errors.Is(err, cart.ErrItemUnavailable) {
			writeError(w, http.StatusConflict, "item unavailable")
			return cart.Line{}, false
		}
		writeError(w, http.StatusInternalServerError, "failed to build line")
		return cart.Line{}, false
	}
	return line, true
}

func (h *CartHandler) SetQty(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineId")
	if lineID == "" {
		writeError(w, http.StatusBadRequest, "missing lineId")
		return
	}

	var body struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	c := cart.ReadCookie(r)
	c.SetQty(lineID, body.Qty)
	cart.WriteCookie(w, c)
	respondCart(w, c)
}

func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineId")
	if lineID == "" {
		writeError(w, http.StatusBadRequest, "missing lineId")
		return
	}

	c := cart.ReadCookie(r)
	c.RemoveLine(lineID)
	cart.WriteCookie(w, c)
	respondCart(w, c)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart.ClearCookie(w)
	respondCart(w, &cart.Cart{})
}
