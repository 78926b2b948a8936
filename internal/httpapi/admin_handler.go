package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thejayadad/seafoodapp/internal/admin"
	"github.com/thejayadad/seafoodapp/internal/menu"
	"github.com/thejayadad/seafoodapp/internal/order"
)

type AdminHandler struct {
	store   *admin.Store
	orders  order.Repository
	catalog menu.Repository
}

func NewAdminHandler(store *admin.Store, orders order.Repository, catalog menu.Repository) *AdminHandler {
	return &AdminHandler{store: store, orders: orders, catalog: catalog}
}

type overview struct {
	OrdersToday       int   `json:"ordersToday"`
	RevenueTodayCents int64 `json:"revenueTodayCents"`
	PendingOrders     int   `json:"pendingOrders"`
}

func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.ListAll(ctx, 500)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var kpi overview
	for _, o := range orders {
		if o.Status == order.StatusPending {
			kpi.PendingOrders++
		}
		if o.CreatedAt.Before(startOfDay) {
			continue
		}
		kpi.OrdersToday++
		switch o.Status {
		case order.StatusPending, order.StatusCanceled:
			// not collected (yet)
		default:
			kpi.RevenueTodayCents += o.SubtotalCents
		}
	}

	writeJSON(w, http.StatusOK, kpi)
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.ListAll(ctx, 200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing orderId")
		return
	}

	var body struct {
		Status order.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.orders.UpdateStatus(ctx, orderID, body.Status); err != nil {
		if errors.Is(err, order.ErrIllegalTransition) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(body.Status)})
}

func (h *AdminHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var it menu.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if it.Name == "" || it.Slug == "" || it.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "name, slug and categoryId are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.catalog.CreateItem(ctx, &it); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	writeJSON(w, http.StatusCreated, it)
}

func (h *AdminHandler) SetItemAvailability(w http.ResponseWriter, r *http.Request) {
	h.updateItem(w, r, func(ctx context.Context, itemID string, body itemUpdate) error {
		return h.catalog.SetAvailable(ctx, itemID, body.Available)
	})
}

func (h *AdminHandler) SetItemPrice(w http.ResponseWriter, r *http.Request) {
	h.updateItem(w, r, func(ctx context.Context, itemID string, body itemUpdate) error {
		if body.PriceCents <= 0 {
			return errBadItemUpdate
		}
		return h.catalog.SetPrice(ctx, itemID, body.PriceCents)
	})
}

func (h *AdminHandler) MoveItem(w http.ResponseWriter, r *http.Request) {
	h.updateItem(w, r, func(ctx context.Context, itemID string, body itemUpdate) error {
		if body.CategoryID == "" {
			return errBadItemUpdate
		}
		return h.catalog.MoveItem(ctx, itemID, body.CategoryID)
	})
}

func (h *AdminHandler) ReorderItem(w http.ResponseWriter, r *http.Request) {
	h.updateItem(w, r, func(ctx context.Context, itemID string, body itemUpdate) error {
		return h.catalog.ReorderItem(ctx, itemID, body.Position)
	})
}

type itemUpdate struct {
	Available  bool   `json:"available"`
	PriceCents int64  `json:"priceCents"`
	CategoryID string `json:"categoryId"`
	Position   int    `json:"position"`
}

var errBadItemUpdate = errors.New("bad item update")

func (h *AdminHandler) updateItem(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, itemID string, body itemUpdate) error) {

	itemID := chi.URLParam(r, "itemId")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "missing itemId")
		return
	}

	var body itemUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := apply(ctx, itemID, body); err != nil {
		switch {
		case errors.Is(err, errBadItemUpdate):
			writeError(w, http.StatusBadRequest, "invalid item update")
		case errors.Is(err, menu.ErrNotFound):
			writeError(w, http.StatusNotFound, "item not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update item")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AdminHandler) GetHours(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Hours())
}

func (h *AdminHandler) SetHours(w http.ResponseWriter, r *http.Request) {
	var body admin.DayHours
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.store.SetHours(body.Day, body.Open, body.Close); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.store.Hours())
}

func (h *AdminHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Holidays())
}

func (h *AdminHandler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var body admin.Holiday
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.store.AddHoliday(body.DateISO, body.Reason); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, h.store.Holidays())
}

func (h *AdminHandler) RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	dateISO := chi.URLParam(r, "dateISO")
	if dateISO == "" {
		writeError(w, http.StatusBadRequest, "missing date")
		return
	}

	h.store.RemoveHoliday(dateISO)
	writeJSON(w, http.StatusOK, h.store.Holidays())
}

func (h *AdminHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Zones())
}

func (h *AdminHandler) AddZone(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Postal string `json:"postal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Postal == "" {
		writeError(w, http.StatusBadRequest, "missing postal")
		return
	}

	h.store.AddZone(body.Postal)
	writeJSON(w, http.StatusCreated, h.store.Zones())
}

func (h *AdminHandler) RemoveZone(w http.ResponseWriter, r *http.Request) {
	postal := chi.URLParam(r, "postal")
	if postal == "" {
		writeError(w, http.StatusBadRequest, "missing postal")
		return
	}

	h.store.RemoveZone(postal)
	writeJSON(w, http.StatusOK, h.store.Zones())
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Settings())
}

func (h *AdminHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key string `json:"key"`
		On  bool   `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.store.SetSetting(body.Key, body.On); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.store.Settings())
}
