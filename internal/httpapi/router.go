package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Menu     *MenuHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrderHandler
	Admin    *AdminHandler
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.Menu.GetMenu)
		r.Get("/menu/items/{itemId}", h.Menu.GetItem)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Post("/items/configured", h.Cart.AddConfiguredItem)
			r.Patch("/lines/{lineId}", h.Cart.SetQty)
			r.Delete("/lines/{lineId}", h.Cart.RemoveLine)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireUser)

			r.Post("/checkout", h.Checkout.StartCheckout)
			r.Get("/checkout/confirm", h.Checkout.ConfirmCheckout)

			r.Get("/orders", h.Orders.ListMyOrders)
			r.Post("/orders/{orderId}/cancel", h.Orders.CancelMyOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireUser)

			r.Get("/overview", h.Admin.Overview)

			r.Get("/orders", h.Admin.ListOrders)
			r.Put("/orders/{orderId}/status", h.Admin.SetOrderStatus)

			r.Post("/menu/items", h.Admin.CreateMenuItem)
			r.Put("/menu/items/{itemId}/availability", h.Admin.SetItemAvailability)
			r.Put("/menu/items/{itemId}/price", h.Admin.SetItemPrice)
			r.Put("/menu/items/{itemId}/category", h.Admin.MoveItem)
			r.Put("/menu/items/{itemId}/position", h.Admin.ReorderItem)

			r.Get("/hours", h.Admin.GetHours)
			r.Put("/hours", h.Admin.SetHours)

			r.Get("/holidays", h.Admin.ListHolidays)
			r.Post("/holidays", h.Admin.AddHoliday)
			r.Delete("/holidays/{dateISO}", h.Admin.RemoveHoliday)

			r.Get("/zones", h.Admin.ListZones)
			r.Post("/zones", h.Admin.AddZone)
			r.Delete("/zones/{postal}", h.Admin.RemoveZone)

			r.Get("/settings", h.Admin.GetSettings)
			r.Put("/settings", h.Admin.SetSetting)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}
