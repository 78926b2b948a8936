package httpapi

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/thejayadad/seafoodapp/internal/admin"
	"github.com/thejayadad/seafoodapp/internal/checkout"
	"github.com/thejayadad/seafoodapp/internal/menu"
	"github.com/thejayadad/seafoodapp/internal/order"
	"github.com/thejayadad/seafoodapp/internal/payment"
)

type fakeCatalog struct {
	items map[string]menu.Item

	created []menu.Item
}

func (f *fakeCatalog) ListMenu(ctx context.Context) ([]menu.Section, error) {
	return nil, nil
}

func (f *fakeCatalog) GetItem(ctx context.Context, itemID string) (menu.Item, error) {
	it, ok := f.items[itemID]
	if !ok {
		return menu.Item{}, menu.ErrNotFound
	}
	return it, nil
}

func (f *fakeCatalog) CreateItem(ctx context.Context, it *menu.Item) error {
	if it.ID == "" {
		it.ID = "item-new"
	}
	f.created = append(f.created, *it)
	return nil
}

func (f *fakeCatalog) SetAvailable(ctx context.Context, itemID string, available bool) error {
	if _, ok := f.items[itemID]; !ok {
		return menu.ErrNotFound
	}
	return nil
}

func (f *fakeCatalog) SetPrice(ctx context.Context, itemID string, priceCents int64) error {
	if _, ok := f.items[itemID]; !ok {
		return menu.ErrNotFound
	}
	return nil
}

func (f *fakeCatalog) MoveItem(ctx context.Context, itemID, categoryID string) error { return nil }

func (f *fakeCatalog) ReorderItem(ctx context.Context, itemID string, position int) error {
	return nil
}

type fakeOrders struct {
	orders map[string]*order.Order

	statusUpdates   map[string]order.Status
	updateStatusErr error
}

func (f *fakeOrders) Create(ctx context.Context, o *order.Order) error {
	if o.ID == "" {
		o.ID = "order-1"
	}
	if f.orders == nil {
		f.orders = map[string]*order.Order{}
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrders) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	return f.orders[orderID], nil
}

func (f *fakeOrders) GetBySessionID(ctx context.Context, sessionID string) (*order.Order, error) {
	for _, o := range f.orders {
		if o.StripeSessionID == sessionID {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) ListByUser(ctx context.Context, userEmail string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		if o.UserEmail == userEmail {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListAll(ctx context.Context, limit int) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrders) ListStalePending(ctx context.Context, olderThan time.Time) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeOrders) SetPaymentSession(ctx context.Context, orderID, sessionID, paymentIntentID string) error {
	if o, ok := f.orders[orderID]; ok {
		o.StripeSessionID = sessionID
		o.StripePaymentIntentID = paymentIntentID
	}
	return nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, orderID string, to order.Status) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	if f.statusUpdates == nil {
		f.statusUpdates = map[string]order.Status{}
	}
	f.statusUpdates[orderID] = to
	if o, ok := f.orders[orderID]; ok {
		o.Status = to
	}
	return nil
}

type fakeProcessor struct {
	sessions map[string]payment.Session

	getErr error
}

func (f *fakeProcessor) CreateSession(ctx context.Context, req payment.SessionRequest) (payment.Session, error) {
	return payment.Session{ID: "cs_test", URL: "https://pay.example/cs_test"}, nil
}

func (f *fakeProcessor) GetSession(ctx context.Context, sessionID string) (payment.Session, error) {
	if f.getErr != nil {
		return payment.Session{}, f.getErr
	}
	return f.sessions[sessionID], nil
}

type fakePublisher struct{}

func (fakePublisher) PublishOrderCreated(ctx context.Context, o *order.Order) error { return nil }

func (fakePublisher) PublishOrderPaid(ctx context.Context, orderID, userEmail string) error {
	return nil
}

func lobsterRoll() menu.Item {
	return menu.Item{
		ID:          "item-1",
		CategoryID:  "c1",
		Name:        "Lobster Roll",
		Slug:        "lobster-roll",
		PriceCents:  1799,
		IsAvailable: true,
	}
}

func newTestRouter(catalog *fakeCatalog, orders *fakeOrders, proc *fakeProcessor) http.Handler {
	logger := log.New(io.Discard, "", 0)
	svc := checkout.NewService(orders, proc, fakePublisher{},
		"https://shop.example/success", "https://shop.example/cancel", logger)

	return NewRouter(Handlers{
		Menu:     NewMenuHandler(catalog),
		Cart:     NewCartHandler(catalog),
		Checkout: NewCheckoutHandler(svc),
		Orders:   NewOrderHandler(orders),
		Admin:    NewAdminHandler(admin.NewStore(), orders, catalog),
	})
}
