package checkout

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/thejayadad/seafoodapp/internal/order"
	"github.com/thejayadad/seafoodapp/internal/payment"
)

type fakeRepo struct {
	createFunc           func(ctx context.Context, o *order.Order) error
	getByIDFunc          func(ctx context.Context, orderID string) (*order.Order, error)
	getBySessionIDFunc   func(ctx context.Context, sessionID string) (*order.Order, error)
	listByUserFunc       func(ctx context.Context, userEmail string) ([]order.Order, error)
	listStalePendingFunc func(ctx context.Context, olderThan time.Time) ([]order.Order, error)
	setSessionFunc       func(ctx context.Context, orderID, sessionID, paymentIntentID string) error
	updateStatusFunc     func(ctx context.Context, orderID string, to order.Status) error

	createdOrder   *order.Order
	sessionOrderID string
	sessionID      string
	statusUpdates  map[string]order.Status
}

func (f *fakeRepo) Create(ctx context.Context, o *order.Order) error {
	if o.ID == "" {
		o.ID = "order-1"
	}
	f.createdOrder = o
	if f.createFunc != nil {
		return f.createFunc(ctx, o)
	}
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (f *fakeRepo) GetBySessionID(ctx context.Context, sessionID string) (*order.Order, error) {
	if f.getBySessionIDFunc != nil {
		return f.getBySessionIDFunc(ctx, sessionID)
	}
	return nil, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userEmail string) ([]order.Order, error) {
	if f.listByUserFunc != nil {
		return f.listByUserFunc(ctx, userEmail)
	}
	return nil, nil
}

func (f *fakeRepo) ListAll(ctx context.Context, limit int) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]order.Order, error) {
	if f.listStalePendingFunc != nil {
		return f.listStalePendingFunc(ctx, olderThan)
	}
	return nil, nil
}

func (f *fakeRepo) SetPaymentSession(ctx context.Context, orderID, sessionID, paymentIntentID string) error {
	f.sessionOrderID = orderID
	f.sessionID = sessionID
	if f.setSessionFunc != nil {
		return f.setSessionFunc(ctx, orderID, sessionID, paymentIntentID)
	}
	return nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, orderID string, to order.Status) error {
	if f.statusUpdates == nil {
		f.statusUpdates = map[string]order.Status{}
	}
	f.statusUpdates[orderID] = to
	if f.updateStatusFunc != nil {
		return f.updateStatusFunc(ctx, orderID, to)
	}
	return nil
}

type fakeProcessor struct {
	createFunc func(ctx context.Context, req payment.SessionRequest) (payment.Session, error)
	getFunc    func(ctx context.Context, sessionID string) (payment.Session, error)

	createReq *payment.SessionRequest
}

func (f *fakeProcessor) CreateSession(ctx context.Context, req payment.SessionRequest) (payment.Session, error) {
	f.createReq = &req
	if f.createFunc != nil {
		return f.createFunc(ctx, req)
	}
	return payment.Session{ID: "cs_test", URL: "https://pay.example/cs_test"}, nil
}

func (f *fakeProcessor) GetSession(ctx context.Context, sessionID string) (payment.Session, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, sessionID)
	}
	return payment.Session{ID: sessionID}, nil
}

type fakePublisher struct {
	created []string
	paid    []string

	createdErr error
	paidErr    error
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	f.created = append(f.created, o.ID)
	return f.createdErr
}

func (f *fakePublisher) PublishOrderPaid(ctx context.Context, orderID, userEmail string) error {
	f.paid = append(f.paid, orderID)
	return f.paidErr
}

func newTestService(repo *fakeRepo, proc *fakeProcessor, pub *fakePublisher) *Service {
	return NewService(repo, proc, pub,
		"https://shop.example/success", "https://shop.example/cancel",
		log.New(io.Discard, "", 0))
}
