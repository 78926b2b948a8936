package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/thejayadad/seafoodapp/internal/cart"
	"github.com/thejayadad/seafoodapp/internal/order"
	"github.com/thejayadad/seafoodapp/internal/payment"
	"github.com/thejayadad/seafoodapp/internal/pricing"
)

var (
	ErrNotAuthenticated = errors.New("you must be signed in to checkout")
	ErrEmptyCart        = errors.New("cart is empty")
)

// EventPublisher emits order lifecycle events. Publishing is best-effort:
// checkout never fails on it.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
	PublishOrderPaid(ctx context.Context, orderID, userEmail string) error
}

type Service struct {
	orders    order.Repository
	processor payment.Processor
	publisher EventPublisher
	logger    *log.Logger

	successURL string
	cancelURL  string
}

func NewService(orders order.Repository, processor payment.Processor, publisher EventPublisher,
	successURL, cancelURL string, logger *log.Logger) *Service {
	return &Service{
		orders:     orders,
		processor:  processor,
		publisher:  publisher,
		logger:     logger,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// Start snapshots the cart into a pending order, opens a payment session
// with the processor, and returns the hosted payment URL.
//
// The cart is deliberately not cleared here; clearing waits for payment
// confirmation so an abandoned payment does not lose the cart. A pending
// order left behind by a mid-flow failure is picked up by the Reconciler.
func (s *Service) Start(ctx context.Context, userEmail string, c *cart.Cart) (string, error) {
	if userEmail == "" {
		return "", ErrNotAuthenticated
	}
	if c.IsEmpty() {
		return "", ErrEmptyCart
	}

	totals := pricing.Compute(c)

	o := &order.Order{
		UserEmail:     userEmail,
		Status:        order.StatusPending,
		SubtotalCents: totals.SubtotalCents,
	}
	for _, l := range c.Lines {
		o.Items = append(o.Items, order.Item{
			MenuItemID:     l.MenuItemID,
			Name:           l.Name,
			Quantity:       l.Qty,
			UnitPriceCents: l.UnitPriceCents,
		})
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	sess, err := s.processor.CreateSession(ctx, payment.SessionRequest{
		Lines:      toProcessorLines(c),
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		Metadata: map[string]string{
			"orderId":   o.ID,
			"userEmail": userEmail,
		},
	})
	if err != nil {
		return "", fmt.Errorf("create payment session: %w", err)
	}

	if err := s.orders.SetPaymentSession(ctx, o.ID, sess.ID, sess.PaymentIntentID); err != nil {
		return "", fmt.Errorf("persist session id: %w", err)
	}

	if err := s.publisher.PublishOrderCreated(ctx, o); err != nil {
		s.logger.Printf("publish OrderCreated for %s: %v", o.ID, err)
	}

	return sess.URL, nil
}

// toProcessorLines translates cart lines into processor line items. The
// description is assembled from add-on labels and notes.
func toProcessorLines(c *cart.Cart) []payment.LineItem {
	lines := make([]payment.LineItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, payment.LineItem{
			Name:            l.Name,
			Description:     lineDescription(l),
			UnitAmountCents: l.UnitPriceCents,
			Quantity:        int64(l.Qty),
		})
	}
	return lines
}

func lineDescription(l cart.Line) string {
	if l.Meta == nil {
		return ""
	}

	var parts []string
	if len(l.Meta.AddonIDs) > 0 {
		labels := make([]string, 0, len(l.Meta.AddonIDs))
		for _, id := range l.Meta.AddonIDs {
			if label := l.Meta.AddonLabels[id]; label != "" {
				labels = append(labels, label)
			}
		}
		if len(labels) > 0 {
			parts = append(parts, "Add-ons: "+strings.Join(labels, ", "))
		}
	}
	if notes := strings.TrimSpace(l.Meta.Notes); notes != "" {
		parts = append(parts, "Notes: "+notes)
	}
	return strings.Join(parts, " • ")
}
