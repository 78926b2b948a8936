package checkout

import (
	"context"

	"github.com/thejayadad/seafoodapp/internal/order"
)

// ConfirmResult reports the outcome of a confirmation attempt. Failures are
// expected conditions carrying a human-readable reason, not errors.
type ConfirmResult struct {
	OK      bool   `json:"ok"`
	OrderID string `json:"orderId,omitempty"`
	Email   string `json:"email,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

const (
	ReasonMissingSession = "missing session id"
	ReasonOrderNotFound  = "order not found for this session"
	ReasonNotPaid        = "payment not completed yet"
	ReasonSessionLookup  = "could not load payment session"
)

// Confirm re-queries the processor for the session and transitions the
// matching order to paid exactly once. Re-invocation with an already-paid
// order is a no-op success. Confirm never touches client state; clearing
// the cart is the caller's responsibility once it returns ok.
func (s *Service) Confirm(ctx context.Context, sessionID string) (ConfirmResult, error) {
	if sessionID == "" {
		return ConfirmResult{Reason: ReasonMissingSession}, nil
	}

	sess, err := s.processor.GetSession(ctx, sessionID)
	if err != nil {
		return ConfirmResult{Reason: ReasonSessionLookup}, nil
	}

	o, err := s.orders.GetBySessionID(ctx, sessionID)
	if err != nil {
		return ConfirmResult{}, err
	}
	if o == nil {
		// Fall back to the order id embedded in the session metadata.
		if orderID := sess.Metadata["orderId"]; orderID != "" {
			o, err = s.orders.GetByID(ctx, orderID)
			if err != nil {
				return ConfirmResult{}, err
			}
		}
	}
	if o == nil {
		return ConfirmResult{Reason: ReasonOrderNotFound}, nil
	}

	if !sess.Paid() {
		return ConfirmResult{Reason: ReasonNotPaid}, nil
	}

	// Only a pending order transitions; paid orders (and any later
	// operational substate) are left untouched so re-invocation is a no-op.
	if o.Status == order.StatusPending {
		if err := s.orders.UpdateStatus(ctx, o.ID, order.StatusPaid); err != nil {
			return ConfirmResult{}, err
		}
		if err := s.publisher.PublishOrderPaid(ctx, o.ID, o.UserEmail); err != nil {
			s.logger.Printf("publish OrderPaid for %s: %v", o.ID, err)
		}
	}

	return ConfirmResult{OK: true, OrderID: o.ID, Email: sess.CustomerEmail}, nil
}
