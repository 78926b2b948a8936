package checkout

import (
	"context"
	"log"
	"time"

	"github.com/thejayadad/seafoodapp/internal/order"
)

// Reconciler sweeps stale pending orders left behind when a checkout flow
// aborted after order creation, or when the customer never returned from the
// payment page. Paid sessions promote the order, expired sessions cancel it,
// still-open sessions are left alone for the next sweep.
type Reconciler struct {
	service  *Service
	interval time.Duration
	after    time.Duration
	logger   *log.Logger
}

func NewReconciler(service *Service, interval, after time.Duration, logger *log.Logger) *Reconciler {
	return &Reconciler{service: service, interval: interval, after: after, logger: logger}
}

// Start runs the sweep loop until the context is cancelled.
func (r *Reconciler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				r.logger.Println("stopping pending-order reconciler")
				return
			case <-ticker.C:
				if err := r.SweepOnce(ctx); err != nil {
					r.logger.Printf("reconcile sweep: %v", err)
				}
			}
		}
	}()
}

// SweepOnce reconciles all pending orders older than the cutoff.
// Per-order failures are logged and the sweep continues.
func (r *Reconciler) SweepOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-r.after)
	stale, err := r.service.orders.ListStalePending(ctx, cutoff)
	if err != nil {
		return err
	}

	for i := range stale {
		if err := r.reconcileOrder(ctx, &stale[i]); err != nil {
			r.logger.Printf("reconcile order %s: %v", stale[i].ID, err)
		}
	}
	return nil
}

func (r *Reconciler) reconcileOrder(ctx context.Context, o *order.Order) error {
	// No session was ever attached: checkout aborted before the processor
	// call, nothing can be collected for it.
	if o.StripeSessionID == "" {
		r.logger.Printf("cancelling orphaned pending order %s (no session)", o.ID)
		return r.service.orders.UpdateStatus(ctx, o.ID, order.StatusCanceled)
	}

	sess, err := r.service.processor.GetSession(ctx, o.StripeSessionID)
	if err != nil {
		return err
	}

	switch {
	case sess.Paid():
		if err := r.service.orders.UpdateStatus(ctx, o.ID, order.StatusPaid); err != nil {
			return err
		}
		if err := r.service.publisher.PublishOrderPaid(ctx, o.ID, o.UserEmail); err != nil {
			r.logger.Printf("publish OrderPaid for %s: %v", o.ID, err)
		}
		return nil
	case sess.Expired():
		return r.service.orders.UpdateStatus(ctx, o.ID, order.StatusCanceled)
	default:
		// Session still open; leave the order for a later sweep.
		return nil
	}
}
