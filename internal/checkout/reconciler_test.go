package checkout

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejayadad/seafoodapp/internal/order"
	"github.com/thejayadad/seafoodapp/internal/payment"
)

func newTestReconciler(repo *fakeRepo, proc *fakeProcessor, pub *fakePublisher) *Reconciler {
	svc := newTestService(repo, proc, pub)
	return NewReconciler(svc, time.Minute, 30*time.Minute, log.New(io.Discard, "", 0))
}

func TestSweepOnce_PromotesPaidSession(t *testing.T) {
	repo := &fakeRepo{
		listStalePendingFunc: func(ctx context.Context, olderThan time.Time) ([]order.Order, error) {
			return []order.Order{
				{ID: "order-1", UserEmail: "ada@example.com", Status: order.StatusPending, StripeSessionID: "cs_1"},
			}, nil
		},
	}
	proc := &fakeProcessor{
		getFunc: func(ctx context.Context, sessionID string) (payment.Session, error) {
			return payment.Session{ID: sessionID, PaymentStatus: payment.PaymentStatusPaid}, nil
		},
	}
	pub := &fakePublisher{}
	r := newTestReconciler(repo, proc, pub)

	require.NoError(t, r.SweepOnce(context.Background()))

	assert.Equal(t, order.StatusPaid, repo.statusUpdates["order-1"])
	assert.Equal(t, []string{"order-1"}, pub.paid)
}

func TestSweepOnce_CancelsExpiredSession(t *testing.T) {
	repo := &fakeRepo{
		listStalePendingFunc: func(ctx context.Context, olderThan time.Time) ([]order.Order, error) {
			return []order.Order{
				{ID: "order-1", Status: order.StatusPending, StripeSessionID: "cs_1"},
			}, nil
		},
	}
	proc := &fakeProcessor{
		getFunc: func(ctx context.Context, sessionID string) (payment.Session, error) {
			return payment.Session{ID: sessionID, SessionStatus: payment.SessionStatusExpired}, nil
		},
	}
	r := newTestReconciler(repo, proc, &fakePublisher{})

	require.NoError(t, r.SweepOnce(context.Background()))

	assert.Equal(t, order.StatusCanceled, repo.statusUpdates["order-1"])
}

func TestSweepOnce_CancelsOrderWithoutSession(t *testing.T) {
	repo := &fakeRepo{
		listStalePendingFunc: func(ctx context.Context, olderThan time.Time) ([]order.Order, error) {
			return []order.Order{{ID: "order-1", Status: order.StatusPending}}, nil
		},
	}
	r := newTestReconciler(repo, &fakeProcessor{}, &fakePublisher{})

	require.NoError(t, r.SweepOnce(context.Background()))

	assert.Equal(t, order.StatusCanceled, repo.statusUpdates["order-1"])
}

func TestSweepOnce_LeavesOpenSessionAlone(t *testing.T) {
	repo := &fakeRepo{
		listStalePendingFunc: func(ctx context.Context, olderThan time.Time) ([]order.Order, error) {
			return []order.Order{
				{ID: "order-1", Status: order.StatusPending, StripeSessionID: "cs_1"},
			}, nil
		},
	}
	proc := &fakeProcessor{
		getFunc: func(ctx context.Context, sessionID string) (payment.Session, error) {
			return payment.Session{
				ID:            sessionID,
				PaymentStatus: payment.PaymentStatusUnpaid,
				SessionStatus: payment.SessionStatusOpen,
			}, nil
		},
	}
	r := newTestReconciler(repo, proc, &fakePublisher{})

	require.NoError(t, r.SweepOnce(context.Background()))

	assert.Empty(t, repo.statusUpdates)
}
