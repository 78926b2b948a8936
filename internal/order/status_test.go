package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusPaid))
	assert.True(t, CanTransition(StatusPending, StatusCanceled))
	assert.True(t, CanTransition(StatusPaid, StatusPreparing))
	assert.True(t, CanTransition(StatusReady, StatusOutForDelivery))
	assert.True(t, CanTransition(StatusOutForDelivery, StatusCompleted))
}

func TestCanTransition_Rejected(t *testing.T) {
	// Paid is reachable only from pending.
	assert.False(t, CanTransition(StatusPaid, StatusPending))
	assert.False(t, CanTransition(StatusCanceled, StatusPaid))
	assert.False(t, CanTransition(StatusCompleted, StatusPreparing))
	assert.False(t, CanTransition(StatusPending, StatusReady))
	// Canceled and completed are terminal.
	assert.False(t, CanTransition(StatusCanceled, StatusPending))
	assert.False(t, CanTransition(StatusCompleted, StatusCanceled))
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPaid, StatusCanceled, StatusConfirmed,
		StatusPreparing, StatusReady, StatusOutForDelivery, StatusCompleted} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("shipped").Valid())
	assert.False(t, Status("").Valid())
}
