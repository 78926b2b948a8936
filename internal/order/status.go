package order

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusCanceled Status = "canceled"

	// Operational substates driven from the admin console after payment.
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusCompleted      Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:        {StatusPaid, StatusCanceled},
	StatusPaid:           {StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery, StatusCompleted, StatusCanceled},
	StatusConfirmed:      {StatusPreparing, StatusReady, StatusOutForDelivery, StatusCompleted, StatusCanceled},
	StatusPreparing:      {StatusReady, StatusOutForDelivery, StatusCompleted, StatusCanceled},
	StatusReady:          {StatusOutForDelivery, StatusCompleted, StatusCanceled},
	StatusOutForDelivery: {StatusCompleted, StatusCanceled},
}

// CanTransition reports whether an order may move from one status to another.
// Canceled and completed are terminal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCanceled, StatusConfirmed,
		StatusPreparing, StatusReady, StatusOutForDelivery, StatusCompleted:
		return true
	}
	return false
}
