package payment

import "context"

// PaymentStatus values reported by the processor for a session.
const (
	PaymentStatusPaid     = "paid"
	PaymentStatusUnpaid   = "unpaid"
	SessionStatusOpen     = "open"
	SessionStatusComplete = "complete"
	SessionStatusExpired  = "expired"
)

// LineItem is one priced entry sent to the hosted payment page.
type LineItem struct {
	Name            string
	Description     string
	UnitAmountCents int64
	Quantity        int64
}

type SessionRequest struct {
	Lines      []LineItem
	SuccessURL string
	CancelURL  string
	// Metadata is echoed back by the processor; carries the order id for
	// reconciliation.
	Metadata map[string]string
}

type Session struct {
	ID              string
	URL             string
	PaymentIntentID string

	PaymentStatus string
	SessionStatus string
	Metadata      map[string]string
	CustomerEmail string
}

// Paid reports whether either processor signal marks the session as paid.
// Both are treated as equivalent.
func (s Session) Paid() bool {
	return s.PaymentStatus == PaymentStatusPaid || s.SessionStatus == SessionStatusComplete
}

func (s Session) Expired() bool {
	return s.SessionStatus == SessionStatusExpired
}

// Processor is the hosted payment service that collects payment and
// reports status.
type Processor interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
	GetSession(ctx context.Context, sessionID string) (Session, error)
}
