package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrIllegalTransition = errors.New("illegal status transition")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetBySessionID(ctx context.Context, sessionID string) (*Order, error)
	ListByUser(ctx context.Context, userEmail string) ([]Order, error)
	ListAll(ctx context.Context, limit int) ([]Order, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]Order, error)

	SetPaymentSession(ctx context.Context, orderID, sessionID, paymentIntentID string) error
	UpdateStatus(ctx context.Context, orderID string, to Status) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	o.UpdatedAt = o.CreatedAt

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_email, status, subtotal_cents, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $5)`,
		o.ID, o.UserEmail, o.Status, o.SubtotalCents, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, menu_item_id, name, quantity, unit_price_cents)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), o.ID, it.MenuItemID, it.Name, it.Quantity, it.UnitPriceCents,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const orderColumns = `id, user_email, status, subtotal_cents,
       COALESCE(stripe_session_id, ''), COALESCE(stripe_payment_intent_id, ''),
       created_at, updated_at`

func (r *repo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)
}

func (r *repo) GetBySessionID(ctx context.Context, sessionID string) (*Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE stripe_session_id = $1`, sessionID)
}

func (r *repo) getOne(ctx context.Context, query string, arg any) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&o.ID, &o.UserEmail, &o.Status, &o.SubtotalCents,
		&o.StripeSessionID, &o.StripePaymentIntentID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT menu_item_id, name, quantity, unit_price_cents
         FROM order_items WHERE order_id = $1`,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.MenuItemID, &it.Name, &it.Quantity, &it.UnitPriceCents); err != nil {
			return fmt.Errorf("scan order_item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	return nil
}

func (r *repo) ListByUser(ctx context.Context, userEmail string) ([]Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_email = $1 ORDER BY created_at DESC`,
		userEmail)
}

func (r *repo) ListAll(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`,
		limit)
}

func (r *repo) ListStalePending(ctx context.Context, olderThan time.Time) ([]Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = 'pending' AND created_at < $1 ORDER BY created_at`,
		olderThan)
}

func (r *repo) list(ctx context.Context, query string, arg any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserEmail, &o.Status, &o.SubtotalCents,
			&o.StripeSessionID, &o.StripePaymentIntentID,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *repo) SetPaymentSession(ctx context.Context, orderID, sessionID, paymentIntentID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders
         SET stripe_session_id = $2, stripe_payment_intent_id = NULLIF($3, ''), updated_at = now()
         WHERE id = $1`,
		orderID, sessionID, paymentIntentID,
	)
	if err != nil {
		return fmt.Errorf("set payment session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus moves an order to a new status, enforcing the transition
// guard against the current row inside the statement itself.
func (r *repo) UpdateStatus(ctx context.Context, orderID string, to Status) error {
	cur, err := r.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if cur == nil {
		return sql.ErrNoRows
	}
	if cur.Status == to {
		return nil
	}
	if !CanTransition(cur.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, cur.Status, to)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`,
		orderID, to, cur.Status,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Lost a race with a concurrent transition. If the other writer
		// already moved the order to the requested status, this update is
		// a no-op, not a conflict.
		now, err := r.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if now != nil && now.Status == to {
			return nil
		}
		return fmt.Errorf("%w: concurrent update on %s", ErrIllegalTransition, orderID)
	}
	return nil
}
