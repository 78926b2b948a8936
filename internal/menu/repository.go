package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	ListMenu(ctx context.Context) ([]Section, error)
	GetItem(ctx context.Context, itemID string) (Item, error)

	CreateItem(ctx context.Context, it *Item) error
	SetAvailable(ctx context.Context, itemID string, available bool) error
	SetPrice(ctx context.Context, itemID string, priceCents int64) error
	MoveItem(ctx context.Context, itemID, categoryID string) error
	ReorderItem(ctx context.Context, itemID string, position int) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListMenu(ctx context.Context) ([]Section, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, position
		FROM categories
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []Section
	index := map[string]int{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Position); err != nil {
			return nil, err
		}
		index[c.ID] = len(sections)
		sections = append(sections, Section{Category: c})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT id, category_id, name, slug, description, price_cents, is_available, position, updated_at
		FROM menu_items
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it Item
		if err := itemRows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Slug, &it.Description,
			&it.PriceCents, &it.IsAvailable, &it.Position, &it.UpdatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[it.CategoryID]; ok {
			sections[i].Items = append(sections[i].Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, itemID string) (Item, error) {
	var it Item
	row := r.pool.QueryRow(ctx, `
		SELECT id, category_id, name, slug, description, price_cents, is_available, position, updated_at
		FROM menu_items
		WHERE id = $1
	`, itemID)
	if err := row.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Slug, &it.Description,
		&it.PriceCents, &it.IsAvailable, &it.Position, &it.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}

	sizeRows, err := r.pool.Query(ctx,
		`SELECT id, label, delta_cents FROM item_sizes WHERE item_id = $1 ORDER BY delta_cents`, itemID)
	if err != nil {
		return Item{}, err
	}
	defer sizeRows.Close()
	for sizeRows.Next() {
		var s Size
		if err := sizeRows.Scan(&s.ID, &s.Label, &s.DeltaCents); err != nil {
			return Item{}, err
		}
		it.Sizes = append(it.Sizes, s)
	}
	if err := sizeRows.Err(); err != nil {
		return Item{}, err
	}

	addonRows, err := r.pool.Query(ctx,
		`SELECT id, label, price_cents FROM item_addons WHERE item_id = $1 ORDER BY label`, itemID)
	if err != nil {
		return Item{}, err
	}
	defer addonRows.Close()
	for addonRows.Next() {
		var a Addon
		if err := addonRows.Scan(&a.ID, &a.Label, &a.PriceCents); err != nil {
			return Item{}, err
		}
		it.Addons = append(it.Addons, a)
	}
	if err := addonRows.Err(); err != nil {
		return Item{}, err
	}

	return it, nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, it *Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO menu_items (id, category_id, name, slug, description, price_cents, is_available, position, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	`, it.ID, it.CategoryID, it.Name, it.Slug, it.Description, it.PriceCents, it.IsAvailable, it.Position)
	return err
}

func (r *PostgresRepository) SetAvailable(ctx context.Context, itemID string, available bool) error {
	return r.execOne(ctx,
		`UPDATE menu_items SET is_available = $2, updated_at = now() WHERE id = $1`,
		itemID, available)
}

func (r *PostgresRepository) SetPrice(ctx context.Context, itemID string, priceCents int64) error {
	return r.execOne(ctx,
		`UPDATE menu_items SET price_cents = $2, updated_at = now() WHERE id = $1`,
		itemID, priceCents)
}

func (r *PostgresRepository) MoveItem(ctx context.Context, itemID, categoryID string) error {
	return r.execOne(ctx,
		`UPDATE menu_items SET category_id = $2, updated_at = now() WHERE id = $1`,
		itemID, categoryID)
}

func (r *PostgresRepository) ReorderItem(ctx context.Context, itemID string, position int) error {
	return r.execOne(ctx,
		`UPDATE menu_items SET position = $2, updated_at = now() WHERE id = $1`,
		itemID, position)
}

func (r *PostgresRepository) execOne(ctx context.Context, sql string, args ...any) error {
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
