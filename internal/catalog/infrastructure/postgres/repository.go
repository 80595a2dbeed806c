package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boolshop/storefront/internal/catalog/application"
	"github.com/boolshop/storefront/internal/catalog/domain"
)

// Repository reads the catalog from Postgres. Selected over the embedded
// dataset with CATALOG_SOURCE=postgres.
type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

const productColumns = `id, slug, name, category, price_cents, original_price_cents, in_stock, is_new, on_sale, is_featured, image`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Category, &p.PriceCents, &p.OriginalPriceCents,
		&p.InStock, &p.IsNew, &p.OnSale, &p.IsFeatured, &p.Image)
	return p, err
}

func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *Repository) ByID(ctx context.Context, id int64) (domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, application.ErrProductNotFound
	}
	return p, err
}

func (r *Repository) BySlug(ctx context.Context, slug string) (domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug=$1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, application.ErrProductNotFound
	}
	return p, err
}

func (r *Repository) StockLevels(ctx context.Context, ids []int64) (map[int64]int, error) {
	levels := make(map[int64]int, len(ids))
	for _, id := range ids {
		levels[id] = 0
	}

	rows, err := r.pool.Query(ctx, `SELECT id, in_stock FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var stock int
		if err := rows.Scan(&id, &stock); err != nil {
			return nil, err
		}
		levels[id] = stock
	}
	return levels, rows.Err()
}

func (r *Repository) ReserveStock(ctx context.Context, quantities map[int64]int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for id, qty := range quantities {
		ct, err := tx.Exec(ctx,
			`UPDATE products SET in_stock = in_stock - $2 WHERE id = $1 AND in_stock >= $2`, id, qty)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return errors.New("insufficient stock during reservation")
		}
	}
	return tx.Commit(ctx)
}

// ReleaseStock returns previously reserved quantities to the catalog, used
// when order persistence fails after a reservation committed.
func (r *Repository) ReleaseStock(ctx context.Context, quantities map[int64]int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for id, qty := range quantities {
		if _, err := tx.Exec(ctx,
			`UPDATE products SET in_stock = in_stock + $2 WHERE id = $1`, id, qty); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
