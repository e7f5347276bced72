// Package catalog exposes the dish price lookup consumed by the order
// workflow. Dish administration lives elsewhere; orders only ever read
// current prices.
package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetPrices returns the current price per dish id, preferring price_new and
// falling back to price_old when no sale price is set. Unknown ids are
// absent from the result.
func (r *Repository) GetPrices(ctx context.Context, dishIDs []string) (map[string]int64, error) {
	prices := make(map[string]int64, len(dishIDs))
	if len(dishIDs) == 0 {
		return prices, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, COALESCE(price_new, price_old)
		FROM dishes
		WHERE id = ANY($1)
	`, pq.Array(dishIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id string
		var price int64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prices, nil
}
