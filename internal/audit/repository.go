// Package audit keeps the admin action log: one append-only row per order
// event, written by the worker consuming the order event stream.
package audit

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hieuhoang83/quanan-api/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Record(ctx context.Context, entry domain.ActionEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO actions (id, order_id, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New().String(), entry.OrderID, entry.Action, entry.Detail, entry.CreatedAt)
	return err
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]domain.ActionEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, action, detail, created_at
		FROM actions
		WHERE order_id = $1
		ORDER BY created_at
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.ActionEntry{}
	for rows.Next() {
		var e domain.ActionEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
