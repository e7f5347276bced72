// Package cart holds the cart-clearing collaborator. Adding and editing
// cart lines is handled by the storefront, not by this service.
package cart

import (
	"context"
	"database/sql"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ClearCart deletes every cart line for the guest. Clearing an already
// empty cart is a no-op.
func (r *Repository) ClearCart(ctx context.Context, guestID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE guest_id = $1`, guestID)
	return err
}
