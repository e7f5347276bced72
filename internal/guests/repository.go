// Package guests resolves guest accounts to their owning user accounts.
// Guests own orders and carts; users receive notifications. The two id
// spaces are distinct and must never be conflated.
package guests

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

// UserIDForGuest returns an empty id without error when the guest has no
// user account.
func (r *Repository) UserIDForGuest(ctx context.Context, guestID string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id FROM guests WHERE id = $1
	`, guestID).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}
