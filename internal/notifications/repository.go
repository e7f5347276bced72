package notifications

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hieuhoang83/quanan-api/internal/domain"
)

// Repository is an append-only notification store. Rows are created by the
// order workflow and only ever mutated by MarkAllRead.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Notify appends one unread notification for the user.
func (r *Repository) Notify(ctx context.Context, userID, message string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, message, read, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
	`, uuid.New().String(), userID, message, time.Now().UTC())
	return err
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, message, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkAllRead flips every unread notification for the user and reports how
// many were flipped.
func (r *Repository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE user_id = $1 AND read = FALSE
	`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
