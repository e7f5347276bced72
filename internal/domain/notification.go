package domain

import "time"

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionEntry is one row of the admin action log, written by the audit worker
// for every order event.
type ActionEntry struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
