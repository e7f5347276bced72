package domain

import "time"

const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderCreatedEvent struct {
	OrderID   string      `json:"order_id"`
	GuestID   string      `json:"guest_id"`
	Payment   int64       `json:"payment"`
	Discount  int         `json:"discount"`
	Lines     []OrderLine `json:"lines"`
	Timestamp time.Time   `json:"timestamp"`
}

type OrderUpdatedEvent struct {
	OrderID   string    `json:"order_id"`
	GuestID   string    `json:"guest_id"`
	Payment   int64     `json:"payment"`
	Timestamp time.Time `json:"timestamp"`
}

type OrderStatusChangedEvent struct {
	OrderID   string      `json:"order_id"`
	GuestID   string      `json:"guest_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	Timestamp time.Time   `json:"timestamp"`
}
