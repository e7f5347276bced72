package domain

import "fmt"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// ParseOrderStatus rejects anything outside the four known statuses.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCanceled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// transitions lists the statuses reachable from each status. Self-transitions
// are always allowed: repeating a status re-sends its notification, which the
// kitchen relies on to ping customers again. Completed and canceled are
// terminal apart from that.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCanceled},
	OrderStatusConfirmed: {OrderStatusCompleted, OrderStatusCanceled},
	OrderStatusCompleted: {},
	OrderStatusCanceled:  {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
