package domain

import "time"

type OrderLine struct {
	DishID   string `json:"dish_id"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID            string      `json:"id"`
	GuestID       string      `json:"guest_id"`
	Status        OrderStatus `json:"status"`
	Payment       int64       `json:"payment"`
	Discount      int         `json:"discount"`
	VoucherID     *string     `json:"voucher_id,omitempty"`
	CustomerName  string      `json:"customer_name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	Note          string      `json:"note"`
	PaymentMethod string      `json:"payment_method"`
	Lines         []OrderLine `json:"lines"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
