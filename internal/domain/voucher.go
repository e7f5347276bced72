package domain

import "time"

// Voucher is a time-bounded percentage discount. The window is inclusive at
// both bounds.
type Voucher struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Discount    int       `json:"discount"`
	DateStart   time.Time `json:"date_start"`
	DateEnd     time.Time `json:"date_end"`
}

func (v Voucher) ActiveAt(t time.Time) bool {
	return !t.Before(v.DateStart) && !t.After(v.DateEnd)
}
