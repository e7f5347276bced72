package orders

import "errors"

var (
	// ErrOrderNotFound is returned by read, update and status operations when
	// the order id does not resolve.
	ErrOrderNotFound = errors.New("order not found")

	// ErrLineItemNotFound is returned when a line references a dish with no
	// resolvable price. Pricing is all-or-nothing.
	ErrLineItemNotFound = errors.New("line item dish not found")

	// ErrVoucherInvalid covers a missing voucher row as well as one whose
	// validity window does not contain the current time.
	ErrVoucherInvalid = errors.New("voucher invalid")

	// ErrVoucherRequired is returned on order creation when no voucher id was
	// supplied and the service is configured to require one.
	ErrVoucherRequired = errors.New("voucher required")

	// ErrNoLineItems is returned when an order would have no lines.
	ErrNoLineItems = errors.New("order must contain at least one line item")

	// ErrBadLineItem is returned for a line with an empty dish id or a
	// quantity below one.
	ErrBadLineItem = errors.New("invalid line item")

	// ErrInvalidTransition is returned when the requested status is not
	// reachable from the order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)
