package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hieuhoang83/quanan-api/internal/domain"
)

// PriceLookup resolves current dish prices. Dish ids without a price are
// simply absent from the returned map.
type PriceLookup interface {
	GetPrices(ctx context.Context, dishIDs []string) (map[string]int64, error)
}

// VoucherLookup returns nil without error when the voucher does not exist.
type VoucherLookup interface {
	GetVoucher(ctx context.Context, id string) (*domain.Voucher, error)
}

type CartClearer interface {
	ClearCart(ctx context.Context, guestID string) error
}

type Notifier interface {
	Notify(ctx context.Context, userID, message string) error
}

// GuestDirectory maps a guest to its owning user account, the notification
// recipient. An empty user id without error means the guest has no user.
type GuestDirectory interface {
	UserIDForGuest(ctx context.Context, guestID string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key, eventType string, event any) error
}

type Repository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order, replaceLines bool) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error)
	ListByGuest(ctx context.Context, guestID string, limit, offset int) ([]domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// Deps are the collaborators the workflow consumes. Events may be nil, in
// which case no events are published.
type Deps struct {
	Prices   PriceLookup
	Vouchers VoucherLookup
	Carts    CartClearer
	Notifier Notifier
	Guests   GuestDirectory
	Events   EventPublisher
}

type Config struct {
	// RequireVoucher rejects order creation without a voucher id. The price
	// preview path never requires one.
	RequireVoucher bool
}

// Service is the order workflow engine: it computes trustworthy totals from
// current dish prices, persists orders, and drives status-transition
// notifications. Client-supplied totals and statuses are never trusted.
type Service struct {
	repo           Repository
	prices         PriceLookup
	vouchers       VoucherLookup
	carts          CartClearer
	notifier       Notifier
	guests         GuestDirectory
	events         EventPublisher
	requireVoucher bool
	logger         *slog.Logger
}

func NewService(repo Repository, deps Deps, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		prices:         deps.Prices,
		vouchers:       deps.Vouchers,
		carts:          deps.Carts,
		notifier:       deps.Notifier,
		guests:         deps.Guests,
		events:         deps.Events,
		requireVoucher: cfg.RequireVoucher,
		logger:         logger,
	}
}

type CreateOrderInput struct {
	VoucherID     string
	CustomerName  string
	Email         string
	Phone         string
	Address       string
	Note          string
	PaymentMethod string
	Lines         []domain.OrderLine
}

// UpdateOrderInput carries a partial update. Nil fields are left untouched.
// A non-nil Lines slice replaces every existing line and triggers a full
// repricing; a nil Lines leaves payment, discount and voucher as they are,
// including any VoucherID supplied alongside.
type UpdateOrderInput struct {
	CustomerName  *string
	Email         *string
	Phone         *string
	Address       *string
	Note          *string
	PaymentMethod *string
	VoucherID     *string
	Lines         []domain.OrderLine
}

type PriceQuote struct {
	Total    int64 `json:"total"`
	Discount int   `json:"discount"`
	Payment  int64 `json:"payment"`
}

// ComputeTotal prices a line-item set without persisting anything. The
// voucher is optional here regardless of the creation policy.
func (s *Service) ComputeTotal(ctx context.Context, lines []domain.OrderLine, voucherID string) (*PriceQuote, error) {
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	total, err := s.rawTotal(ctx, lines)
	if err != nil {
		return nil, err
	}

	discount := 0
	if voucherID != "" {
		voucher, err := s.activeVoucher(ctx, voucherID)
		if err != nil {
			return nil, err
		}
		discount = voucher.Discount
	}

	return &PriceQuote{
		Total:    total,
		Discount: discount,
		Payment:  applyDiscount(total, discount),
	}, nil
}

// CreateOrder prices the request server-side and persists the order with its
// lines in one transaction. The initial status is always pending; any status
// on the request is ignored. Notification, cart clear and event publish run
// after the order row exists and never fail the creation.
func (s *Service) CreateOrder(ctx context.Context, guestID string, in CreateOrderInput) (*domain.Order, error) {
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}

	var voucher *domain.Voucher
	discount := 0
	if in.VoucherID == "" {
		if s.requireVoucher {
			return nil, ErrVoucherRequired
		}
	} else {
		v, err := s.activeVoucher(ctx, in.VoucherID)
		if err != nil {
			return nil, err
		}
		voucher = v
		discount = v.Discount
	}

	total, err := s.rawTotal(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		GuestID:       guestID,
		Status:        domain.OrderStatusPending,
		Payment:       applyDiscount(total, discount),
		Discount:      discount,
		CustomerName:  in.CustomerName,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Note:          in.Note,
		PaymentMethod: in.PaymentMethod,
		Lines:         in.Lines,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if voucher != nil {
		order.VoucherID = &voucher.ID
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.notifyGuest(ctx, order.GuestID, fmt.Sprintf("Your order is pending with order id: %s", order.ID))

	if err := s.carts.ClearCart(ctx, order.GuestID); err != nil {
		s.logger.Error("failed to clear cart", "error", err, "guest_id", order.GuestID, "order_id", order.ID)
	}

	s.publish(ctx, order.ID, domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderID:   order.ID,
		GuestID:   order.GuestID,
		Payment:   order.Payment,
		Discount:  order.Discount,
		Lines:     order.Lines,
		Timestamp: order.CreatedAt,
	})

	return order, nil
}

// UpdateStatus writes the new status and dispatches exactly one notification,
// even for self-transitions.
func (s *Service) UpdateStatus(ctx context.Context, id string, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	old := order.Status
	order.Status = next
	order.UpdatedAt = time.Now().UTC()

	s.notifyGuest(ctx, order.GuestID, statusMessage(next, order.ID))

	s.publish(ctx, order.ID, domain.EventOrderStatusChanged, domain.OrderStatusChangedEvent{
		OrderID:   order.ID,
		GuestID:   order.GuestID,
		OldStatus: old,
		NewStatus: next,
		Timestamp: order.UpdatedAt,
	})

	return order, nil
}

// UpdateOrder applies a partial update. When lines are supplied the total is
// recomputed with the same rules as creation and every prior line is
// replaced; the stored discount carries over unless a new voucher is given.
func (s *Service) UpdateOrder(ctx context.Context, id string, in UpdateOrderInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	replaceLines := in.Lines != nil
	if replaceLines {
		if err := validateLines(in.Lines); err != nil {
			return nil, err
		}

		discount := order.Discount
		if in.VoucherID != nil && *in.VoucherID != "" {
			voucher, err := s.activeVoucher(ctx, *in.VoucherID)
			if err != nil {
				return nil, err
			}
			discount = voucher.Discount
			order.VoucherID = &voucher.ID
		}

		total, err := s.rawTotal(ctx, in.Lines)
		if err != nil {
			return nil, err
		}

		order.Lines = in.Lines
		order.Discount = discount
		order.Payment = applyDiscount(total, discount)
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&order.CustomerName, in.CustomerName)
	applyString(&order.Email, in.Email)
	applyString(&order.Phone, in.Phone)
	applyString(&order.Address, in.Address)
	applyString(&order.Note, in.Note)
	applyString(&order.PaymentMethod, in.PaymentMethod)
	order.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, order, replaceLines); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.notifyGuest(ctx, order.GuestID, fmt.Sprintf("your order has been updated, id: %s", order.ID))

	s.publish(ctx, order.ID, domain.EventOrderUpdated, domain.OrderUpdatedEvent{
		OrderID:   order.ID,
		GuestID:   order.GuestID,
		Payment:   order.Payment,
		Timestamp: order.UpdatedAt,
	})

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, status string, limit, offset int) ([]domain.Order, error) {
	return s.repo.List(ctx, status, limit, offset)
}

func (s *Service) ListOrdersByGuest(ctx context.Context, guestID string, limit, offset int) ([]domain.Order, error) {
	return s.repo.ListByGuest(ctx, guestID, limit, offset)
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) rawTotal(ctx context.Context, lines []domain.OrderLine) (int64, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.DishID] {
			seen[line.DishID] = true
			ids = append(ids, line.DishID)
		}
	}

	prices, err := s.prices.GetPrices(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("get dish prices: %w", err)
	}

	var total int64
	for _, line := range lines {
		price, ok := prices[line.DishID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrLineItemNotFound, line.DishID)
		}
		total += price * int64(line.Quantity)
	}

	return total, nil
}

func (s *Service) activeVoucher(ctx context.Context, id string) (*domain.Voucher, error) {
	voucher, err := s.vouchers.GetVoucher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	if voucher == nil || !voucher.ActiveAt(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: %s", ErrVoucherInvalid, id)
	}
	return voucher, nil
}

// notifyGuest resolves the guest's owning user and dispatches one
// notification. Failures are logged and swallowed: the order row is the
// record, notifications are best effort.
func (s *Service) notifyGuest(ctx context.Context, guestID, message string) {
	userID, err := s.guests.UserIDForGuest(ctx, guestID)
	if err != nil {
		s.logger.Error("failed to resolve guest user", "error", err, "guest_id", guestID)
		return
	}
	if userID == "" {
		s.logger.Warn("guest has no user account, skipping notification", "guest_id", guestID)
		return
	}
	if err := s.notifier.Notify(ctx, userID, message); err != nil {
		s.logger.Error("failed to dispatch notification", "error", err, "user_id", userID)
	}
}

func (s *Service) publish(ctx context.Context, orderID, eventType string, event any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, orderID, eventType, event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", eventType, "order_id", orderID)
	}
}

// applyDiscount truncates toward zero; payments stay whole currency units.
func applyDiscount(total int64, discount int) int64 {
	return total * int64(100-discount) / 100
}

func statusMessage(status domain.OrderStatus, orderID string) string {
	switch status {
	case domain.OrderStatusPending:
		return fmt.Sprintf("your order is pending, id: %s", orderID)
	case domain.OrderStatusConfirmed:
		return fmt.Sprintf("your order is confirmed, id: %s", orderID)
	case domain.OrderStatusCompleted:
		return fmt.Sprintf("your order is completed, id: %s", orderID)
	case domain.OrderStatusCanceled:
		return fmt.Sprintf("your order is canceled, id: %s", orderID)
	default:
		return fmt.Sprintf("your order status has been updated, id: %s", orderID)
	}
}

func validateLines(lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return ErrNoLineItems
	}
	for _, line := range lines {
		if line.DishID == "" {
			return fmt.Errorf("%w: missing dish id", ErrBadLineItem)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1 for dish %s", ErrBadLineItem, line.DishID)
		}
	}
	return nil
}
