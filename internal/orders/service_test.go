package orders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/hieuhoang83/quanan-api/internal/domain"
)

type fakePrices struct {
	prices map[string]int64
	err    error
}

func (f *fakePrices) GetPrices(_ context.Context, dishIDs []string) (map[string]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make(map[string]int64, len(dishIDs))
	for _, id := range dishIDs {
		if price, ok := f.prices[id]; ok {
			result[id] = price
		}
	}
	return result, nil
}

type fakeVouchers struct {
	vouchers map[string]*domain.Voucher
}

func (f *fakeVouchers) GetVoucher(_ context.Context, id string) (*domain.Voucher, error) {
	return f.vouchers[id], nil
}

type fakeCarts struct {
	cleared []string
	err     error
}

func (f *fakeCarts) ClearCart(_ context.Context, guestID string) error {
	if f.err != nil {
		return f.err
	}
	f.cleared = append(f.cleared, guestID)
	return nil
}

type sentNote struct {
	userID  string
	message string
}

type fakeNotifier struct {
	sent []sentNote
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, userID, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentNote{userID: userID, message: message})
	return nil
}

type fakeGuests struct {
	users map[string]string
}

func (f *fakeGuests) UserIDForGuest(_ context.Context, guestID string) (string, error) {
	return f.users[guestID], nil
}

type publishedEvent struct {
	key       string
	eventType string
	event     any
}

type fakeEvents struct {
	published []publishedEvent
	err       error
}

func (f *fakeEvents) Publish(_ context.Context, key, eventType string, event any) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedEvent{key: key, eventType: eventType, event: event})
	return nil
}

type fakeRepo struct {
	orders        map[string]*domain.Order
	nextID        int
	createErr     error
	replacedLines bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: make(map[string]*domain.Order)}
}

func (f *fakeRepo) Create(_ context.Context, order *domain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	order.ID = "order-" + strconv.Itoa(f.nextID)
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (f *fakeRepo) Update(_ context.Context, order *domain.Order, replaceLines bool) error {
	if _, ok := f.orders[order.ID]; !ok {
		return ErrOrderNotFound
	}
	f.replacedLines = replaceLines
	stored := *order
	if !replaceLines {
		stored.Lines = f.orders[order.ID].Lines
	}
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (f *fakeRepo) List(_ context.Context, _ string, _, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeRepo) ListByGuest(_ context.Context, _ string, _, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

type serviceFixture struct {
	repo     *fakeRepo
	prices   *fakePrices
	vouchers *fakeVouchers
	carts    *fakeCarts
	notifier *fakeNotifier
	guests   *fakeGuests
	events   *fakeEvents
	service  *Service
}

func newFixture(cfg Config) *serviceFixture {
	f := &serviceFixture{
		repo: newFakeRepo(),
		prices: &fakePrices{prices: map[string]int64{
			"dish-a": 10000,
			"dish-b": 5000,
		}},
		vouchers: &fakeVouchers{vouchers: map[string]*domain.Voucher{
			"voucher-10": {
				ID:        "voucher-10",
				Code:      "TEN",
				Discount:  10,
				DateStart: time.Now().Add(-24 * time.Hour),
				DateEnd:   time.Now().Add(24 * time.Hour),
			},
			"voucher-expired": {
				ID:        "voucher-expired",
				Code:      "OLD",
				Discount:  50,
				DateStart: time.Now().Add(-48 * time.Hour),
				DateEnd:   time.Now().Add(-24 * time.Hour),
			},
		}},
		carts:    &fakeCarts{},
		notifier: &fakeNotifier{},
		guests:   &fakeGuests{users: map[string]string{"guest-1": "user-1"}},
		events:   &fakeEvents{},
	}
	f.service = NewService(f.repo, Deps{
		Prices:   f.prices,
		Vouchers: f.vouchers,
		Carts:    f.carts,
		Notifier: f.notifier,
		Guests:   f.guests,
		Events:   f.events,
	}, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func lines(pairs ...domain.OrderLine) []domain.OrderLine {
	return pairs
}

func TestComputeTotal(t *testing.T) {
	ctx := context.Background()

	t.Run("sums price times quantity without voucher", func(t *testing.T) {
		f := newFixture(Config{})
		quote, err := f.service.ComputeTotal(ctx, lines(
			domain.OrderLine{DishID: "dish-a", Quantity: 2},
			domain.OrderLine{DishID: "dish-b", Quantity: 1},
		), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quote.Total != 25000 || quote.Discount != 0 || quote.Payment != 25000 {
			t.Fatalf("unexpected quote: %+v", quote)
		}
	})

	t.Run("applies voucher discount with floor truncation", func(t *testing.T) {
		f := newFixture(Config{})
		quote, err := f.service.ComputeTotal(ctx, lines(
			domain.OrderLine{DishID: "dish-a", Quantity: 2},
			domain.OrderLine{DishID: "dish-b", Quantity: 1},
		), "voucher-10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quote.Payment != 22500 {
			t.Fatalf("expected payment 22500, got %d", quote.Payment)
		}
		if quote.Discount != 10 {
			t.Fatalf("expected discount 10, got %d", quote.Discount)
		}
	})

	t.Run("truncates instead of rounding", func(t *testing.T) {
		f := newFixture(Config{})
		f.prices.prices["dish-odd"] = 101
		f.vouchers.vouchers["voucher-3"] = &domain.Voucher{
			ID:        "voucher-3",
			Discount:  3,
			DateStart: time.Now().Add(-time.Hour),
			DateEnd:   time.Now().Add(time.Hour),
		}
		quote, err := f.service.ComputeTotal(ctx, lines(domain.OrderLine{DishID: "dish-odd", Quantity: 1}), "voucher-3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 101 * 97 / 100 = 97.97, truncated to 97 (rounding would give 98)
		if quote.Payment != 97 {
			t.Fatalf("expected payment 97, got %d", quote.Payment)
		}
	})

	t.Run("unknown dish fails the whole computation", func(t *testing.T) {
		f := newFixture(Config{})
		_, err := f.service.ComputeTotal(ctx, lines(
			domain.OrderLine{DishID: "dish-a", Quantity: 1},
			domain.OrderLine{DishID: "dish-missing", Quantity: 1},
		), "")
		if !errors.Is(err, ErrLineItemNotFound) {
			t.Fatalf("expected ErrLineItemNotFound, got %v", err)
		}
	})

	t.Run("expired voucher is invalid", func(t *testing.T) {
		f := newFixture(Config{})
		_, err := f.service.ComputeTotal(ctx, lines(domain.OrderLine{DishID: "dish-a", Quantity: 1}), "voucher-expired")
		if !errors.Is(err, ErrVoucherInvalid) {
			t.Fatalf("expected ErrVoucherInvalid, got %v", err)
		}
	})

	t.Run("unknown voucher is invalid", func(t *testing.T) {
		f := newFixture(Config{})
		_, err := f.service.ComputeTotal(ctx, lines(domain.OrderLine{DishID: "dish-a", Quantity: 1}), "voucher-nope")
		if !errors.Is(err, ErrVoucherInvalid) {
			t.Fatalf("expected ErrVoucherInvalid, got %v", err)
		}
	})

	t.Run("voucher active exactly at window bounds", func(t *testing.T) {
		f := newFixture(Config{})
		now := time.Now().UTC()
		f.vouchers.vouchers["voucher-edge"] = &domain.Voucher{
			ID:        "voucher-edge",
			Discount:  10,
			DateStart: now.Add(-time.Minute),
			DateEnd:   now.Add(time.Minute),
		}
		if _, err := f.service.ComputeTotal(ctx, lines(domain.OrderLine{DishID: "dish-a", Quantity: 1}), "voucher-edge"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects empty line set", func(t *testing.T) {
		f := newFixture(Config{})
		_, err := f.service.ComputeTotal(ctx, nil, "")
		if !errors.Is(err, ErrNoLineItems) {
			t.Fatalf("expected ErrNoLineItems, got %v", err)
		}
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		f := newFixture(Config{})
		_, err := f.service.ComputeTotal(ctx, lines(domain.OrderLine{DishID: "dish-a", Quantity: 0}), "")
		if !errors.Is(err, ErrBadLineItem) {
			t.Fatalf("expected ErrBadLineItem, got %v", err)
		}
	})
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	validInput := func() CreateOrderInput {
		return CreateOrderInput{
			VoucherID: "voucher-10",
			Phone:     "0123",
			Address:   "12 Hang Bac",
			Lines: lines(
				domain.OrderLine{DishID: "dish-a", Quantity: 2},
				domain.OrderLine{DishID: "dish-b", Quantity: 1},
			),
		}
	}

	t.Run("creates pending order with server-computed payment", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		order, err := f.service.CreateOrder(ctx, "guest-1", validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Status != domain.OrderStatusPending {
			t.Fatalf("expected status pending, got %s", order.Status)
		}
		if order.Payment != 22500 {
			t.Fatalf("expected payment 22500, got %d", order.Payment)
		}
		if order.Discount != 10 {
			t.Fatalf("expected discount 10, got %d", order.Discount)
		}
		if order.VoucherID == nil || *order.VoucherID != "voucher-10" {
			t.Fatalf("expected voucher id voucher-10, got %v", order.VoucherID)
		}
		if _, ok := f.repo.orders[order.ID]; !ok {
			t.Fatal("order not persisted")
		}
	})

	t.Run("requires voucher when configured", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		in := validInput()
		in.VoucherID = ""
		_, err := f.service.CreateOrder(ctx, "guest-1", in)
		if !errors.Is(err, ErrVoucherRequired) {
			t.Fatalf("expected ErrVoucherRequired, got %v", err)
		}
		if len(f.repo.orders) != 0 {
			t.Fatal("no order should be persisted")
		}
	})

	t.Run("voucher optional when not required", func(t *testing.T) {
		f := newFixture(Config{})
		in := validInput()
		in.VoucherID = ""
		order, err := f.service.CreateOrder(ctx, "guest-1", in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Payment != 25000 || order.Discount != 0 {
			t.Fatalf("expected undiscounted payment 25000, got %d (discount %d)", order.Payment, order.Discount)
		}
		if order.VoucherID != nil {
			t.Fatalf("expected nil voucher id, got %v", *order.VoucherID)
		}
	})

	t.Run("expired voucher rejects and persists nothing", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		in := validInput()
		in.VoucherID = "voucher-expired"
		_, err := f.service.CreateOrder(ctx, "guest-1", in)
		if !errors.Is(err, ErrVoucherInvalid) {
			t.Fatalf("expected ErrVoucherInvalid, got %v", err)
		}
		if len(f.repo.orders) != 0 {
			t.Fatal("no order should be persisted")
		}
	})

	t.Run("unresolvable dish rejects and persists nothing", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		in := validInput()
		in.Lines = lines(domain.OrderLine{DishID: "dish-missing", Quantity: 1})
		_, err := f.service.CreateOrder(ctx, "guest-1", in)
		if !errors.Is(err, ErrLineItemNotFound) {
			t.Fatalf("expected ErrLineItemNotFound, got %v", err)
		}
		if len(f.repo.orders) != 0 {
			t.Fatal("no order should be persisted")
		}
	})

	t.Run("notifies the guest's user and clears the cart", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		order, err := f.service.CreateOrder(ctx, "guest-1", validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.notifier.sent) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(f.notifier.sent))
		}
		note := f.notifier.sent[0]
		if note.userID != "user-1" {
			t.Fatalf("expected notification for user-1, got %s", note.userID)
		}
		want := "Your order is pending with order id: " + order.ID
		if note.message != want {
			t.Fatalf("expected message %q, got %q", want, note.message)
		}
		if len(f.carts.cleared) != 1 || f.carts.cleared[0] != "guest-1" {
			t.Fatalf("expected cart cleared for guest-1, got %v", f.carts.cleared)
		}
		if len(f.events.published) != 1 || f.events.published[0].eventType != domain.EventOrderCreated {
			t.Fatalf("expected one order.created event, got %+v", f.events.published)
		}
	})

	t.Run("side effect failures do not fail creation", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		f.notifier.err = errors.New("notify down")
		f.carts.err = errors.New("cart down")
		f.events.err = errors.New("broker down")
		order, err := f.service.CreateOrder(ctx, "guest-1", validInput())
		if err != nil {
			t.Fatalf("expected success despite side effect failures, got %v", err)
		}
		if _, ok := f.repo.orders[order.ID]; !ok {
			t.Fatal("order should still be persisted")
		}
	})

	t.Run("skips notification for guest without user account", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		_, err := f.service.CreateOrder(ctx, "guest-unknown", validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.notifier.sent) != 0 {
			t.Fatalf("expected no notifications, got %d", len(f.notifier.sent))
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	seed := func(f *serviceFixture, status domain.OrderStatus) string {
		order, err := f.service.CreateOrder(ctx, "guest-1", CreateOrderInput{
			VoucherID: "voucher-10",
			Lines:     lines(domain.OrderLine{DishID: "dish-a", Quantity: 1}),
		})
		if err != nil {
			t.Fatalf("seed order: %v", err)
		}
		f.repo.orders[order.ID].Status = status
		f.notifier.sent = nil
		f.events.published = nil
		return order.ID
	}

	t.Run("unknown order id", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		_, err := f.service.UpdateStatus(ctx, "order-nope", domain.OrderStatusCanceled)
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("cancel stores canceled and sends one notification with the id", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		id := seed(f, domain.OrderStatusPending)

		order, err := f.service.UpdateStatus(ctx, id, domain.OrderStatusCanceled)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Status != domain.OrderStatusCanceled {
			t.Fatalf("expected canceled, got %s", order.Status)
		}
		if f.repo.orders[id].Status != domain.OrderStatusCanceled {
			t.Fatalf("stored status is %s", f.repo.orders[id].Status)
		}
		if len(f.notifier.sent) != 1 {
			t.Fatalf("expected exactly 1 notification, got %d", len(f.notifier.sent))
		}
		if !strings.Contains(f.notifier.sent[0].message, id) {
			t.Fatalf("notification %q does not contain order id", f.notifier.sent[0].message)
		}
		if f.notifier.sent[0].message != "your order is canceled, id: "+id {
			t.Fatalf("unexpected message %q", f.notifier.sent[0].message)
		}
	})

	t.Run("self transition still notifies", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		id := seed(f, domain.OrderStatusPending)

		if _, err := f.service.UpdateStatus(ctx, id, domain.OrderStatusPending); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.notifier.sent) != 1 {
			t.Fatalf("expected 1 notification for self transition, got %d", len(f.notifier.sent))
		}
		if f.notifier.sent[0].message != "your order is pending, id: "+id {
			t.Fatalf("unexpected message %q", f.notifier.sent[0].message)
		}
	})

	t.Run("rejects transition out of a terminal status", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		id := seed(f, domain.OrderStatusCompleted)

		_, err := f.service.UpdateStatus(ctx, id, domain.OrderStatusPending)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if len(f.notifier.sent) != 0 {
			t.Fatal("no notification should be sent for a rejected transition")
		}
		if f.repo.orders[id].Status != domain.OrderStatusCompleted {
			t.Fatal("stored status must be unchanged")
		}
	})

	t.Run("publishes a status changed event", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		id := seed(f, domain.OrderStatusPending)

		if _, err := f.service.UpdateStatus(ctx, id, domain.OrderStatusConfirmed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.events.published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(f.events.published))
		}
		published := f.events.published[0]
		if published.eventType != domain.EventOrderStatusChanged || published.key != id {
			t.Fatalf("unexpected event %+v", published)
		}
		event := published.event.(domain.OrderStatusChangedEvent)
		if event.OldStatus != domain.OrderStatusPending || event.NewStatus != domain.OrderStatusConfirmed {
			t.Fatalf("unexpected event payload %+v", event)
		}
	})
}

func TestUpdateOrder(t *testing.T) {
	ctx := context.Background()

	seed := func(f *serviceFixture) string {
		order, err := f.service.CreateOrder(ctx, "guest-1", CreateOrderInput{
			VoucherID: "voucher-10",
			Phone:     "0123",
			Lines:     lines(domain.OrderLine{DishID: "dish-a", Quantity: 2}),
		})
		if err != nil {
			t.Fatalf("seed order: %v", err)
		}
		f.notifier.sent = nil
		f.events.published = nil
		return order.ID
	}

	t.Run("unknown order id", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		_, err := f.service.UpdateOrder(ctx, "order-nope", UpdateOrderInput{})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("new lines replace old ones and reprice with stored discount", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		id := seed(f)

		order, err := f.service.UpdateOrder(ctx, id, UpdateOrderInput{
			Lines: lines(domain.OrderLine{DishID: "dish-b", Quantity: 3}),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order.Lines) != 1 || order.Lines[0].DishID != "dish-b" || order.Lines[0].Quantity != 3 {
			t.Fatalf("expected only the new line set, got %+v", order.Lines)
		}
		// 15000 with the order's stored 10% discount carried over
		if order.Payment != 13500 {
			t.Fatalf("expected payment 13500, got %d", order.Payment)
		}
		if !f.repo.replacedLines {
			t.Fatal("expected wholesale line replacement")
		}
		stored := f.repo.orders[id]
		if len(stored.Lines) != 1 || stored.Lines[0].DishID != "dish-b" {
			t.Fatalf("stored lines must be the new set only, got %+v", stored.Lines)
		}
	})

	t.Run("new voucher overrides stored discount", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		id := seed(f)
		f.vouchers.vouchers["voucher-20"] = &domain.Voucher{
			ID:        "voucher-20",
			Discount:  20,
			DateStart: time.Now().Add(-time.Hour),
			DateEnd:   time.Now().Add(time.Hour),
		}

		voucherID := "voucher-20"
		order, err := f.service.UpdateOrder(ctx, id, UpdateOrderInput{
			VoucherID: &voucherID,
			Lines:     lines(domain.OrderLine{DishID: "dish-a", Quantity: 1}),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Discount != 20 || order.Payment != 8000 {
			t.Fatalf("expected 20%% off 10000, got discount %d payment %d", order.Discount, order.Payment)
		}
		if order.VoucherID == nil || *order.VoucherID != "voucher-20" {
			t.Fatalf("expected voucher-20, got %v", order.VoucherID)
		}
	})

	t.Run("scalar-only update leaves pricing untouched", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		id := seed(f)
		before := f.repo.orders[id].Payment

		phone := "0999"
		order, err := f.service.UpdateOrder(ctx, id, UpdateOrderInput{Phone: &phone})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Phone != "0999" {
			t.Fatalf("expected phone 0999, got %s", order.Phone)
		}
		if order.Payment != before {
			t.Fatalf("payment changed from %d to %d", before, order.Payment)
		}
		if f.repo.replacedLines {
			t.Fatal("lines must not be replaced")
		}
	})

	t.Run("notifies the guest's user after the write", func(t *testing.T) {
		f := newFixture(Config{RequireVoucher: true})
		id := seed(f)

		phone := "0999"
		if _, err := f.service.UpdateOrder(ctx, id, UpdateOrderInput{Phone: &phone}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.notifier.sent) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(f.notifier.sent))
		}
		note := f.notifier.sent[0]
		if note.userID != "user-1" {
			t.Fatalf("notification must go to the guest's user, got %s", note.userID)
		}
		if note.message != "your order has been updated, id: "+id {
			t.Fatalf("unexpected message %q", note.message)
		}
	})
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()

	f := newFixture(Config{RequireVoucher: true})
	order, err := f.service.CreateOrder(ctx, "guest-1", CreateOrderInput{
		VoucherID: "voucher-10",
		Lines:     lines(domain.OrderLine{DishID: "dish-a", Quantity: 1}),
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	if err := f.service.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.service.DeleteOrder(ctx, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on second delete, got %v", err)
	}
}
