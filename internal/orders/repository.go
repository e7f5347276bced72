package orders

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hieuhoang83/quanan-api/internal/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	order.ID = uuid.New().String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, guest_id, status, payment, discount, voucher_id,
			customer_name, email, phone, address, note, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
	`, order.ID, order.GuestID, order.Status, order.Payment, order.Discount, order.VoucherID,
		order.CustomerName, order.Email, order.Phone, order.Address, order.Note,
		order.PaymentMethod, order.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertLines(ctx, tx, order.ID, order.Lines); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, guest_id, status, payment, discount, voucher_id,
			customer_name, email, phone, address, note, payment_method, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.GuestID, &order.Status, &order.Payment, &order.Discount,
		&order.VoucherID, &order.CustomerName, &order.Email, &order.Phone, &order.Address,
		&order.Note, &order.PaymentMethod, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT dish_id, quantity
		FROM order_lines
		WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.DishID, &line.Quantity); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

// Update rewrites the order row. With replaceLines, every existing line is
// deleted and the new set recreated in the same transaction; lines are never
// patched individually.
func (r *PostgresRepository) Update(ctx context.Context, order *domain.Order, replaceLines bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET payment = $2, discount = $3, voucher_id = $4, customer_name = $5,
			email = $6, phone = $7, address = $8, note = $9, payment_method = $10,
			updated_at = $11
		WHERE id = $1
	`, order.ID, order.Payment, order.Discount, order.VoucherID, order.CustomerName,
		order.Email, order.Phone, order.Address, order.Note, order.PaymentMethod,
		order.UpdatedAt)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	if replaceLines {
		if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, order.ID); err != nil {
			return err
		}
		if err := insertLines(ctx, tx, order.ID, order.Lines); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, guest_id, status, payment, discount, voucher_id,
			customer_name, email, phone, address, note, payment_method, created_at, updated_at
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.collectOrders(ctx, rows)
}

func (r *PostgresRepository) ListByGuest(ctx context.Context, guestID string, limit, offset int) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, guest_id, status, payment, discount, voucher_id,
			customer_name, email, phone, address, note, payment_method, created_at, updated_at
		FROM orders
		WHERE guest_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, guestID, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.collectOrders(ctx, rows)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// collectOrders scans the order rows and hydrates their lines with a single
// batched query rather than one query per order.
func (r *PostgresRepository) collectOrders(ctx context.Context, rows *sql.Rows) ([]domain.Order, error) {
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.GuestID, &order.Status, &order.Payment,
			&order.Discount, &order.VoucherID, &order.CustomerName, &order.Email,
			&order.Phone, &order.Address, &order.Note, &order.PaymentMethod,
			&order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		order.Lines = []domain.OrderLine{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	lineRows, err := r.db.QueryContext(ctx, `
		SELECT order_id, dish_id, quantity
		FROM order_lines
		WHERE order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = lineRows.Close() }()

	for lineRows.Next() {
		var orderID string
		var line domain.OrderLine
		if err := lineRows.Scan(&orderID, &line.DishID, &line.Quantity); err != nil {
			return nil, err
		}
		order := orderMap[orderID]
		order.Lines = append(order.Lines, line)
	}

	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}

func insertLines(ctx context.Context, tx *sql.Tx, orderID string, lines []domain.OrderLine) error {
	for _, line := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (id, order_id, dish_id, quantity)
			VALUES ($1, $2, $3, $4)
		`, uuid.New().String(), orderID, line.DishID, line.Quantity)
		if err != nil {
			return err
		}
	}
	return nil
}
