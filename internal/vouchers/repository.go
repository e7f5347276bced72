// Package vouchers exposes the voucher lookup consumed by the order
// workflow. Validity is judged by the caller against the voucher's window.
package vouchers

import (
	"context"
	"database/sql"

	"github.com/hieuhoang83/quanan-api/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetVoucher returns nil without error when no voucher has the given id.
func (r *Repository) GetVoucher(ctx context.Context, id string) (*domain.Voucher, error) {
	voucher := &domain.Voucher{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, code, description, discount, date_start, date_end
		FROM vouchers
		WHERE id = $1
	`, id).Scan(&voucher.ID, &voucher.Code, &voucher.Description, &voucher.Discount,
		&voucher.DateStart, &voucher.DateEnd)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return voucher, nil
}
