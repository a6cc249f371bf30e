package payslip

import (
	"context"
	"time"
)

// PayslipRepository defines data access methods for payslips.
// All methods take userID so a user can only ever touch their own rows.
type PayslipRepository interface {
	// Upsert inserts the record, or replaces the stored values when a row
	// for the same (user, period) already exists. Returns the stored row.
	Upsert(ctx context.Context, record PayslipRecord) (PayslipRecord, error)

	GetByID(ctx context.Context, id string, userID string) (PayslipRecord, error)
	GetByPeriod(ctx context.Context, userID string, period time.Time) (PayslipRecord, error)
	ListByOwner(ctx context.Context, userID string, filter PayslipFilter) ([]PayslipRecord, int64, error)

	// ListByPeriodRange returns the user's payslips with from <= period <= to,
	// ordered by period ascending. Used by the tax-year recompute.
	ListByPeriodRange(ctx context.Context, userID string, from, to time.Time) ([]PayslipRecord, error)

	// UpdateDocument repoints a payslip at its promoted document location.
	UpdateDocument(ctx context.Context, id string, userID string, documentPath string) error

	Delete(ctx context.Context, id string, userID string) error
}
