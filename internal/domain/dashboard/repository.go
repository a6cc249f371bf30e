package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTotals is one aggregated month from the payslips table.
type MonthlyTotals struct {
	Month    time.Time
	GrossPay decimal.Decimal
	NetPay   decimal.Decimal
	Tax      decimal.Decimal
}

// DashboardRepository defines the aggregate queries behind the dashboard.
type DashboardRepository interface {
	// GetMonthlySeries returns one row per month with a payslip, for
	// from <= period <= to, ordered ascending.
	GetMonthlySeries(ctx context.Context, userID string, from, to time.Time) ([]MonthlyTotals, error)

	CountPayslips(ctx context.Context, userID string) (int64, error)
}
