package postgresql

import (
	"context"
	"time"

	"github.com/payfolio/payslip-backend-go/internal/domain/dashboard"
	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetMonthlySeries implements dashboard.DashboardRepository. Periods are
// already month-start dates, so no bucketing is needed.
func (r *dashboardRepositoryImpl) GetMonthlySeries(ctx context.Context, userID string, from, to time.Time) ([]dashboard.MonthlyTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT period, gross_pay, net_pay, tax
		FROM payslips
		WHERE user_id = $1 AND period >= $2 AND period <= $3
		ORDER BY period ASC
	`

	rows, err := q.Query(ctx, query, userID, payslip.NormalizePeriod(from), payslip.NormalizePeriod(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []dashboard.MonthlyTotals
	for rows.Next() {
		var m dashboard.MonthlyTotals
		if err := rows.Scan(&m.Month, &m.GrossPay, &m.NetPay, &m.Tax); err != nil {
			return nil, err
		}
		m.Month = payslip.NormalizePeriod(m.Month)
		series = append(series, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return series, nil
}

// CountPayslips implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPayslips(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payslips WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
