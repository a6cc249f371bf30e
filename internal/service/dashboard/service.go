package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payfolio/payslip-backend-go/internal/domain/dashboard"
	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/domain/settings"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (dashboard.DashboardResponse, error)
}

type DashboardServiceImpl struct {
	dashboardRepo dashboard.DashboardRepository
	payslipRepo   payslip.PayslipRepository
	settingsRepo  settings.SettingsRepository
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	payslipRepo payslip.PayslipRepository,
	settingsRepo settings.SettingsRepository,
) DashboardService {
	return &DashboardServiceImpl{
		dashboardRepo: dashboardRepo,
		payslipRepo:   payslipRepo,
		settingsRepo:  settingsRepo,
	}
}

const recentPayslipCount = 5

// GetDashboard implements DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, userID string) (dashboard.DashboardResponse, error) {
	var resp dashboard.DashboardResponse

	now := time.Now().UTC()
	from := payslip.NormalizePeriod(now.AddDate(0, -11, 0))
	series, err := s.dashboardRepo.GetMonthlySeries(ctx, userID, from, payslip.NormalizePeriod(now))
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	resp.MonthlySeries = make([]dashboard.MonthlySeriesPoint, 0, len(series))
	for _, m := range series {
		resp.MonthlySeries = append(resp.MonthlySeries, dashboard.MonthlySeriesPoint{
			Month:    m.Month.Format("2006-01"),
			GrossPay: m.GrossPay,
			NetPay:   m.NetPay,
			Tax:      m.Tax,
		})
	}

	count, err := s.dashboardRepo.CountPayslips(ctx, userID)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}
	resp.Summary.PayslipCount = count

	recent, _, err := s.payslipRepo.ListByOwner(ctx, userID, payslip.PayslipFilter{Limit: recentPayslipCount})
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	resp.RecentPayslips = make([]dashboard.RecentPayslipItem, 0, len(recent))
	for _, p := range recent {
		resp.RecentPayslips = append(resp.RecentPayslips, dashboard.RecentPayslipItem{
			ID:       p.ID,
			Period:   p.Period.Format("2006-01"),
			NetPay:   p.Fields.NetPay,
			Verified: p.Verified,
		})
	}

	var latest payslip.PayslipRecord
	if len(recent) > 0 {
		latest = recent[0] // ListByOwner orders by period descending
		resp.Summary.LatestPeriod = latest.Period.Format("2006-01")
		resp.Summary.GrossPay = latest.Fields.GrossPay
		resp.Summary.NetPay = latest.Fields.NetPay
		resp.Summary.TotalDeductions = latest.Fields.TotalDeductions()
	}

	resp.SavingsProgress = s.savingsProgress(ctx, userID, latest.Fields.NetPay)

	return resp, nil
}

func (s *DashboardServiceImpl) savingsProgress(ctx context.Context, userID string, latestNet decimal.Decimal) dashboard.SavingsProgressResponse {
	progress := dashboard.SavingsProgressResponse{LatestNet: latestNet}

	// No settings row means "nothing to compare against"; any other store
	// failure is reported, not swallowed into an empty goal.
	userSettings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			slog.Error("failed to load settings for savings progress", "user_id", userID, "error", err)
		}
		return progress
	}
	if userSettings.SavingsGoal == nil {
		return progress
	}

	goal := *userSettings.SavingsGoal
	progress.Goal = &goal
	progress.Achievable = latestNet.GreaterThanOrEqual(goal)
	progress.Remainder = latestNet.Sub(goal)
	if latestNet.IsPositive() {
		percent, _ := goal.Div(latestNet).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		progress.PercentOfNet = percent
	}

	return progress
}
