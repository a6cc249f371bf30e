package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payfolio/payslip-backend-go/internal/domain/dashboard"
	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/domain/settings"
)

type fakeDashboardRepo struct {
	series []dashboard.MonthlyTotals
	count  int64
}

func (f *fakeDashboardRepo) GetMonthlySeries(ctx context.Context, userID string, from, to time.Time) ([]dashboard.MonthlyTotals, error) {
	return f.series, nil
}

func (f *fakeDashboardRepo) CountPayslips(ctx context.Context, userID string) (int64, error) {
	return f.count, nil
}

type fakePayslipListRepo struct {
	records []payslip.PayslipRecord
}

func (f *fakePayslipListRepo) Upsert(ctx context.Context, record payslip.PayslipRecord) (payslip.PayslipRecord, error) {
	return payslip.PayslipRecord{}, errors.New("not used")
}

func (f *fakePayslipListRepo) GetByID(ctx context.Context, id string, userID string) (payslip.PayslipRecord, error) {
	return payslip.PayslipRecord{}, payslip.ErrPayslipNotFound
}

func (f *fakePayslipListRepo) GetByPeriod(ctx context.Context, userID string, period time.Time) (payslip.PayslipRecord, error) {
	return payslip.PayslipRecord{}, payslip.ErrPayslipNotFound
}

func (f *fakePayslipListRepo) ListByOwner(ctx context.Context, userID string, filter payslip.PayslipFilter) ([]payslip.PayslipRecord, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakePayslipListRepo) ListByPeriodRange(ctx context.Context, userID string, from, to time.Time) ([]payslip.PayslipRecord, error) {
	return nil, nil
}

func (f *fakePayslipListRepo) UpdateDocument(ctx context.Context, id string, userID string, documentPath string) error {
	return nil
}

func (f *fakePayslipListRepo) Delete(ctx context.Context, id string, userID string) error {
	return nil
}

type fakeSettingsRepo struct {
	settings settings.UserSettings
	err      error
}

func (f *fakeSettingsRepo) GetByUserID(ctx context.Context, userID string) (settings.UserSettings, error) {
	if f.err != nil {
		return settings.UserSettings{}, f.err
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s settings.UserSettings) (settings.UserSettings, error) {
	return s, nil
}

func newDashboardTestService(settingsRepo *fakeSettingsRepo, records []payslip.PayslipRecord) DashboardService {
	return NewDashboardService(
		&fakeDashboardRepo{count: int64(len(records))},
		&fakePayslipListRepo{records: records},
		settingsRepo,
	)
}

func latestPayslip(net int64) []payslip.PayslipRecord {
	return []payslip.PayslipRecord{{
		ID:     "ps-1",
		Period: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Fields: payslip.Fields{
			GrossPay: decimal.NewFromInt(5000),
			NetPay:   decimal.NewFromInt(net),
			Tax:      decimal.NewFromInt(1000),
		},
		Verified: true,
	}}
}

func TestGetDashboardComputesSavingsProgress(t *testing.T) {
	goal := decimal.NewFromInt(500)
	settingsRepo := &fakeSettingsRepo{settings: settings.UserSettings{SavingsGoal: &goal}}
	svc := newDashboardTestService(settingsRepo, latestPayslip(3500))

	resp, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	require.NotNil(t, resp.SavingsProgress.Goal)
	assert.True(t, resp.SavingsProgress.Goal.Equal(goal))
	assert.True(t, resp.SavingsProgress.Achievable)
	assert.True(t, resp.SavingsProgress.Remainder.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "2024-06", resp.Summary.LatestPeriod)
}

func TestGetDashboardNoSettingsRowMeansNoGoal(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{err: settings.ErrSettingsNotFound}
	svc := newDashboardTestService(settingsRepo, latestPayslip(3500))

	resp, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Nil(t, resp.SavingsProgress.Goal)
	assert.True(t, resp.SavingsProgress.LatestNet.Equal(decimal.NewFromInt(3500)))
}

func TestGetDashboardSettingsFailureStillReturnsDashboard(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{err: errors.New("connection reset")}
	svc := newDashboardTestService(settingsRepo, latestPayslip(3500))

	resp, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Nil(t, resp.SavingsProgress.Goal)
	assert.Equal(t, int64(1), resp.Summary.PayslipCount)
}
