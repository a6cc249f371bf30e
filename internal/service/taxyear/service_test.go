package taxyear

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/domain/taxyear"
)

// fakePayslipRepo keeps payslips keyed by (user, period) and honors the
// one-row-per-month rule the same way the database constraint does.
type fakePayslipRepo struct {
	records map[string]payslip.PayslipRecord
}

func newFakePayslipRepo() *fakePayslipRepo {
	return &fakePayslipRepo{records: make(map[string]payslip.PayslipRecord)}
}

func (f *fakePayslipRepo) key(userID string, period time.Time) string {
	return userID + "|" + period.Format("2006-01")
}

func (f *fakePayslipRepo) Upsert(_ context.Context, record payslip.PayslipRecord) (payslip.PayslipRecord, error) {
	record.ID = f.key(record.UserID, record.Period)
	f.records[record.ID] = record
	return record, nil
}

func (f *fakePayslipRepo) GetByID(_ context.Context, id string, userID string) (payslip.PayslipRecord, error) {
	r, ok := f.records[id]
	if !ok || r.UserID != userID {
		return payslip.PayslipRecord{}, payslip.ErrPayslipNotFound
	}
	return r, nil
}

func (f *fakePayslipRepo) GetByPeriod(_ context.Context, userID string, period time.Time) (payslip.PayslipRecord, error) {
	r, ok := f.records[f.key(userID, period)]
	if !ok {
		return payslip.PayslipRecord{}, payslip.ErrPayslipNotFound
	}
	return r, nil
}

func (f *fakePayslipRepo) ListByOwner(_ context.Context, userID string, _ payslip.PayslipFilter) ([]payslip.PayslipRecord, int64, error) {
	var out []payslip.PayslipRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePayslipRepo) ListByPeriodRange(_ context.Context, userID string, from, to time.Time) ([]payslip.PayslipRecord, error) {
	var out []payslip.PayslipRecord
	for _, r := range f.records {
		if r.UserID == userID && !r.Period.Before(from) && !r.Period.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePayslipRepo) UpdateDocument(_ context.Context, id string, userID string, documentPath string) error {
	r, ok := f.records[id]
	if !ok || r.UserID != userID {
		return payslip.ErrPayslipNotFound
	}
	r.DocumentPath = &documentPath
	f.records[id] = r
	return nil
}

func (f *fakePayslipRepo) Delete(_ context.Context, id string, userID string) error {
	r, ok := f.records[id]
	if !ok || r.UserID != userID {
		return payslip.ErrPayslipNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeAggregateRepo struct {
	aggregates map[string]taxyear.Aggregate
}

func newFakeAggregateRepo() *fakeAggregateRepo {
	return &fakeAggregateRepo{aggregates: make(map[string]taxyear.Aggregate)}
}

func (f *fakeAggregateRepo) key(userID string, year taxyear.Year) string {
	return userID + "|" + year.Label()
}

func (f *fakeAggregateRepo) Upsert(_ context.Context, a taxyear.Aggregate) (taxyear.Aggregate, error) {
	f.aggregates[f.key(a.UserID, a.Year)] = a
	return a, nil
}

func (f *fakeAggregateRepo) GetByYear(_ context.Context, userID string, year taxyear.Year) (taxyear.Aggregate, error) {
	a, ok := f.aggregates[f.key(userID, year)]
	if !ok {
		return taxyear.Aggregate{}, taxyear.ErrAggregateNotFound
	}
	return a, nil
}

func (f *fakeAggregateRepo) ListByOwner(_ context.Context, userID string) ([]taxyear.Aggregate, error) {
	var out []taxyear.Aggregate
	for _, a := range f.aggregates {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAggregateRepo) Delete(_ context.Context, userID string, year taxyear.Year) error {
	delete(f.aggregates, f.key(userID, year))
	return nil
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func slip(userID string, period time.Time, gross, net, tax, ni string) payslip.PayslipRecord {
	return payslip.PayslipRecord{
		UserID: userID,
		Period: period,
		Fields: payslip.Fields{
			GrossPay:          decimal.RequireFromString(gross),
			NetPay:            decimal.RequireFromString(net),
			Tax:               decimal.RequireFromString(tax),
			NationalInsurance: decimal.RequireFromString(ni),
		},
		Verified: true,
	}
}

func TestRecomputeSumsAllMonths(t *testing.T) {
	ctx := context.Background()
	payslips := newFakePayslipRepo()
	aggregates := newFakeAggregateRepo()
	svc := NewTaxYearService(aggregates, payslips)

	// Two months inside the 2024-2025 tax year.
	_, err := payslips.Upsert(ctx, slip("u1", month(2024, time.May), "3000", "2300", "500", "250"))
	require.NoError(t, err)
	_, err = payslips.Upsert(ctx, slip("u1", month(2024, time.June), "3000", "2250", "550", "250"))
	require.NoError(t, err)

	require.NoError(t, svc.Recompute(ctx, "u1", taxyear.Year(2024)))

	resp, err := svc.GetByYear(ctx, "u1", 2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-2025", resp.Label)
	assert.True(t, resp.TotalGrossPay.Equal(decimal.NewFromInt(6000)))
	assert.True(t, resp.TotalTax.Equal(decimal.NewFromInt(1050)))
	assert.True(t, resp.TotalNationalInsurance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 2, resp.MonthsPresent)
	assert.Equal(t, "6300", resp.EstimatedAnnualTax.String(), "1050 / 2 * 12")
}

func TestRecomputeAfterCorrectionReplacesTotals(t *testing.T) {
	ctx := context.Background()
	payslips := newFakePayslipRepo()
	aggregates := newFakeAggregateRepo()
	svc := NewTaxYearService(aggregates, payslips)

	period := month(2024, time.July)
	_, err := payslips.Upsert(ctx, slip("u1", period, "2100", "1700", "300", "100"))
	require.NoError(t, err)
	require.NoError(t, svc.Recompute(ctx, "u1", taxyear.For(period)))

	resp, err := svc.GetByYear(ctx, "u1", 2024)
	require.NoError(t, err)
	assert.True(t, resp.TotalGrossPay.Equal(decimal.NewFromInt(2100)))

	// Corrected resubmission for the same month.
	_, err = payslips.Upsert(ctx, slip("u1", period, "2000", "1620", "290", "90"))
	require.NoError(t, err)
	require.NoError(t, svc.Recompute(ctx, "u1", taxyear.For(period)))

	resp, err = svc.GetByYear(ctx, "u1", 2024)
	require.NoError(t, err)
	assert.True(t, resp.TotalGrossPay.Equal(decimal.NewFromInt(2000)), "totals reflect the correction, not the sum of both submissions")
	assert.Equal(t, 1, resp.MonthsPresent)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	payslips := newFakePayslipRepo()
	aggregates := newFakeAggregateRepo()
	svc := NewTaxYearService(aggregates, payslips)

	_, err := payslips.Upsert(ctx, slip("u1", month(2024, time.May), "3000", "2300", "500", "250"))
	require.NoError(t, err)

	require.NoError(t, svc.Recompute(ctx, "u1", taxyear.Year(2024)))
	first, err := svc.GetByYear(ctx, "u1", 2024)
	require.NoError(t, err)

	require.NoError(t, svc.Recompute(ctx, "u1", taxyear.Year(2024)))
	second, err := svc.GetByYear(ctx, "u1", 2024)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecomputeRespectsAprilBoundary(t *testing.T) {
	ctx := context.Background()
	payslips := newFakePayslipRepo()
	aggregates := newFakeAggregateRepo()
	svc := NewTaxYearService(aggregates, payslips)

	// Periods sit on the first of the month, so April 2025 (2025-04-01)
	// still belongs to 2024-2025; May 2025 is the first month of 2025-2026.
	_, err := payslips.Upsert(ctx, slip("u1", month(2025, time.March), "3000", "2300", "500", "250"))
	require.NoError(t, err)
	_, err = payslips.Upsert(ctx, slip("u1", month(2025, time.April), "3000", "2300", "500", "250"))
	require.NoError(t, err)
	_, err = payslips.Upsert(ctx, slip("u1", month(2025, time.May), "3000", "2300", "500", "250"))
	require.NoError(t, err)

	require.NoError(t, svc.Recompute(ctx, "u1", taxyear.Year(2024)))
	require.NoError(t, svc.Recompute(ctx, "u1", taxyear.Year(2025)))

	y2024, err := svc.GetByYear(ctx, "u1", 2024)
	require.NoError(t, err)
	y2025, err := svc.GetByYear(ctx, "u1", 2025)
	require.NoError(t, err)

	assert.Equal(t, 2, y2024.MonthsPresent)
	assert.Equal(t, 1, y2025.MonthsPresent)
}

func TestRecomputeRemovesEmptyYear(t *testing.T) {
	ctx := context.Background()
	payslips := newFakePayslipRepo()
	aggregates := newFakeAggregateRepo()
	svc := NewTaxYearService(aggregates, payslips)

	period := month(2024, time.August)
	stored, err := payslips.Upsert(ctx, slip("u1", period, "3000", "2300", "500", "250"))
	require.NoError(t, err)
	require.NoError(t, svc.Recompute(ctx, "u1", taxyear.For(period)))

	require.NoError(t, payslips.Delete(ctx, stored.ID, "u1"))
	require.NoError(t, svc.Recompute(ctx, "u1", taxyear.For(period)))

	_, err = svc.GetByYear(ctx, "u1", 2024)
	assert.ErrorIs(t, err, taxyear.ErrAggregateNotFound)
}

func TestGetByYearRejectsNonsenseYear(t *testing.T) {
	svc := NewTaxYearService(newFakeAggregateRepo(), newFakePayslipRepo())

	_, err := svc.GetByYear(context.Background(), "u1", 24)
	assert.ErrorIs(t, err, taxyear.ErrInvalidYear)
}
