package taxyear

import (
	"context"
	"log/slog"

	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/domain/taxyear"
)

type TaxYearService interface {
	// Recompute rebuilds the aggregate for one (user, year) from every
	// payslip in that year. It is idempotent: recomputing an unchanged
	// year writes the same values again.
	Recompute(ctx context.Context, userID string, year taxyear.Year) error

	GetByYear(ctx context.Context, userID string, year int) (taxyear.AggregateResponse, error)
	List(ctx context.Context, userID string) (taxyear.ListAggregatesResponse, error)
}

type TaxYearServiceImpl struct {
	aggregateRepo taxyear.AggregateRepository
	payslipRepo   payslip.PayslipRepository
}

func NewTaxYearService(
	aggregateRepo taxyear.AggregateRepository,
	payslipRepo payslip.PayslipRepository,
) TaxYearService {
	return &TaxYearServiceImpl{
		aggregateRepo: aggregateRepo,
		payslipRepo:   payslipRepo,
	}
}

// Recompute implements TaxYearService. The aggregate is derived state:
// it is always rebuilt from scratch, never adjusted by deltas, so a missed
// or repeated recompute can never leave it skewed.
func (s *TaxYearServiceImpl) Recompute(ctx context.Context, userID string, year taxyear.Year) error {
	payslips, err := s.payslipRepo.ListByPeriodRange(ctx, userID, year.Start(), year.End())
	if err != nil {
		return err
	}

	if len(payslips) == 0 {
		slog.Info("tax year has no payslips left, removing aggregate", "user_id", userID, "tax_year", int(year))
		return s.aggregateRepo.Delete(ctx, userID, year)
	}

	aggregate := taxyear.Aggregate{
		UserID: userID,
		Year:   year,
	}
	for _, p := range payslips {
		aggregate.TotalGrossPay = aggregate.TotalGrossPay.Add(p.Fields.GrossPay)
		aggregate.TotalTax = aggregate.TotalTax.Add(p.Fields.Tax)
		aggregate.TotalNationalInsurance = aggregate.TotalNationalInsurance.Add(p.Fields.NationalInsurance)
		aggregate.TotalPension = aggregate.TotalPension.Add(p.Fields.Pension)
	}
	aggregate.MonthsPresent = len(payslips)
	aggregate.EstimatedAnnualTax = taxyear.EstimateAnnualTax(aggregate.TotalTax, aggregate.MonthsPresent)

	_, err = s.aggregateRepo.Upsert(ctx, aggregate)
	return err
}

// GetByYear implements TaxYearService.
func (s *TaxYearServiceImpl) GetByYear(ctx context.Context, userID string, year int) (taxyear.AggregateResponse, error) {
	if year < 1000 || year > 9999 {
		return taxyear.AggregateResponse{}, taxyear.ErrInvalidYear
	}

	aggregate, err := s.aggregateRepo.GetByYear(ctx, userID, taxyear.Year(year))
	if err != nil {
		return taxyear.AggregateResponse{}, err
	}

	return toResponse(aggregate), nil
}

// List implements TaxYearService.
func (s *TaxYearServiceImpl) List(ctx context.Context, userID string) (taxyear.ListAggregatesResponse, error) {
	aggregates, err := s.aggregateRepo.ListByOwner(ctx, userID)
	if err != nil {
		return taxyear.ListAggregatesResponse{}, err
	}

	resp := taxyear.ListAggregatesResponse{TaxYears: make([]taxyear.AggregateResponse, 0, len(aggregates))}
	for _, a := range aggregates {
		resp.TaxYears = append(resp.TaxYears, toResponse(a))
	}
	return resp, nil
}

func toResponse(a taxyear.Aggregate) taxyear.AggregateResponse {
	return taxyear.AggregateResponse{
		TaxYear:                int(a.Year),
		Label:                  a.Year.Label(),
		TotalGrossPay:          a.TotalGrossPay,
		TotalTax:               a.TotalTax,
		TotalNationalInsurance: a.TotalNationalInsurance,
		TotalPension:           a.TotalPension,
		MonthsPresent:          a.MonthsPresent,
		EstimatedAnnualTax:     a.EstimatedAnnualTax,
	}
}
