package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/payfolio/payslip-backend-go/internal/domain/taxyear"
	"github.com/payfolio/payslip-backend-go/internal/pkg/database"
)

type taxYearRepositoryImpl struct {
	db *database.DB
}

func NewTaxYearRepository(db *database.DB) taxyear.AggregateRepository {
	return &taxYearRepositoryImpl{db: db}
}

const aggregateColumns = `id, user_id, tax_year, total_gross_pay, total_tax,
	total_national_insurance, total_pension, months_present, estimated_annual_tax, updated_at`

func scanAggregate(row pgx.Row) (taxyear.Aggregate, error) {
	var a taxyear.Aggregate
	var year int
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&year,
		&a.TotalGrossPay,
		&a.TotalTax,
		&a.TotalNationalInsurance,
		&a.TotalPension,
		&a.MonthsPresent,
		&a.EstimatedAnnualTax,
		&a.UpdatedAt,
	)
	if err != nil {
		return taxyear.Aggregate{}, err
	}
	a.Year = taxyear.Year(year)
	return a, nil
}

// Upsert implements taxyear.AggregateRepository. The aggregate is replaced
// wholesale; nothing is adjusted in place.
func (r *taxYearRepositoryImpl) Upsert(ctx context.Context, aggregate taxyear.Aggregate) (taxyear.Aggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tax_year_aggregates (
			user_id, tax_year, total_gross_pay, total_tax,
			total_national_insurance, total_pension, months_present, estimated_annual_tax
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT uk_tax_year_aggregates_owner_year DO UPDATE SET
			total_gross_pay = EXCLUDED.total_gross_pay,
			total_tax = EXCLUDED.total_tax,
			total_national_insurance = EXCLUDED.total_national_insurance,
			total_pension = EXCLUDED.total_pension,
			months_present = EXCLUDED.months_present,
			estimated_annual_tax = EXCLUDED.estimated_annual_tax,
			updated_at = NOW()
		RETURNING ` + aggregateColumns

	stored, err := scanAggregate(q.QueryRow(ctx, query,
		aggregate.UserID,
		int(aggregate.Year),
		aggregate.TotalGrossPay,
		aggregate.TotalTax,
		aggregate.TotalNationalInsurance,
		aggregate.TotalPension,
		aggregate.MonthsPresent,
		aggregate.EstimatedAnnualTax,
	))
	if err != nil {
		return taxyear.Aggregate{}, err
	}
	return stored, nil
}

// GetByYear implements taxyear.AggregateRepository.
func (r *taxYearRepositoryImpl) GetByYear(ctx context.Context, userID string, year taxyear.Year) (taxyear.Aggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + aggregateColumns + ` FROM tax_year_aggregates WHERE user_id = $1 AND tax_year = $2`

	found, err := scanAggregate(q.QueryRow(ctx, query, userID, int(year)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return taxyear.Aggregate{}, taxyear.ErrAggregateNotFound
		}
		return taxyear.Aggregate{}, err
	}
	return found, nil
}

// ListByOwner implements taxyear.AggregateRepository.
func (r *taxYearRepositoryImpl) ListByOwner(ctx context.Context, userID string) ([]taxyear.Aggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + aggregateColumns + ` FROM tax_year_aggregates WHERE user_id = $1 ORDER BY tax_year DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggregates []taxyear.Aggregate
	for rows.Next() {
		a, err := scanAggregate(rows)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return aggregates, nil
}

// Delete implements taxyear.AggregateRepository.
func (r *taxYearRepositoryImpl) Delete(ctx context.Context, userID string, year taxyear.Year) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM tax_year_aggregates WHERE user_id = $1 AND tax_year = $2`, userID, int(year))
	return err
}
