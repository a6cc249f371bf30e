package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/pkg/database"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipColumns = `id, user_id, period, gross_pay, net_pay, tax, national_insurance,
	pension, other_deductions, document_path, file_name, verified, created_at, updated_at`

func scanPayslip(row pgx.Row) (payslip.PayslipRecord, error) {
	var p payslip.PayslipRecord
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Period,
		&p.Fields.GrossPay,
		&p.Fields.NetPay,
		&p.Fields.Tax,
		&p.Fields.NationalInsurance,
		&p.Fields.Pension,
		&p.Fields.OtherDeductions,
		&p.DocumentPath,
		&p.FileName,
		&p.Verified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return payslip.PayslipRecord{}, err
	}
	p.Period = payslip.NormalizePeriod(p.Period)
	return p, nil
}

// Upsert implements payslip.PayslipRepository. The uk_payslips_owner_period
// constraint arbitrates duplicates: a resubmission for the same month
// replaces the stored values in place. A 23505 that still surfaces here
// means two submissions raced; the caller retries.
func (r *payslipRepositoryImpl) Upsert(ctx context.Context, record payslip.PayslipRecord) (payslip.PayslipRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			user_id, period, gross_pay, net_pay, tax, national_insurance,
			pension, other_deductions, document_path, file_name, verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT ON CONSTRAINT uk_payslips_owner_period DO UPDATE SET
			gross_pay = EXCLUDED.gross_pay,
			net_pay = EXCLUDED.net_pay,
			tax = EXCLUDED.tax,
			national_insurance = EXCLUDED.national_insurance,
			pension = EXCLUDED.pension,
			other_deductions = EXCLUDED.other_deductions,
			document_path = COALESCE(EXCLUDED.document_path, payslips.document_path),
			file_name = COALESCE(EXCLUDED.file_name, payslips.file_name),
			verified = EXCLUDED.verified,
			updated_at = NOW()
		RETURNING ` + payslipColumns

	stored, err := scanPayslip(q.QueryRow(ctx, query,
		record.UserID,
		record.Period,
		record.Fields.GrossPay,
		record.Fields.NetPay,
		record.Fields.Tax,
		record.Fields.NationalInsurance,
		record.Fields.Pension,
		record.Fields.OtherDeductions,
		record.DocumentPath,
		record.FileName,
		record.Verified,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payslip.PayslipRecord{}, payslip.ErrStoreConflict
		}
		return payslip.PayslipRecord{}, err
	}

	return stored, nil
}

// GetByID implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string, userID string) (payslip.PayslipRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE id = $1 AND user_id = $2`

	found, err := scanPayslip(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.PayslipRecord{}, payslip.ErrPayslipNotFound
		}
		return payslip.PayslipRecord{}, err
	}
	return found, nil
}

// GetByPeriod implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) GetByPeriod(ctx context.Context, userID string, period time.Time) (payslip.PayslipRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE user_id = $1 AND period = $2`

	found, err := scanPayslip(q.QueryRow(ctx, query, userID, payslip.NormalizePeriod(period)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.PayslipRecord{}, payslip.ErrPayslipNotFound
		}
		return payslip.PayslipRecord{}, err
	}
	return found, nil
}

// ListByOwner implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) ListByOwner(ctx context.Context, userID string, filter payslip.PayslipFilter) ([]payslip.PayslipRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.From != "" {
		if from, err := time.Parse("2006-01", filter.From); err == nil {
			args = append(args, payslip.NormalizePeriod(from))
			where += fmt.Sprintf(" AND period >= $%d", len(args))
		}
	}
	if filter.To != "" {
		if to, err := time.Parse("2006-01", filter.To); err == nil {
			args = append(args, payslip.NormalizePeriod(to))
			where += fmt.Sprintf(" AND period <= $%d", len(args))
		}
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payslips `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + payslipColumns + ` FROM payslips ` + where + ` ORDER BY period DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []payslip.PayslipRecord
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListByPeriodRange implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) ListByPeriodRange(ctx context.Context, userID string, from, to time.Time) ([]payslip.PayslipRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + `
		FROM payslips
		WHERE user_id = $1 AND period >= $2 AND period <= $3
		ORDER BY period ASC`

	// Bounds are compared as given. Stored periods are month-normalized, so
	// exact-day windows such as Apr 6 to Apr 5 select each month exactly once.
	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []payslip.PayslipRecord
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateDocument implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) UpdateDocument(ctx context.Context, id string, userID string, documentPath string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE payslips SET document_path = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		documentPath, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}

// Delete implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payslips WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}
