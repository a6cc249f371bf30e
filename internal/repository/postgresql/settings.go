package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/payfolio/payslip-backend-go/internal/domain/settings"
	"github.com/payfolio/payslip-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

const settingsColumns = `user_id, location, currency, date_format, theme, language, timezone,
	savings_goal, tax_code, payment_frequency, created_at, updated_at`

func scanSettings(row pgx.Row) (settings.UserSettings, error) {
	var s settings.UserSettings
	err := row.Scan(
		&s.UserID,
		&s.Location,
		&s.Currency,
		&s.DateFormat,
		&s.Theme,
		&s.Language,
		&s.Timezone,
		&s.SavingsGoal,
		&s.TaxCode,
		&s.PaymentFrequency,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return settings.UserSettings{}, err
	}
	return s, nil
}

// GetByUserID implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetByUserID(ctx context.Context, userID string) (settings.UserSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM user_settings WHERE user_id = $1`

	found, err := scanSettings(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.UserSettings{}, settings.ErrSettingsNotFound
		}
		return settings.UserSettings{}, err
	}
	return found, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.UserSettings) (settings.UserSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_settings (
			user_id, location, currency, date_format, theme, language, timezone,
			savings_goal, tax_code, payment_frequency
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			location = EXCLUDED.location,
			currency = EXCLUDED.currency,
			date_format = EXCLUDED.date_format,
			theme = EXCLUDED.theme,
			language = EXCLUDED.language,
			timezone = EXCLUDED.timezone,
			savings_goal = EXCLUDED.savings_goal,
			tax_code = EXCLUDED.tax_code,
			payment_frequency = EXCLUDED.payment_frequency,
			updated_at = NOW()
		RETURNING ` + settingsColumns

	stored, err := scanSettings(q.QueryRow(ctx, query,
		s.UserID,
		s.Location,
		s.Currency,
		s.DateFormat,
		s.Theme,
		s.Language,
		s.Timezone,
		s.SavingsGoal,
		s.TaxCode,
		s.PaymentFrequency,
	))
	if err != nil {
		return settings.UserSettings{}, err
	}
	return stored, nil
}
