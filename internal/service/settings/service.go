package settings

import (
	"context"
	"errors"

	"github.com/payfolio/payslip-backend-go/internal/domain/settings"
)

type SettingsService interface {
	// Get returns the user's settings, falling back to defaults for users
	// who have never saved any.
	Get(ctx context.Context, userID string) (settings.SettingsResponse, error)
	Update(ctx context.Context, userID string, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error)
}

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// Get implements SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context, userID string) (settings.SettingsResponse, error) {
	current, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return toResponse(settings.Defaults(userID)), nil
		}
		return settings.SettingsResponse{}, err
	}
	return toResponse(current), nil
}

// Update implements SettingsService. Only the fields present in the request
// change; everything else keeps its stored (or default) value.
func (s *SettingsServiceImpl) Update(ctx context.Context, userID string, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.SettingsResponse{}, err
		}
		current = settings.Defaults(userID)
	}

	if req.Location != nil {
		current.Location = *req.Location
	}
	if req.Currency != nil {
		current.Currency = *req.Currency
	}
	if req.DateFormat != nil {
		current.DateFormat = *req.DateFormat
	}
	if req.Theme != nil {
		current.Theme = *req.Theme
	}
	if req.Language != nil {
		current.Language = *req.Language
	}
	if req.Timezone != nil {
		current.Timezone = *req.Timezone
	}
	if req.SavingsGoal != nil {
		current.SavingsGoal = req.SavingsGoal
	}
	if req.TaxCode != nil {
		current.TaxCode = *req.TaxCode
	}
	if req.PaymentFrequency != nil {
		current.PaymentFrequency = *req.PaymentFrequency
	}

	stored, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return toResponse(stored), nil
}

func toResponse(s settings.UserSettings) settings.SettingsResponse {
	return settings.SettingsResponse{
		Location:         s.Location,
		Currency:         s.Currency,
		DateFormat:       s.DateFormat,
		Theme:            s.Theme,
		Language:         s.Language,
		Timezone:         s.Timezone,
		SavingsGoal:      s.SavingsGoal,
		TaxCode:          s.TaxCode,
		PaymentFrequency: s.PaymentFrequency,
	}
}
