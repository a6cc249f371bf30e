package settings

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/payfolio/payslip-backend-go/internal/pkg/validator"
)

type SettingsResponse struct {
	Location         string           `json:"location"`
	Currency         string           `json:"currency"`
	DateFormat       string           `json:"date_format"`
	Theme            string           `json:"theme"`
	Language         string           `json:"language"`
	Timezone         string           `json:"timezone"`
	SavingsGoal      *decimal.Decimal `json:"savings_goal,omitempty"`
	TaxCode          string           `json:"tax_code"`
	PaymentFrequency string           `json:"payment_frequency"`
}

type UpdateSettingsRequest struct {
	Location         *string          `json:"location,omitempty"`
	Currency         *string          `json:"currency,omitempty"`
	DateFormat       *string          `json:"date_format,omitempty"`
	Theme            *string          `json:"theme,omitempty"`
	Language         *string          `json:"language,omitempty"`
	Timezone         *string          `json:"timezone,omitempty"`
	SavingsGoal      *decimal.Decimal `json:"savings_goal,omitempty"`
	TaxCode          *string          `json:"tax_code,omitempty"`
	PaymentFrequency *string          `json:"payment_frequency,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Theme != nil && !validator.IsInSlice(*r.Theme, Themes) {
		errs = append(errs, validator.ValidationError{Field: "theme", Message: fmt.Sprintf("must be one of: %s", strings.Join(Themes, ", "))})
	}
	if r.DateFormat != nil && !validator.IsInSlice(*r.DateFormat, DateFormats) {
		errs = append(errs, validator.ValidationError{Field: "date_format", Message: fmt.Sprintf("must be one of: %s", strings.Join(DateFormats, ", "))})
	}
	if r.PaymentFrequency != nil && !validator.IsInSlice(*r.PaymentFrequency, PaymentFrequencies) {
		errs = append(errs, validator.ValidationError{Field: "payment_frequency", Message: fmt.Sprintf("must be one of: %s", strings.Join(PaymentFrequencies, ", "))})
	}
	if r.Location != nil && len(*r.Location) != 2 {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "must be a two letter country code"})
	}
	if r.Currency != nil && len(*r.Currency) != 3 {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be a three letter currency code"})
	}
	if r.SavingsGoal != nil && r.SavingsGoal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "savings_goal", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
