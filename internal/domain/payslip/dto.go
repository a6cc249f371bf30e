package payslip

import (
	"github.com/shopspring/decimal"

	"github.com/payfolio/payslip-backend-go/internal/pkg/validator"
)

// ========== EXTRACTION DTOs ==========

type ExtractResponse struct {
	GrossPay          decimal.Decimal `json:"gross_pay"`
	NetPay            decimal.Decimal `json:"net_pay"`
	Tax               decimal.Decimal `json:"tax"`
	NationalInsurance decimal.Decimal `json:"national_insurance"`
	Pension           decimal.Decimal `json:"pension"`
	OtherDeductions   decimal.Decimal `json:"other_deductions"`
	Period            string          `json:"period"` // "YYYY-MM", empty when not recognized
	NeedsReview       bool            `json:"needs_review"`
	DocumentRef       string          `json:"document_ref,omitempty"`
	FileName          string          `json:"file_name,omitempty"`
}

// ========== CONFIRM DTOs ==========

// ConfirmPayslipRequest carries the values the user approved in the
// verification screen. Amounts travel as strings so that coercion and the
// non-negative check happen in one place, the draft setters.
type ConfirmPayslipRequest struct {
	Period            string `json:"period"`
	GrossPay          string `json:"gross_pay"`
	NetPay            string `json:"net_pay"`
	Tax               string `json:"tax"`
	NationalInsurance string `json:"national_insurance"`
	Pension           string `json:"pension"`
	OtherDeductions   string `json:"other_deductions"`
	DocumentRef       string `json:"document_ref,omitempty"`
	FileName          string `json:"file_name,omitempty"`
}

func (r *ConfirmPayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "is required"})
	}
	for name, raw := range map[string]string{
		"gross_pay":          r.GrossPay,
		"net_pay":            r.NetPay,
		"tax":                r.Tax,
		"national_insurance": r.NationalInsurance,
		"pension":            r.Pension,
		"other_deductions":   r.OtherDeductions,
	} {
		if validator.IsEmpty(raw) {
			errs = append(errs, validator.ValidationError{Field: name, Message: "is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FieldValues returns the submitted amounts keyed by field name.
func (r *ConfirmPayslipRequest) FieldValues() map[string]string {
	return map[string]string{
		"gross_pay":          r.GrossPay,
		"net_pay":            r.NetPay,
		"tax":                r.Tax,
		"national_insurance": r.NationalInsurance,
		"pension":            r.Pension,
		"other_deductions":   r.OtherDeductions,
	}
}

// ========== RESPONSE DTOs ==========

type PayslipResponse struct {
	ID                string          `json:"id"`
	Period            string          `json:"period"` // "YYYY-MM"
	GrossPay          decimal.Decimal `json:"gross_pay"`
	NetPay            decimal.Decimal `json:"net_pay"`
	Tax               decimal.Decimal `json:"tax"`
	NationalInsurance decimal.Decimal `json:"national_insurance"`
	Pension           decimal.Decimal `json:"pension"`
	OtherDeductions   decimal.Decimal `json:"other_deductions"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	DocumentURL       *string         `json:"document_url,omitempty"`
	FileName          *string         `json:"file_name,omitempty"`
	Verified          bool            `json:"verified"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

type ListPayslipsResponse struct {
	Payslips []PayslipResponse `json:"payslips"`
	Total    int               `json:"total"`
}

// PayslipFilter narrows list queries. Zero times mean unbounded.
type PayslipFilter struct {
	From  string `json:"from,omitempty"` // "YYYY-MM" inclusive
	To    string `json:"to,omitempty"`   // "YYYY-MM" inclusive
	Limit int    `json:"limit,omitempty"`
}
