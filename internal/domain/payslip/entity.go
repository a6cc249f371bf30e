package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fields holds the six monetary amounts extracted from a payslip. Amounts
// are always non-negative; a missing value is zero, never null.
type Fields struct {
	GrossPay          decimal.Decimal
	NetPay            decimal.Decimal
	Tax               decimal.Decimal
	NationalInsurance decimal.Decimal
	Pension           decimal.Decimal
	OtherDeductions   decimal.Decimal
}

// TotalDeductions sums everything withheld from gross pay.
func (f Fields) TotalDeductions() decimal.Decimal {
	return f.Tax.Add(f.NationalInsurance).Add(f.Pension).Add(f.OtherDeductions)
}

// PayslipRecord - one verified payslip per (owner, period).
// Period is normalized to the first day of the month, UTC.
type PayslipRecord struct {
	ID           string
	UserID       string
	Period       time.Time
	Fields       Fields
	DocumentPath *string
	FileName     *string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FieldNames lists the settable draft fields in display order.
var FieldNames = []string{
	"gross_pay",
	"net_pay",
	"tax",
	"national_insurance",
	"pension",
	"other_deductions",
}

// NormalizePeriod truncates a date to the first day of its month, UTC.
func NormalizePeriod(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
