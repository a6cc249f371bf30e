package payslip

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payfolio/payslip-backend-go/internal/pkg/validator"
)

// Draft is the verification buffer between extraction and storage. It is
// seeded from the extractor's best-effort output, mutated by user
// corrections, and only becomes a PayslipRecord through an explicit
// Confirm call. Setters that fail validation report the error and leave
// the draft untouched.
type Draft struct {
	fields      Fields
	period      time.Time
	documentRef string
	fileName    string
	needsReview bool
	earliest    time.Time
}

// NewDraft creates an empty draft. earliest bounds how far back a period
// may be set; the far bound is always the current month.
func NewDraft(earliest time.Time) *Draft {
	return &Draft{earliest: NormalizePeriod(earliest)}
}

// Seed loads the extractor's output into the draft without validation;
// the extractor only ever produces non-negative values.
func (d *Draft) Seed(fields Fields, period time.Time) {
	d.fields = fields
	d.period = NormalizePeriod(period)
}

// AttachDocument records where the uploaded source document lives.
func (d *Draft) AttachDocument(ref, fileName string) {
	d.documentRef = ref
	d.fileName = fileName
}

// MarkNeedsReview flags that recognition failed and every field defaulted
// to zero.
func (d *Draft) MarkNeedsReview() {
	d.needsReview = true
}

// SetField coerces raw into a decimal amount for the named field. A value
// that does not parse or is negative is rejected and the draft state is
// unchanged. Zero is legal: a payslip may genuinely carry no pension line.
func (d *Draft) SetField(name string, raw string) error {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return validator.ValidationErrors{{Field: name, Message: "must be a decimal number"}}
	}
	if value.IsNegative() {
		return validator.ValidationErrors{{Field: name, Message: "must be non-negative"}}
	}

	switch name {
	case "gross_pay":
		d.fields.GrossPay = value
	case "net_pay":
		d.fields.NetPay = value
	case "tax":
		d.fields.Tax = value
	case "national_insurance":
		d.fields.NationalInsurance = value
	case "pension":
		d.fields.Pension = value
	case "other_deductions":
		d.fields.OtherDeductions = value
	default:
		return ErrUnknownField
	}

	return nil
}

// SetPeriod accepts a "YYYY-MM" month. Future months and months before the
// configured earliest supported period are rejected.
func (d *Draft) SetPeriod(raw string) error {
	month, ok := validator.IsValidMonth(raw)
	if !ok {
		return validator.ValidationErrors{{Field: "period", Message: "must be a month in YYYY-MM form"}}
	}

	period := NormalizePeriod(month)
	if period.After(NormalizePeriod(time.Now().UTC())) {
		return validator.ValidationErrors{{Field: "period", Message: "must not be a future month"}}
	}
	if period.Before(d.earliest) {
		return validator.ValidationErrors{{Field: "period", Message: "is before the earliest supported month"}}
	}

	d.period = period
	return nil
}

func (d *Draft) Fields() Fields {
	return d.fields
}

func (d *Draft) Period() time.Time {
	return d.period
}

func (d *Draft) DocumentRef() string {
	return d.documentRef
}

func (d *Draft) FileName() string {
	return d.fileName
}

func (d *Draft) NeedsReview() bool {
	return d.needsReview
}

// Confirm produces the record to persist. The returned value is a copy;
// later draft mutation does not affect it. There is no implicit accept:
// callers must invoke this explicitly once the user approves the values.
func (d *Draft) Confirm(userID string) (PayslipRecord, error) {
	if d.period.IsZero() {
		return PayslipRecord{}, ErrPeriodRequired
	}

	record := PayslipRecord{
		UserID:   userID,
		Period:   d.period,
		Fields:   d.fields,
		Verified: true,
	}
	if d.documentRef != "" {
		ref := d.documentRef
		record.DocumentPath = &ref
	}
	if d.fileName != "" {
		name := d.fileName
		record.FileName = &name
	}
	return record, nil
}
