package extraction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const sampleText = `
ACME LTD                     Payslip for July 2024
Employee: J Smith            Tax Code: 1257L

Gross Pay: £3,250.00
PAYE Tax: £450.20
National Insurance: £280.15
Pension Contributions: £162.50
Other Deductions: £0.00

Net Pay: £2,357.15
`

func TestExtractFields(t *testing.T) {
	e := NewExtractor()
	fields := e.ExtractFields(sampleText)

	assert.True(t, fields.GrossPay.Equal(decimal.RequireFromString("3250.00")))
	assert.True(t, fields.NetPay.Equal(decimal.RequireFromString("2357.15")))
	assert.True(t, fields.Tax.Equal(decimal.RequireFromString("450.20")))
	assert.True(t, fields.NationalInsurance.Equal(decimal.RequireFromString("280.15")))
	assert.True(t, fields.Pension.Equal(decimal.RequireFromString("162.50")))
	assert.True(t, fields.OtherDeductions.IsZero())
}

func TestExtractFieldsMissingLabelsDefaultToZero(t *testing.T) {
	e := NewExtractor()
	fields := e.ExtractFields("Net Pay £1,800.00")

	assert.True(t, fields.NetPay.Equal(decimal.RequireFromString("1800.00")))
	assert.True(t, fields.GrossPay.IsZero())
	assert.True(t, fields.Pension.IsZero())
	assert.True(t, fields.Tax.IsZero())
}

func TestExtractFieldsGarbageNeverFails(t *testing.T) {
	e := NewExtractor()

	for _, text := range []string{"", "%%%###", "completely unrelated text", "tax: -500"} {
		fields := e.ExtractFields(text)
		assert.True(t, fields.GrossPay.IsZero(), "input %q", text)
		assert.False(t, fields.Tax.IsNegative(), "input %q", text)
	}
}

func TestExtractFieldsLabelVariants(t *testing.T) {
	e := NewExtractor()

	fields := e.ExtractFields("Take Home Pay = 2100.50\nIncome Tax 310")
	assert.True(t, fields.NetPay.Equal(decimal.RequireFromString("2100.50")))
	assert.True(t, fields.Tax.Equal(decimal.NewFromInt(310)))

	fields = e.ExtractFields("Total Gross: GBP 4,000\nNI Contribution 295.33")
	assert.True(t, fields.GrossPay.Equal(decimal.NewFromInt(4000)))
	assert.True(t, fields.NationalInsurance.Equal(decimal.RequireFromString("295.33")))
}

func TestExtractPeriod(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		text string
		want time.Time
	}{
		{"Pay period 2024-07", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"Period: 07/2024", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"Payslip for July 2024", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"Date paid 31/07/2024", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"Payslip for Sep 2023", time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, ok := e.ExtractPeriod(tt.text)
		assert.True(t, ok, "input %q", tt.text)
		assert.Equal(t, tt.want, got, "input %q", tt.text)
	}

	_, ok := e.ExtractPeriod("no dates here")
	assert.False(t, ok)
}
