package taxyear

import "github.com/shopspring/decimal"

type AggregateResponse struct {
	TaxYear                int             `json:"tax_year"`
	Label                  string          `json:"label"`
	TotalGrossPay          decimal.Decimal `json:"total_gross_pay"`
	TotalTax               decimal.Decimal `json:"total_tax"`
	TotalNationalInsurance decimal.Decimal `json:"total_national_insurance"`
	TotalPension           decimal.Decimal `json:"total_pension"`
	MonthsPresent          int             `json:"months_present"`
	EstimatedAnnualTax     decimal.Decimal `json:"estimated_annual_tax"`
}

type ListAggregatesResponse struct {
	TaxYears []AggregateResponse `json:"tax_years"`
}
