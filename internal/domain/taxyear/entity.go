package taxyear

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Year identifies a UK tax year by its starting calendar year. Year(2024)
// runs 6 April 2024 through 5 April 2025.
type Year int

// For returns the tax year containing date. Days up to and including
// 5 April belong to the year that started the previous April.
func For(date time.Time) Year {
	y := date.Year()
	if date.Month() < time.April || (date.Month() == time.April && date.Day() <= 5) {
		y--
	}
	return Year(y)
}

// Start is 6 April of the starting year, UTC.
func (y Year) Start() time.Time {
	return time.Date(int(y), time.April, 6, 0, 0, 0, 0, time.UTC)
}

// End is 5 April of the following year, UTC.
func (y Year) End() time.Time {
	return time.Date(int(y)+1, time.April, 5, 0, 0, 0, 0, time.UTC)
}

func (y Year) Contains(date time.Time) bool {
	return For(date) == y
}

// Label renders the conventional "2024-2025" form.
func (y Year) Label() string {
	return fmt.Sprintf("%d-%d", int(y), int(y)+1)
}

// Aggregate is the fully recomputed roll-up of one user's payslips within
// a tax year. It is never adjusted incrementally: every change to the
// underlying payslips rebuilds it from scratch.
type Aggregate struct {
	ID                     string
	UserID                 string
	Year                   Year
	TotalGrossPay          decimal.Decimal
	TotalTax               decimal.Decimal
	TotalNationalInsurance decimal.Decimal
	TotalPension           decimal.Decimal
	MonthsPresent          int
	EstimatedAnnualTax     decimal.Decimal
	UpdatedAt              time.Time
}

// EstimateAnnualTax projects a full year of tax from the months recorded so
// far: total tax divided by months present, times twelve. Zero months
// yields zero.
func EstimateAnnualTax(totalTax decimal.Decimal, monthsPresent int) decimal.Decimal {
	if monthsPresent == 0 {
		return decimal.Zero
	}
	return totalTax.Div(decimal.NewFromInt(int64(monthsPresent))).Mul(decimal.NewFromInt(12)).Round(2)
}
