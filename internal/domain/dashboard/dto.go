package dashboard

import "github.com/shopspring/decimal"

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the home dashboard.
type DashboardResponse struct {
	Summary         SummaryResponse         `json:"summary"`
	MonthlySeries   []MonthlySeriesPoint    `json:"monthly_series"`
	SavingsProgress SavingsProgressResponse `json:"savings_progress"`
	RecentPayslips  []RecentPayslipItem     `json:"recent_payslips"`
}

// ========== SUMMARY (Top Cards) ==========

// SummaryResponse shows the most recent payslip's headline figures.
type SummaryResponse struct {
	LatestPeriod    string          `json:"latest_period"` // "YYYY-MM", empty when no payslips
	GrossPay        decimal.Decimal `json:"gross_pay"`
	NetPay          decimal.Decimal `json:"net_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	PayslipCount    int64           `json:"payslip_count"`
}

// ========== MONTHLY SERIES (Bar Chart) ==========

// MonthlySeriesPoint is one month in the last-twelve-months pay chart.
type MonthlySeriesPoint struct {
	Month    string          `json:"month"` // "YYYY-MM"
	GrossPay decimal.Decimal `json:"gross_pay"`
	NetPay   decimal.Decimal `json:"net_pay"`
	Tax      decimal.Decimal `json:"tax"`
}

// ========== SAVINGS PROGRESS ==========

// SavingsProgressResponse compares the user's savings goal against the
// latest month's net pay. Goal nil means the user has not set one.
type SavingsProgressResponse struct {
	Goal         *decimal.Decimal `json:"goal,omitempty"`
	LatestNet    decimal.Decimal  `json:"latest_net"`
	Achievable   bool             `json:"achievable"`
	Remainder    decimal.Decimal  `json:"remainder"`
	PercentOfNet float64          `json:"percent_of_net"`
}

// ========== RECENT PAYSLIPS ==========

type RecentPayslipItem struct {
	ID       string          `json:"id"`
	Period   string          `json:"period"`
	NetPay   decimal.Decimal `json:"net_pay"`
	Verified bool            `json:"verified"`
}
