package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserSettings holds per-user presentation and tax preferences. Every user
// gets a row with UK defaults the first time settings are read.
type UserSettings struct {
	UserID           string
	Location         string
	Currency         string
	DateFormat       string
	Theme            string
	Language         string
	Timezone         string
	SavingsGoal      *decimal.Decimal
	TaxCode          string
	PaymentFrequency string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Defaults returns the settings a fresh account starts from.
func Defaults(userID string) UserSettings {
	return UserSettings{
		UserID:           userID,
		Location:         "GB",
		Currency:         "GBP",
		DateFormat:       "DD/MM/YYYY",
		Theme:            "system",
		Language:         "en",
		Timezone:         "Europe/London",
		TaxCode:          "1257L",
		PaymentFrequency: "monthly",
	}
}

var (
	Themes             = []string{"light", "dark", "system"}
	DateFormats        = []string{"DD/MM/YYYY", "MM/DD/YYYY", "YYYY-MM-DD"}
	PaymentFrequencies = []string{"weekly", "fortnightly", "four_weekly", "monthly"}
)
