package extraction

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
)

// fieldPatterns maps each payslip field to the label variants seen on UK
// payslips. Amounts are matched label-first: the first pattern that hits
// wins, later ones are not tried.
var fieldPatterns = map[string][]*regexp.Regexp{
	"gross_pay": {
		labelled(`gross\s+pay`),
		labelled(`total\s+gross`),
		labelled(`gross\s+earnings`),
		labelled(`total\s+payments`),
	},
	"net_pay": {
		labelled(`net\s+pay`),
		labelled(`take\s+home(?:\s+pay)?`),
		labelled(`net\s+amount`),
	},
	"tax": {
		labelled(`paye\s+tax`),
		labelled(`income\s+tax`),
		labelled(`tax\s+paid`),
		labelled(`paye`),
		labelled(`tax`),
	},
	"national_insurance": {
		labelled(`national\s+insurance`),
		labelled(`nat\.?\s+ins\.?`),
		labelled(`ni\s+contribution[s]?`),
		labelled(`\bni\b`),
	},
	"pension": {
		labelled(`pension(?:\s+contribution[s]?)?`),
		labelled(`superannuation`),
	},
	"other_deductions": {
		labelled(`other\s+deductions`),
		labelled(`misc\.?\s+deductions`),
	},
}

// labelled builds a case-insensitive pattern matching "<label> [:=] £1,234.56".
// The amount group tolerates currency symbols and thousands separators; a
// leading minus is deliberately outside the group so negative lines never
// capture.
func labelled(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `\s*[:=]?\s*(?:£|GBP\s*)?(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`)
}

var periodPatterns = []*regexp.Regexp{
	// "2024-07" or "2024/07"
	regexp.MustCompile(`\b(20\d{2})[-/](0[1-9]|1[0-2])\b`),
	// "07/2024"
	regexp.MustCompile(`\b(0[1-9]|1[0-2])/(20\d{2})\b`),
	// "July 2024" or "Jul 2024"
	regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+(20\d{2})\b`),
	// "31/07/2024"
	regexp.MustCompile(`\b(?:0[1-9]|[12]\d|3[01])/(0[1-9]|1[0-2])/(20\d{2})\b`),
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Extractor pulls payslip fields out of recognized document text. It never
// returns an error: anything it cannot find comes back as zero, and the
// caller decides whether the result needs manual review.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFields scans text for every known field label. Unmatched fields
// stay zero; matched amounts are always non-negative by construction.
func (e *Extractor) ExtractFields(text string) payslip.Fields {
	var fields payslip.Fields

	for name, patterns := range fieldPatterns {
		amount := firstAmount(text, patterns)
		switch name {
		case "gross_pay":
			fields.GrossPay = amount
		case "net_pay":
			fields.NetPay = amount
		case "tax":
			fields.Tax = amount
		case "national_insurance":
			fields.NationalInsurance = amount
		case "pension":
			fields.Pension = amount
		case "other_deductions":
			fields.OtherDeductions = amount
		}
	}

	return fields
}

// ExtractPeriod looks for a pay period in text. ok is false when nothing
// date-like was recognized; the user picks the month by hand in that case.
func (e *Extractor) ExtractPeriod(text string) (time.Time, bool) {
	for i, pattern := range periodPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		switch i {
		case 0: // YYYY-MM
			t, err := time.Parse("2006-01", match[1]+"-"+match[2])
			if err == nil {
				return payslip.NormalizePeriod(t), true
			}
		case 1: // MM/YYYY
			t, err := time.Parse("2006-01", match[2]+"-"+match[1])
			if err == nil {
				return payslip.NormalizePeriod(t), true
			}
		case 2: // month name
			month, ok := monthsByPrefix[strings.ToLower(match[1][:3])]
			if !ok {
				continue
			}
			t, err := time.Parse("2006", match[2])
			if err == nil {
				return time.Date(t.Year(), month, 1, 0, 0, 0, 0, time.UTC), true
			}
		case 3: // DD/MM/YYYY
			t, err := time.Parse("2006-01", match[2]+"-"+match[1])
			if err == nil {
				return payslip.NormalizePeriod(t), true
			}
		}
	}
	return time.Time{}, false
}

func firstAmount(text string, patterns []*regexp.Regexp) decimal.Decimal {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		raw := strings.ReplaceAll(match[1], ",", "")
		amount, err := decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			continue
		}
		return amount
	}
	return decimal.Zero
}
