package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"2024-06", true},
		{"2024-01", true},
		{"2024-13", false},
		{"2024-6", false},
		{"2024-06-01", false},
		{"", false},
	}
	for _, c := range cases {
		got, ok := IsValidMonth(c.input)
		if ok != c.want {
			t.Errorf("IsValidMonth(%q) = %v, want %v", c.input, ok, c.want)
		}
		if ok && got.Day() != 1 {
			t.Errorf("IsValidMonth(%q) day = %d, want 1", c.input, got.Day())
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "gross_pay", Message: "must be non-negative"},
		{Field: "period", Message: "is required"},
	}
	m := errs.ToMap()
	if m["gross_pay"] != "must be non-negative" {
		t.Errorf("unexpected map entry: %v", m)
	}
	if len(m) != 2 {
		t.Errorf("len = %d, want 2", len(m))
	}
}
