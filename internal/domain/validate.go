package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the canonical output format for every date field.
const DateLayout = "2006-01-02"

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	flightDateLayouts = []string{"2006-1-2"}
	birthDateLayouts  = []string{"2006-1-2", "2-1-2006"}
)

func RequireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", NewValidationError(field, "is required")
	}
	return value, nil
}

func ParseEmail(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if err := validate.Var(value, "required,email,max=254"); err != nil {
		return "", NewValidationError(field, "must be a valid email address")
	}
	return value, nil
}

func ParsePassport(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if err := validate.Var(value, "required,alphanum,max=20"); err != nil {
		return "", NewValidationError(field, "must be 1-20 letters or digits")
	}
	return value, nil
}

func ParseFlightDate(field, value string) (time.Time, error) {
	return parseDate(field, value, flightDateLayouts)
}

// ParseBirthDate accepts ISO dates and the day-month-year form, and rejects dates in the future.
func ParseBirthDate(field, value string, now time.Time) (time.Time, error) {
	d, err := parseDate(field, value, birthDateLayouts)
	if err != nil {
		return time.Time{}, err
	}
	if d.After(now) {
		return time.Time{}, NewValidationError(field, "must not be in the future")
	}
	return d, nil
}

func parseDate(field, value string, layouts []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, NewValidationError(field, "is required")
	}
	for _, layout := range layouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, NewValidationError(field, "is not a valid date")
}

func ParseCount(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, NewValidationError(field, "must be a number")
	}
	if n < 0 {
		return 0, NewValidationError(field, "must not be negative")
	}
	return n, nil
}

// MaxCost is the first value that no longer fits a NUMERIC(12,2) column.
const MaxCost = 1e10

func ParseCost(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, NewValidationError(field, "must be a number")
	}
	return CheckCost(field, v)
}

func CheckCost(field string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewValidationError(field, "must be a number")
	}
	if v < 0 {
		return 0, NewValidationError(field, "must not be negative")
	}
	if v >= MaxCost {
		return 0, NewValidationError(field, "is too large")
	}
	// costs are stored as NUMERIC(12,2); anything finer than cents would be rounded
	cents := v * 100
	if math.Abs(cents-math.Round(cents)) > math.Max(1e-6, cents*1e-14) {
		return 0, NewValidationError(field, "must have at most two decimals")
	}
	return v, nil
}
