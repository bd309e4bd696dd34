package apiutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/posadahq/backoffice/internal/hotel"
)

func ParseNonNegativeInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return 0, FieldError{Field: field, Reason: "must be 0 or greater"}
	}
	return value, nil
}

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, FieldError{Field: field, Reason: "must be greater than 0"}
	}
	return value, nil
}

func ParseNonNegativeFloatField(raw string, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0, FieldError{Field: field, Reason: "must be 0 or greater"}
	}
	return value, nil
}

// ParseDateField accepts the date encodings the backend and the browser
// produce for form fields.
func ParseDateField(raw string, field string) (hotel.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return hotel.Date{}, FieldError{Field: field, Reason: "is required"}
	}

	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return hotel.Date{Time: parsed}, nil
		}
	}
	return hotel.Date{}, FieldError{Field: field, Reason: "must be a valid date"}
}

// ParseOptionalDateField is ParseDateField with absence allowed.
func ParseOptionalDateField(raw string, field string) (hotel.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return hotel.Date{}, nil
	}
	return ParseDateField(raw, field)
}

func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func FormatDate(date hotel.Date) string {
	if date.IsZero() {
		return "N/A"
	}
	return date.Format("2006-01-02")
}
