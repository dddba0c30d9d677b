// Package validation holds request-level input checks shared by the HTTP
// handlers. It validates raw user input before it reaches the service layer.
package validation

import (
	"fmt"
	"time"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/registry"
)

// ValidateSelection checks a ticker selection against the fund registry.
// The selection must be non-empty and every symbol must be a known YieldMax
// fund.
func ValidateSelection(tickers []string) error {
	if len(tickers) == 0 {
		return apperrors.ErrEmptySelection
	}
	for _, t := range tickers {
		if !registry.IsKnown(t) {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, t)
		}
	}
	return nil
}

// ParseDate parses a date parameter in "2006-01-02" or RFC3339 format and
// normalizes it to midnight UTC.
func ParseDate(str string) (time.Time, error) {
	if str == "" {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	parsed, err := time.Parse("2006-01-02", str)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidDate, str)
		}
	}
	parsed = parsed.UTC()
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ValidateDateRange checks the derived invariant start <= end.
func ValidateDateRange(start, end time.Time) error {
	if start.After(end) {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}
