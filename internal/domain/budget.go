package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// BudgetRange is a parsed budget range in whole dollars.
type BudgetRange struct {
	Low  int64
	High int64
}

// ParseBudgetRange parses a budget range string of the form
// "$500K - $750K" into a low/high dollar pair. The "$" prefix is
// optional on each side; a trailing "K" multiplies by one thousand
// and a trailing "M" by one million. The separator must be " - ".
func ParseBudgetRange(s string) (BudgetRange, error) {
	parts := strings.Split(s, " - ")
	if len(parts) != 2 {
		return BudgetRange{}, NewDomainErrorWithCause(ErrCodeValidation, "invalid budget range format",
			fmt.Errorf("expected %q separator in %q", " - ", s))
	}

	low, err := parseBudgetAmount(parts[0])
	if err != nil {
		return BudgetRange{}, NewDomainErrorWithCause(ErrCodeValidation, "invalid budget range format", err)
	}

	high, err := parseBudgetAmount(parts[1])
	if err != nil {
		return BudgetRange{}, NewDomainErrorWithCause(ErrCodeValidation, "invalid budget range format", err)
	}

	return BudgetRange{Low: low, High: high}, nil
}

func parseBudgetAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, fmt.Errorf("empty budget amount")
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		multiplier = 1_000
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "m"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed budget amount %q: %w", s, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative budget amount %q", s)
	}

	return int64(value * float64(multiplier)), nil
}
