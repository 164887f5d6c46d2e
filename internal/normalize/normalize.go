// Package normalize converts raw statement field strings into canonical
// types. Each function is pure; bank-specific variance is expressed through
// parameters, not package state.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout selects which day/month/year encoding a bank uses.
type DateLayout int

const (
	// DayMonthYear2 is DD/MM/YY with a two-digit year.
	DayMonthYear2 DateLayout = iota
	// DayMonthYear4 is DD/MM/YYYY.
	DayMonthYear4
)

// DateError reports a date string that matched no known encoding.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("unrecognized date %q", e.Value)
}

// AmountError reports an amount string that could not be parsed.
type AmountError struct {
	Value string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("unparseable amount %q", e.Value)
}

// Date parses a statement date under the given layout. Two-digit years
// below 50 resolve to 20xx, the rest to 19xx.
func Date(s string, layout DateLayout) (time.Time, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, &DateError{Value: s}
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, &DateError{Value: s}
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, &DateError{Value: s}
	}
	yearStr := strings.TrimSpace(parts[2])
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, &DateError{Value: s}
	}

	switch layout {
	case DayMonthYear2:
		if len(yearStr) == 2 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
	case DayMonthYear4:
		if len(yearStr) != 4 {
			return time.Time{}, &DateError{Value: s}
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, &DateError{Value: s}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes Feb 30 into March; reject that.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, &DateError{Value: s}
	}
	return t, nil
}

// Amount parses a statement amount. Thousands separators, tab and space
// artifacts, currency symbols, and surrounding quotes are stripped. An
// empty field is zero, never an error.
func Amount(s string) (decimal.Decimal, error) {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &AmountError{Value: s}
	}
	return d, nil
}

// Balance parses a running-balance field. On top of Amount's cleanup it
// accepts the export quirk where a negative balance is written as a
// leading "-," before the comma-grouped digits ("-,93,43,827.31").
func Balance(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(stripQuotes(s))
	if strings.HasPrefix(trimmed, "-,") {
		d, err := Amount(trimmed[2:])
		if err != nil {
			return decimal.Zero, err
		}
		return d.Neg(), nil
	}
	return Amount(s)
}

func cleanNumeric(s string) string {
	s = stripQuotes(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			b.WriteRune(r)
		case r == ',', r == '\t', r == ' ':
			// separators and export artifacts
		case r == '₹', r == '$': // currency symbols
		default:
			return s // leave junk for the decimal parser to reject
		}
	}
	return b.String()
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
