// Package dayfmt turns ISO-like date strings into the display form stored on tasks.
package dayfmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fastygo/tasks/domain"
)

const (
	ShortLayout = "Mon, Jan 02"
	LongLayout  = "Mon, Jan 02 2006"
)

// Formatter renders "YYYY-MM-DD[Thh:mm...]" as "Wed, May 04[ hh:mm...]".
type Formatter struct {
	layout string
}

// Option customizes a Formatter.
type Option func(*Formatter)

// WithYear appends the year to the rendered date.
func WithYear() Option {
	return func(f *Formatter) {
		f.layout = LongLayout
	}
}

func New(opts ...Option) *Formatter {
	f := &Formatter{layout: ShortLayout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format parses raw and renders it. Any malformed input yields a FORMAT domain error.
func (f *Formatter) Format(raw string) (string, error) {
	datePart, timePart, err := split(raw)
	if err != nil {
		return "", err
	}

	date, err := parseDate(raw, datePart)
	if err != nil {
		return "", err
	}

	out := date.Format(f.layout)
	if timePart != "" {
		out += " " + timePart
	}
	return out, nil
}

// Format renders raw with the short layout.
func Format(raw string) (string, error) {
	return New().Format(raw)
}

func split(raw string) (string, string, error) {
	parts := strings.Split(raw, "T")
	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", invalid(raw, "more than one time separator")
	}
}

func parseDate(raw, datePart string) (time.Time, error) {
	segments := strings.Split(datePart, "-")
	if len(segments) != 3 {
		return time.Time{}, invalid(raw, "expected year-month-day")
	}

	var nums [3]int
	for i, seg := range segments {
		n, err := strconv.Atoi(strings.TrimSpace(seg))
		if err != nil {
			return time.Time{}, invalid(raw, fmt.Sprintf("%q is not a number", seg))
		}
		nums[i] = n
	}

	year, month, day := nums[0], nums[1], nums[2]
	if year < 1 || year > 9999 {
		return time.Time{}, invalid(raw, "year out of range")
	}

	// time.Date normalizes overflow (month 13, Feb 30); a valid date round-trips.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, invalid(raw, "not a calendar date")
	}
	return date, nil
}

func invalid(raw, reason string) error {
	return domain.NewError(domain.ErrCodeFormat, fmt.Sprintf("invalid day %q: %s", raw, reason))
}
