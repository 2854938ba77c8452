// Package datetime converts month offsets from the contract date into
// calendar due dates.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/plan-pricing/pkg/constants"
)

// DateLayout is the format of contract and due dates.
const DateLayout = constants.DateLayout

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a contract date. It accepts YYYY-MM-DD and full RFC 3339
// timestamps, keeping only the date.
func ParseDate(date string) (time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if t, err := time.Parse(DateLayout, trimmed); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// DueDate returns the date monthOffset months after base. Day overflow rolls
// into the next month, so Jan 31 plus one month is Mar 3 (Mar 2 in leap years).
func DueDate(base time.Time, monthOffset int) string {
	return base.AddDate(0, monthOffset, 0).Format(DateLayout)
}
