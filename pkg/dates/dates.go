package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a month-precision calendar value. The zero value means "absent".
type Date struct {
	Year  int
	Month time.Month
}

var (
	monthYearRegex    = regexp.MustCompile(`^\s*(\d{1,2})[-/](\d{4})\s*$`)
	dayMonthYearRegex = regexp.MustCompile(`^\s*(\d{1,2})[-/](\d{1,2})[-/](\d{4})\s*$`)
	yearOnlyRegex     = regexp.MustCompile(`^\s*(\d{4})\s*$`)
)

// Fallback layouts for values that came out of spreadsheets as full
// timestamps rather than one of the supported dialects.
//
//nolint:gochecknoglobals // Parse configuration constants
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2006",
	"January 2006",
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() (zero bool) {
	zero = d.Year == 0 && d.Month == 0
	return zero
}

// String formats the date as zero-padded MM-YYYY.
func (d Date) String() (out string) {
	out = fmt.Sprintf("%02d-%d", int(d.Month), d.Year)
	return out
}

// Time returns the first day of the month in UTC.
func (d Date) Time() (t time.Time) {
	t = time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC)
	return t
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) (before bool) {
	if d.Year != other.Year {
		before = d.Year < other.Year
		return before
	}
	before = d.Month < other.Month
	return before
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) (after bool) {
	after = other.Before(d)
	return after
}

// CurrentMonth truncates now to month precision.
func CurrentMonth(now time.Time) (d Date) {
	d = Date{Year: now.Year(), Month: now.Month()}
	return d
}

// Parse normalizes a raw spreadsheet value into a month-precision date.
// Accepted dialects: MM-YYYY and MM/YYYY (month clamped into [1,12]),
// 4-digit year only (January of that year), DD-MM-YYYY and DD/MM/YYYY
// (day discarded), and a handful of full-timestamp layouts. Two-digit
// years are not supported. Failure is reported via ok, never an error.
func Parse(raw string) (d Date, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return d, false
	}

	if m := monthYearRegex.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		d = Date{Year: year, Month: clampMonth(month)}
		return d, true
	}

	if m := yearOnlyRegex.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		d = Date{Year: year, Month: time.January}
		return d, true
	}

	if m := dayMonthYearRegex.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		d = Date{Year: year, Month: clampMonth(month)}
		return d, true
	}

	for _, layout := range fallbackLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d = CurrentMonthOf(t)
			return d, true
		}
	}

	return d, false
}

// ParseWithPresent is Parse extended with the "Present" marker: any value
// containing the word present (case-insensitive) resolves to the current
// month of now.
func ParseWithPresent(raw string, now time.Time) (d Date, ok bool) {
	if strings.Contains(strings.ToLower(raw), "present") {
		d = CurrentMonth(now)
		return d, true
	}
	d, ok = Parse(raw)
	return d, ok
}

// CurrentMonthOf truncates an arbitrary time to month precision.
func CurrentMonthOf(t time.Time) (d Date) {
	d = Date{Year: t.Year(), Month: t.Month()}
	return d
}

// Format normalizes any accepted input to display form MM-YYYY. When
// allowPresent is set and the input contains "present", the literal
// string "Present" is returned. Unparseable input yields an empty string;
// the original value is never echoed back.
func Format(raw string, allowPresent bool) (out string) {
	if allowPresent && strings.Contains(strings.ToLower(raw), "present") {
		out = "Present"
		return out
	}

	d, ok := Parse(raw)
	if !ok {
		return ""
	}
	out = d.String()
	return out
}

// IsMonthYear reports whether the raw value is already in the MM-YYYY or
// MM/YYYY dialect (used when admitting hand-entered dates).
func IsMonthYear(raw string) (ok bool) {
	ok = monthYearRegex.MatchString(raw)
	return ok
}

// YearsSince computes whole years of tenure between start and the first
// day of the current month of now. Start dates in the future yield 0.
func YearsSince(start Date, now time.Time) (years int) {
	if start.IsZero() {
		return 0
	}
	end := CurrentMonth(now)
	months := (end.Year-start.Year)*12 + int(end.Month) - int(start.Month)
	years = months / 12
	if years < 0 {
		years = 0
	}
	return years
}

func clampMonth(month int) (m time.Month) {
	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}
	m = time.Month(month)
	return m
}
