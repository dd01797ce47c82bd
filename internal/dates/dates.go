// Package dates implements the text codec for CV dates. A date is either
// month/year ("06/2021") or day/month/year ("05/06/2021"); nothing else
// parses.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	monthYearRe    = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{4})$`)
	dayMonthYearRe = regexp.MustCompile(`^(0[1-9]|[12]\d|3[01])/(0[1-9]|1[0-2])/(\d{4})$`)
)

// Parts is a structured CV date. Day is nil for month/year granularity.
// Day range is checked against 1-31 only; 31/02 is accepted.
type Parts struct {
	Day   *int `json:"day"`
	Month int  `json:"month"`
	Year  int  `json:"year"`
}

// NewMonthYear builds a month/year Parts value.
func NewMonthYear(month, year int) Parts {
	return Parts{Day: nil, Month: month, Year: year}
}

// NewDayMonthYear builds a full-date Parts value.
func NewDayMonthYear(day, month, year int) Parts {
	return Parts{Day: &day, Month: month, Year: year}
}

// Clone returns a copy that shares no pointers with p.
func (p Parts) Clone() Parts {
	if p.Day == nil {
		return p
	}
	d := *p.Day
	return Parts{Day: &d, Month: p.Month, Year: p.Year}
}

// Parse reads a date in MM/YYYY or DD/MM/YYYY form. Surrounding whitespace
// is trimmed; any other deviation fails with ok=false.
func Parse(text string) (Parts, bool) {
	trimmed := strings.TrimSpace(text)

	if m := monthYearRe.FindStringSubmatch(trimmed); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return Parts{Day: nil, Month: month, Year: year}, true
	}

	if m := dayMonthYearRe.FindStringSubmatch(trimmed); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return Parts{Day: &day, Month: month, Year: year}, true
	}

	return Parts{}, false
}

// Format renders p in canonical zero-padded form: MM/YYYY when Day is nil,
// DD/MM/YYYY otherwise. Format is a left inverse of Parse for every string
// Parse accepts.
func Format(p Parts) string {
	if p.Day == nil {
		return fmt.Sprintf("%02d/%04d", p.Month, p.Year)
	}
	return fmt.Sprintf("%02d/%02d/%04d", *p.Day, p.Month, p.Year)
}

// FormatPtr renders an optional date; nil becomes the empty string.
func FormatPtr(p *Parts) string {
	if p == nil {
		return ""
	}
	return Format(*p)
}

// Reformat normalizes date text to canonical form. Text that does not parse
// is returned unchanged so legacy freeform values pass through for display.
func Reformat(text string) string {
	if p, ok := Parse(text); ok {
		return Format(p)
	}
	return text
}

// Valid reports whether text is empty or parses as a date. Empty is allowed
// because optional date fields store the empty string.
func Valid(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	_, ok := Parse(text)
	return ok
}
