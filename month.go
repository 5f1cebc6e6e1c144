package dtm

import (
	"strings"
	"time"
)

// MonthName represents a month of the year.
type MonthName int

const (
	Jan MonthName = iota + 1
	Feb
	Mar
	Apr
	May
	Jun
	Jul
	Aug
	Sep
	Oct
	Nov
	Dec
)

// Number returns the month number (1-12).
func (m MonthName) Number() int {
	return int(m)
}

// String returns the lowercase three letter abbreviation, e.g. "jan".
func (m MonthName) String() string {
	return m.FullName()[:3]
}

// FullName returns the lowercase month name, e.g. "january".
func (m MonthName) FullName() string {
	return strings.ToLower(time.Month(m).String())
}

// ParseMonthName parses a full month name or its abbreviation (case
// insensitive).
func ParseMonthName(s string) (MonthName, bool) {
	s = strings.ToLower(s)
	for m := Jan; m <= Dec; m++ {
		if s == m.FullName() || s == m.String() {
			return m, true
		}
	}
	return 0, false
}
