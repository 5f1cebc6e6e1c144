package dtm

import (
	"strings"
	"time"
)

// Weekday represents a day of the week.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Number returns the ISO 8601 day number (Monday=1, Sunday=7).
func (w Weekday) Number() int {
	return int(w)
}

// Code returns the lowercase three letter code, e.g. "mon".
func (w Weekday) Code() string {
	codes := map[Weekday]string{
		Monday:    "mon",
		Tuesday:   "tue",
		Wednesday: "wed",
		Thursday:  "thu",
		Friday:    "fri",
		Saturday:  "sat",
		Sunday:    "sun",
	}
	return codes[w]
}

func (w Weekday) String() string {
	return w.Code()
}

// FullName returns the lowercase day name, e.g. "monday".
func (w Weekday) FullName() string {
	return strings.ToLower(time.Weekday(w % 7).String())
}

// WeekdayCodes lists the accepted weekday codes, Monday first.
var WeekdayCodes = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// ParseWeekday parses a weekday code. Only the exact lowercase codes in
// WeekdayCodes are accepted.
func ParseWeekday(s string) (Weekday, bool) {
	for i, code := range WeekdayCodes {
		if code == s {
			return Weekday(i + 1), true
		}
	}
	return 0, false
}

// weekdayOf returns the weekday of t.
func weekdayOf(t time.Time) Weekday {
	return Weekday(isoWeekday(t))
}

// weekdaySet validates targets and returns them as a lookup set.
func weekdaySet(targets []string) (map[Weekday]bool, error) {
	if len(targets) == 0 {
		return nil, InvalidArgumentTypeError("weekday search requires a weekday or a list of weekdays")
	}
	set := make(map[Weekday]bool, len(targets))
	for _, code := range targets {
		wd, ok := ParseWeekday(code)
		if !ok {
			return nil, InvalidWeekdayError(code)
		}
		set[wd] = true
	}
	return set, nil
}
