package dtm

import (
	"time"
)

const secondsPerDay = 24 * 3600

// wallClock is a broken-down local time with no zone attached.
type wallClock struct {
	Year, Month, Day     int
	Hour, Minute, Second int
}

// wallToUnix converts a wall-clock reading in loc to epoch seconds.
//
// Go's time.Date resolves a spring-forward gap with the post-transition
// offset. Here a gap uses the offset in force before the transition and an
// ambiguous fall-back reading resolves to standard time. When both
// candidates agree on DST the earlier-in-effect offset wins.
func wallToUnix(w wallClock, loc *time.Location) int64 {
	naive := time.Date(w.Year, time.Month(w.Month), w.Day, w.Hour, w.Minute, w.Second, 0, time.UTC).Unix()

	type candidate struct {
		offset int64
		dst    bool
		valid  bool
	}
	var cands []candidate
	for _, sample := range []int64{naive - secondsPerDay, naive + secondsPerDay} {
		t := time.Unix(sample, 0).In(loc)
		_, off := t.Zone()
		c := candidate{offset: int64(off), dst: t.IsDST()}
		if len(cands) == 1 && cands[0].offset == c.offset {
			continue
		}
		_, got := time.Unix(naive-c.offset, 0).In(loc).Zone()
		c.valid = int64(got) == c.offset
		cands = append(cands, c)
	}

	if len(cands) == 1 {
		return naive - cands[0].offset
	}

	first, second := cands[0], cands[1]
	switch {
	case first.valid && !second.valid:
		return naive - first.offset
	case second.valid && !first.valid:
		return naive - second.offset
	}
	// Ambiguous (both valid) or in a gap (neither valid).
	if first.dst && !second.dst {
		return naive - second.offset
	}
	return naive - first.offset
}

// wallOf breaks epoch seconds down into a wall-clock reading in loc.
func wallOf(utc int64, loc *time.Location) wallClock {
	t := time.Unix(utc, 0).In(loc)
	return wallClock{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
	}
}

// offsetAt returns the UTC offset of loc at utc, in seconds.
func offsetAt(utc int64, loc *time.Location) int64 {
	_, off := time.Unix(utc, 0).In(loc).Zone()
	return int64(off)
}

// onDate reports whether utc falls on the calendar date of want in loc.
func onDate(utc int64, loc *time.Location, want time.Time) bool {
	y, m, d := time.Unix(utc, 0).In(loc).Date()
	wy, wm, wd := want.Date()
	return y == wy && m == wm && d == wd
}

// midnightOf returns local midnight of the calendar day containing utc.
func midnightOf(utc int64, loc *time.Location) int64 {
	w := wallOf(utc, loc)
	w.Hour, w.Minute, w.Second = 0, 0, 0
	return wallToUnix(w, loc)
}

// daysIn returns the number of days in the given month.
func daysIn(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// isoWeekday returns the ISO weekday (Monday=1, Sunday=7).
func isoWeekday(t time.Time) int {
	dow := t.Weekday()
	return (int(dow)+6)%7 + 1
}

// validWall reports whether every field of w is in range.
func validWall(w wallClock) bool {
	switch {
	case w.Month < 1 || w.Month > 12:
		return false
	case w.Day < 1 || w.Day > daysIn(w.Year, w.Month):
		return false
	case w.Hour < 0 || w.Hour > 23:
		return false
	case w.Minute < 0 || w.Minute > 59:
		return false
	case w.Second < 0 || w.Second > 59:
		return false
	}
	return true
}
