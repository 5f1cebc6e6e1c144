package dtm

import (
	"iter"
	"time"
)

// ====================================================================
// Day stepping
// ====================================================================

// stepDay moves utc one calendar day forward (dir=1) or back (dir=-1) in
// loc, keeping the wall-clock time across an offset change. The result
// always lies on the adjacent calendar date.
func stepDay(utc int64, loc *time.Location, dir int64) int64 {
	from := wallOf(utc, loc)
	want := time.Date(from.Year, time.Month(from.Month), from.Day+int(dir), 0, 0, 0, 0, time.UTC)
	prevOff := clockOffset(utc, loc)

	cand := utc + dir*secondsPerDay
	if off := offsetAt(cand, loc); off != prevOff {
		// A correction that crosses midnight would repeat or skip a day.
		if fixed := cand + prevOff - off; onDate(fixed, loc, want) {
			return fixed
		}
	}
	if onDate(cand, loc, want) {
		return cand
	}
	return wallToUnix(wallClock{
		Year: want.Year(), Month: int(want.Month()), Day: want.Day(),
		Hour: from.Hour, Minute: from.Minute, Second: from.Second,
	}, loc)
}

// clockOffset is the UTC offset utc is read with. A day start inside a
// spring-forward gap reads as 00:00 under the offset before the gap.
func clockOffset(utc int64, loc *time.Location) int64 {
	if midnightOf(utc, loc) == utc {
		w := wallOf(utc, loc)
		return time.Date(w.Year, time.Month(w.Month), w.Day, 0, 0, 0, 0, time.UTC).Unix() - utc
	}
	return offsetAt(utc, loc)
}

// NextDay returns the start (local midnight) of the day count days after
// ts. A count of zero or less returns ts unchanged.
func (ts Timestamp) NextDay(count int) Timestamp {
	if count <= 0 {
		return ts
	}
	loc := ts.Zone()
	utc := ts.utc
	for i := 0; i < count; i++ {
		utc = stepDay(utc, loc, 1)
	}
	return Timestamp{utc: midnightOf(utc, loc), loc: ts.loc}
}

// PreviousDay returns the instant count days before ts, keeping the time
// of day. A count of zero or less returns ts unchanged.
func (ts Timestamp) PreviousDay(count int) Timestamp {
	if count <= 0 {
		return ts
	}
	loc := ts.Zone()
	utc := ts.utc
	for i := 0; i < count; i++ {
		utc = stepDay(utc, loc, -1)
	}
	return Timestamp{utc: utc, loc: ts.loc}
}

// Range yields ts and then each following day start while it is not after
// last.
func (ts Timestamp) Range(last Timestamp) iter.Seq[Timestamp] {
	return func(yield func(Timestamp) bool) {
		for cur := ts; cur.utc <= last.utc; {
			if !yield(cur) {
				return
			}
			next := cur.NextDay(1)
			if next.utc <= cur.utc {
				return
			}
			cur = next
		}
	}
}

// ====================================================================
// Weekday search
// ====================================================================

// NextWeekday returns the start of the first day after ts whose weekday is
// one of targets. ts itself never matches.
func (ts Timestamp) NextWeekday(targets ...string) (Timestamp, error) {
	set, err := weekdaySet(targets)
	if err != nil {
		return Timestamp{}, err
	}
	return ts.scanForward(set), nil
}

// LastWeekday returns the instant on the closest day before ts whose
// weekday is one of targets. ts itself never matches.
func (ts Timestamp) LastWeekday(targets ...string) (Timestamp, error) {
	set, err := weekdaySet(targets)
	if err != nil {
		return Timestamp{}, err
	}
	return ts.scanBackward(set), nil
}

// WeekdayFloor returns ts if its weekday is one of targets, otherwise the
// same result as LastWeekday.
func (ts Timestamp) WeekdayFloor(targets ...string) (Timestamp, error) {
	set, err := weekdaySet(targets)
	if err != nil {
		return Timestamp{}, err
	}
	if set[weekdayOf(ts.Time())] {
		return ts, nil
	}
	return ts.scanBackward(set), nil
}

// WeekdayCeiling returns ts if its weekday is one of targets, otherwise the
// same result as NextWeekday.
func (ts Timestamp) WeekdayCeiling(targets ...string) (Timestamp, error) {
	set, err := weekdaySet(targets)
	if err != nil {
		return Timestamp{}, err
	}
	if set[weekdayOf(ts.Time())] {
		return ts, nil
	}
	return ts.scanForward(set), nil
}

// Every step lands on the adjacent date, so a non-empty set matches
// within a week.
func (ts Timestamp) scanForward(set map[Weekday]bool) Timestamp {
	scan := ts.NextDay(1)
	for i := 1; i < 7 && !set[weekdayOf(scan.Time())]; i++ {
		scan = scan.NextDay(1)
	}
	return scan
}

func (ts Timestamp) scanBackward(set map[Weekday]bool) Timestamp {
	scan := ts.PreviousDay(1)
	for i := 1; i < 7 && !set[weekdayOf(scan.Time())]; i++ {
		scan = scan.PreviousDay(1)
	}
	return scan
}
