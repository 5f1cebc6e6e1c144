package dtm

import (
	"fmt"
	"time"
)

// Timestamp is an instant stored as UTC epoch seconds together with the zone
// used to render it. The zero value is the epoch in the host zone.
//
// A Timestamp is a value: every operation that "changes" it returns a new
// one. Equality and ordering look at the epoch only; the zone is ignored.
type Timestamp struct {
	utc int64
	loc *time.Location
}

// Epoch returns the Timestamp for utc seconds, rendered in tz. The epoch is
// stored verbatim.
func Epoch(utc int64, tz any) (Timestamp, error) {
	loc, err := ResolveZone(tz)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{utc: utc, loc: loc}, nil
}

// Now returns the current second in the host zone.
func Now() Timestamp {
	return Timestamp{utc: time.Now().Unix(), loc: time.Local}
}

// NowIn returns the current second rendered in tz.
func NowIn(tz any) (Timestamp, error) {
	return Epoch(time.Now().Unix(), tz)
}

// FromTime returns the Timestamp for t, keeping t's location. Sub-second
// precision is dropped.
func FromTime(t time.Time) Timestamp {
	return Timestamp{utc: t.Unix(), loc: t.Location()}
}

// Date builds a Timestamp from (year, month, day[, hour[, minute[, second]]])
// read as wall-clock time in tz.
func Date(tz any, fields ...int) (Timestamp, error) {
	if len(fields) < 3 || len(fields) > 6 {
		return Timestamp{}, ConstructionError(fmt.Sprintf("date requires 3 to 6 fields (year, month, day[, hour[, minute[, second]]]), got %d", len(fields)))
	}
	loc, err := ResolveZone(tz)
	if err != nil {
		return Timestamp{}, err
	}
	var f [6]int
	copy(f[:], fields)
	w := wallClock{Year: f[0], Month: f[1], Day: f[2], Hour: f[3], Minute: f[4], Second: f[5]}
	if !validWall(w) {
		return Timestamp{}, ConstructionError(fmt.Sprintf("date field out of range: %v", fields))
	}
	return Timestamp{utc: wallToUnix(w, loc), loc: loc}, nil
}

// New dispatches over the accepted argument shapes:
//
//	New(tz)                        the current second
//	New(tz, Timestamp)             same instant
//	New(tz, time.Time)             same instant
//	New(tz, "2018.0117 10:00:00")  parsed, see Parse
//	New(tz, 2012, 12, 31[, ...])   see Date
//
// An explicit epoch is built with Epoch, never inferred from a lone integer.
func New(tz any, args ...any) (Timestamp, error) {
	loc, err := ResolveZone(tz)
	if err != nil {
		return Timestamp{}, err
	}
	switch len(args) {
	case 0:
		return Timestamp{utc: time.Now().Unix(), loc: loc}, nil
	case 1:
		switch v := args[0].(type) {
		case Timestamp:
			return Timestamp{utc: v.utc, loc: loc}, nil
		case time.Time:
			return Timestamp{utc: v.Unix(), loc: loc}, nil
		case string:
			return Parse(v, loc)
		}
	default:
		fields := make([]int, 0, len(args))
		for _, a := range args {
			n, ok := a.(int)
			if !ok {
				fields = nil
				break
			}
			fields = append(fields, n)
		}
		if fields != nil {
			return Date(loc, fields...)
		}
	}
	return Timestamp{}, ConstructionError("expected a Timestamp, a time.Time, a string, or 3 to 6 integers")
}

// MustNew is like New but panics on error.
func MustNew(tz any, args ...any) Timestamp {
	ts, err := New(tz, args...)
	if err != nil {
		panic(err)
	}
	return ts
}

// Unix returns the epoch seconds.
func (ts Timestamp) Unix() int64 {
	return ts.utc
}

// Zone returns the rendering zone.
func (ts Timestamp) Zone() *time.Location {
	return locOrLocal(ts.loc)
}

// Time returns ts as a time.Time in its own zone.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.utc, 0).In(ts.Zone())
}

// In returns the same instant rendered in tz.
func (ts Timestamp) In(tz any) (Timestamp, error) {
	loc, err := ResolveZone(tz)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{utc: ts.utc, loc: loc}, nil
}

// ====================================================================
// Comparison
// ====================================================================

// instant extracts epoch seconds from the values a Timestamp compares with.
func instant(other any) (int64, bool) {
	switch v := other.(type) {
	case Timestamp:
		return v.utc, true
	case *Timestamp:
		if v == nil {
			return 0, false
		}
		return v.utc, true
	case time.Time:
		return v.Unix(), true
	default:
		return 0, false
	}
}

// Equal reports whether other denotes the same instant. It never fails:
// values of other types are simply unequal.
func (ts Timestamp) Equal(other any) bool {
	u, ok := instant(other)
	return ok && u == ts.utc
}

// Compare returns -1, 0 or +1. other must be a Timestamp or a time.Time.
func (ts Timestamp) Compare(other any) (int, error) {
	u, ok := instant(other)
	if !ok {
		return 0, UnsupportedOperandError("comparison", ts, other)
	}
	switch {
	case ts.utc < u:
		return -1, nil
	case ts.utc > u:
		return 1, nil
	}
	return 0, nil
}

// Less reports whether ts is before other.
func (ts Timestamp) Less(other any) (bool, error) {
	c, err := ts.Compare(other)
	return c < 0, err
}

// LessEqual reports whether ts is not after other.
func (ts Timestamp) LessEqual(other any) (bool, error) {
	c, err := ts.Compare(other)
	return err == nil && c <= 0, err
}

// Greater reports whether ts is after other.
func (ts Timestamp) Greater(other any) (bool, error) {
	c, err := ts.Compare(other)
	return c > 0, err
}

// GreaterEqual reports whether ts is not before other.
func (ts Timestamp) GreaterEqual(other any) (bool, error) {
	c, err := ts.Compare(other)
	return err == nil && c >= 0, err
}

// ====================================================================
// Arithmetic
// ====================================================================

// Add returns ts moved forward by d.
func (ts Timestamp) Add(d Duration) Timestamp {
	return Timestamp{utc: ts.utc + d.secs, loc: ts.loc}
}

// AddSeconds returns ts moved forward by n seconds.
func (ts Timestamp) AddSeconds(n int64) Timestamp {
	return Timestamp{utc: ts.utc + n, loc: ts.loc}
}

// Subtract returns ts moved back by d.
func (ts Timestamp) Subtract(d Duration) Timestamp {
	return Timestamp{utc: ts.utc - d.secs, loc: ts.loc}
}

// Sub returns the duration ts - o.
func (ts Timestamp) Sub(o Timestamp) Duration {
	return Duration{secs: ts.utc - o.utc}
}

// SubTime returns the duration ts - t.
func (ts Timestamp) SubTime(t time.Time) Duration {
	return Duration{secs: ts.utc - t.Unix()}
}

// Increment returns ts moved forward by delta.
func (ts Timestamp) Increment(delta Delta) (Timestamp, error) {
	d, err := deltaDuration(delta, "increment")
	if err != nil {
		return Timestamp{}, err
	}
	return ts.Add(d), nil
}

// Decrement returns ts moved back by delta.
func (ts Timestamp) Decrement(delta Delta) (Timestamp, error) {
	d, err := deltaDuration(delta, "decrement")
	if err != nil {
		return Timestamp{}, err
	}
	return ts.Subtract(d), nil
}
