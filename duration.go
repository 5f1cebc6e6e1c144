package dtm

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Duration is a signed span of whole seconds.
type Duration struct {
	secs int64
}

// Magnitudes maps unit names to amounts. Accepted names are s, secs,
// seconds, m, mins, minutes, h, hrs, hours, d and days; at most one name per
// unit may appear.
type Magnitudes map[string]float64

// Delta is the input to NewDuration, Increment and Decrement: either
// right-aligned components ([[[days,] hours,] minutes,] seconds) or
// magnitudes, never both.
type Delta struct {
	Components []int64
	Magnitudes Magnitudes
}

type magnitudeGroup struct {
	names []string
	unit  int64
}

var magnitudeGroups = []magnitudeGroup{
	{names: []string{"s", "secs", "seconds"}, unit: 1},
	{names: []string{"m", "mins", "minutes"}, unit: 60},
	{names: []string{"h", "hrs", "hours"}, unit: 3600},
	{names: []string{"d", "days"}, unit: secondsPerDay},
}

// componentUnits are the multipliers of days, hours, minutes and seconds.
var componentUnits = []int64{secondsPerDay, 3600, 60, 1}

// Seconds returns a Duration of n seconds.
func Seconds(n int64) Duration {
	return Duration{secs: n}
}

// FromComponents builds a Duration from up to four right-aligned components,
// so FromComponents(90) is 90 seconds and FromComponents(1, 0, 0) one hour.
func FromComponents(parts ...int64) (Duration, error) {
	if len(parts) > len(componentUnits) {
		return Duration{}, ConstructionError(fmt.Sprintf("expected at most 4 components (days, hours, minutes, seconds), got %d", len(parts)))
	}
	units := componentUnits[len(componentUnits)-len(parts):]
	var total int64
	for i, p := range parts {
		total += p * units[i]
	}
	return Duration{secs: total}, nil
}

// FromMagnitudes builds a Duration from named amounts. The total is rounded
// to the nearest second, ties to even.
func FromMagnitudes(m Magnitudes) (Duration, error) {
	known := make(map[string]bool)
	var total float64
	for _, g := range magnitudeGroups {
		var seen []string
		for _, name := range g.names {
			known[name] = true
			if v, ok := m[name]; ok {
				seen = append(seen, name)
				total += v * float64(g.unit)
			}
		}
		if len(seen) > 1 {
			return Duration{}, MutuallyExclusiveError(g.names)
		}
	}
	var unknown []string
	for name := range m {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Duration{}, ConstructionError(fmt.Sprintf("unknown duration magnitude(s): %v", unknown))
	}
	return Duration{secs: roundSeconds(total)}, nil
}

// FromTimeDuration converts d to whole seconds, truncating toward zero.
func FromTimeDuration(d time.Duration) Duration {
	return Duration{secs: int64(d / time.Second)}
}

// NewDuration builds a Duration from either form of delta.
func NewDuration(delta Delta) (Duration, error) {
	if delta.Components != nil && delta.Magnitudes != nil {
		return Duration{}, MixedArgumentsError("expected either components or magnitudes, not both")
	}
	if delta.Magnitudes != nil {
		return FromMagnitudes(delta.Magnitudes)
	}
	return FromComponents(delta.Components...)
}

func deltaDuration(delta Delta, op string) (Duration, error) {
	if delta.Components != nil && delta.Magnitudes != nil {
		return Duration{}, MixedArgumentsError(op + " expects either components or magnitudes, not both")
	}
	return NewDuration(delta)
}

func roundSeconds(f float64) int64 {
	return int64(math.RoundToEven(f))
}

// ====================================================================
// Accessors
// ====================================================================

// Seconds returns the exact number of seconds.
func (d Duration) Seconds() int64 {
	return d.secs
}

// Minutes returns the span in fractional minutes.
func (d Duration) Minutes() float64 {
	return float64(d.secs) / 60
}

// Hours returns the span in fractional hours.
func (d Duration) Hours() float64 {
	return float64(d.secs) / 3600
}

// Days returns the span in fractional days.
func (d Duration) Days() float64 {
	return float64(d.secs) / secondsPerDay
}

// TimeDuration converts d to a time.Duration.
func (d Duration) TimeDuration() time.Duration {
	return time.Duration(d.secs) * time.Second
}

// DHMS breaks d into days, hours, minutes and seconds. The sign of d is
// applied to every component.
func (d Duration) DHMS() (days, hours, minutes, seconds int64) {
	sign, a := int64(1), d.secs
	if a < 0 {
		sign, a = -1, -a
	}
	days = a / secondsPerDay
	a %= secondsPerDay
	hours = a / 3600
	a %= 3600
	minutes = a / 60
	seconds = a % 60
	return sign * days, sign * hours, sign * minutes, sign * seconds
}

// DHHMMSS renders d as [-]DdHH:MM:SS.
func (d Duration) DHHMMSS() string {
	days, hours, minutes, seconds := d.Abs().DHMS()
	sign := ""
	if d.secs < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%dd%02d:%02d:%02d", sign, days, hours, minutes, seconds)
}

func (d Duration) String() string {
	return d.DHHMMSS()
}

// GoString renders d as the Seconds call that rebuilds it.
func (d Duration) GoString() string {
	return fmt.Sprintf("dtm.Seconds(%d)", d.secs)
}

// ====================================================================
// Arithmetic
// ====================================================================

// Plus returns d + o.
func (d Duration) Plus(o Duration) Duration {
	return Duration{secs: d.secs + o.secs}
}

// Minus returns d - o.
func (d Duration) Minus(o Duration) Duration {
	return Duration{secs: d.secs - o.secs}
}

// Neg returns -d.
func (d Duration) Neg() Duration {
	return Duration{secs: -d.secs}
}

// Abs returns |d|.
func (d Duration) Abs() Duration {
	if d.secs < 0 {
		return d.Neg()
	}
	return d
}

// AddTo returns ts moved forward by d.
func (d Duration) AddTo(ts Timestamp) Timestamp {
	return ts.Add(d)
}

// SubtractFrom returns ts moved back by d.
func (d Duration) SubtractFrom(ts Timestamp) Timestamp {
	return ts.Subtract(d)
}

// Mul scales d by f, rounding to the nearest second (ties to even).
func (d Duration) Mul(f float64) Duration {
	return Duration{secs: roundSeconds(float64(d.secs) * f)}
}

// Div divides d by f, rounding to the nearest second (ties to even).
func (d Duration) Div(f float64) (Duration, error) {
	if f == 0 {
		return Duration{}, ZeroDivisionError("division")
	}
	return Duration{secs: roundSeconds(float64(d.secs) / f)}, nil
}

// FloorDiv divides d by f, rounding toward negative infinity.
func (d Duration) FloorDiv(f float64) (Duration, error) {
	if f == 0 {
		return Duration{}, ZeroDivisionError("floor division")
	}
	return Duration{secs: int64(math.Floor(float64(d.secs) / f))}, nil
}

// Mod returns d modulo f with the sign of f, rounded to the nearest second.
func (d Duration) Mod(f float64) (Duration, error) {
	if f == 0 {
		return Duration{}, ZeroDivisionError("modulo")
	}
	r := math.Mod(float64(d.secs), f)
	if r != 0 && (r < 0) != (f < 0) {
		r += f
	}
	return Duration{secs: roundSeconds(r)}, nil
}

// DivMod returns the floored quotient and remainder of d divided by n.
func (d Duration) DivMod(n int64) (q, r Duration, err error) {
	if n == 0 {
		return Duration{}, Duration{}, ZeroDivisionError("divmod")
	}
	quo, rem := d.secs/n, d.secs%n
	if rem != 0 && (rem < 0) != (n < 0) {
		quo--
		rem += n
	}
	return Duration{secs: quo}, Duration{secs: rem}, nil
}

// ====================================================================
// Comparison
// ====================================================================

// spanSeconds extracts a second count from the values a Duration compares
// with: another Duration, a time.Duration, or a plain number of seconds.
func spanSeconds(other any) (float64, bool) {
	switch v := other.(type) {
	case Duration:
		return float64(v.secs), true
	case *Duration:
		if v == nil {
			return 0, false
		}
		return float64(v.secs), true
	case time.Duration:
		return v.Seconds(), true
	}
	return scalarValue(other)
}

// Equal reports whether other is the same span. It never fails.
func (d Duration) Equal(other any) bool {
	s, ok := spanSeconds(other)
	return ok && s == float64(d.secs)
}

// Compare returns -1, 0 or +1, or an error when other is not a span.
func (d Duration) Compare(other any) (int, error) {
	s, ok := spanSeconds(other)
	if !ok {
		return 0, UnsupportedOperandError("comparison", d, other)
	}
	mine := float64(d.secs)
	switch {
	case mine < s:
		return -1, nil
	case mine > s:
		return 1, nil
	}
	return 0, nil
}

// Less reports whether d is shorter than other.
func (d Duration) Less(other any) (bool, error) {
	c, err := d.Compare(other)
	return c < 0, err
}

// LessEqual reports whether d is not longer than other.
func (d Duration) LessEqual(other any) (bool, error) {
	c, err := d.Compare(other)
	return err == nil && c <= 0, err
}

// Greater reports whether d is longer than other.
func (d Duration) Greater(other any) (bool, error) {
	c, err := d.Compare(other)
	return c > 0, err
}

// GreaterEqual reports whether d is not shorter than other.
func (d Duration) GreaterEqual(other any) (bool, error) {
	c, err := d.Compare(other)
	return err == nil && c >= 0, err
}
