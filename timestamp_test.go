package dtm

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtmlib/dtm/internal/config"
)

func mustDate(t *testing.T, tz any, fields ...int) Timestamp {
	t.Helper()
	ts, err := Date(tz, fields...)
	require.NoError(t, err)
	return ts
}

func mustEpoch(t *testing.T, utc int64, tz any) Timestamp {
	t.Helper()
	ts, err := Epoch(utc, tz)
	require.NoError(t, err)
	return ts
}

// =============================================================================
// Construction
// =============================================================================

func TestEpochIsStoredVerbatim(t *testing.T) {
	for _, tz := range []any{"UTC", "EST5EDT", "Asia/Kolkata", time.UTC, nil} {
		ts := mustEpoch(t, 1516208400, tz)
		assert.Equal(t, int64(1516208400), ts.Unix())
	}
}

func TestBoiseWallClockMatchesEpoch(t *testing.T) {
	parsed, err := Parse("2018.0117 10:00:00", "America/Boise")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(mustEpoch(t, 1516208400, nil)))
}

func TestDate(t *testing.T) {
	ts := mustDate(t, "EST5EDT", 2012, 12, 31, 1, 2, 3)
	assert.Equal(t, int64(1356933723), ts.Unix())
	assert.Equal(t, "2012-12-31 01:02:03 EST", ts.Format(DefaultString))

	_, err := Date("UTC", 2012, 12)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = Date("UTC", 2012, 12, 31, 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = Date("UTC", 2013, 2, 29)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = Date("Mars/Olympus_Mons", 2013, 2, 28)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestNewDispatch(t *testing.T) {
	ref := mustDate(t, "UTC", 2010, 10, 9, 10, 10, 10)

	tests := []struct {
		name string
		args []any
	}{
		{"timestamp", []any{ref}},
		{"time", []any{time.Date(2010, 10, 9, 10, 10, 10, 0, time.UTC)}},
		{"string", []any{"2010-10-09 10:10:10"}},
		{"ints", []any{2010, 10, 9, 10, 10, 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New("UTC", tc.args...)
			require.NoError(t, err)
			assert.True(t, got.Equal(ref), "got %#v", got)
			assert.Equal(t, "UTC", got.Zone().String())
		})
	}
}

func TestNewRejectsOtherShapes(t *testing.T) {
	for _, args := range [][]any{
		{1516208400},
		{3.5},
		{2010, "10", 9},
		{[]int{2010, 10, 9}},
	} {
		_, err := New("UTC", args...)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConstruction, "args %v", args)
	}
}

func TestNewNow(t *testing.T) {
	before := time.Now().Unix()
	got, err := New(nil)
	require.NoError(t, err)
	after := time.Now().Unix()

	assert.GreaterOrEqual(t, got.Unix(), before)
	assert.LessOrEqual(t, got.Unix(), after)
	assert.Equal(t, time.Local, got.Zone())
}

func TestFromTimeDropsSubseconds(t *testing.T) {
	loc := MustResolveZone("Europe/Paris")
	ts := FromTime(time.Date(2020, 6, 1, 12, 0, 0, 999_000_000, loc))
	assert.Equal(t, "2020-06-01 12:00:00 CEST", ts.Format(DefaultString))
	assert.Equal(t, loc, ts.Zone())
}

func TestStrptime(t *testing.T) {
	ts, err := Strptime("24 March 2001, 7:35 pm", "%d %B %Y, %I:%M %p", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2001-03-24 19:35:00", ts.ISO())

	_, err = Strptime("2001-03-24", "%d/%m/%Y", "UTC")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, "time data '2001-03-24' does not match format '%d/%m/%Y'", err.Error())

	_, err = Strptime("2001-03-24", "%Y-%m-%Q", "UTC")
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseConfiguredFormats(t *testing.T) {
	t.Cleanup(config.Reset)
	t.Setenv("DTM_FORMATS", "%d.%m.%Y;%Y%m%d")

	ts, err := Parse("24.03.2001", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2001.0324", ts.YMD())

	ts, err = Parse("20010324", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2001.0324", ts.YMD())

	// Built-ins remain available.
	ts, err = Parse("2001.0324", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2001.0324", ts.YMD())
}

func TestParseConfiguredFormatsWithSpaces(t *testing.T) {
	t.Cleanup(config.Reset)
	t.Setenv("DTM_FORMATS", "%d/%m/%y %H:%M:%S; %d/%m/%y; %d/%m/%Y %H:%M:%S")

	ts, err := Parse("12/11/25", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2025.1112", ts.YMD())

	ts, err = Parse("12/3/2025 17:32:19", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12-17:32:19", ts.Stamp())
}

func TestParseInvalidTimezone(t *testing.T) {
	_, err := Parse("2001.0324", 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
	assert.Equal(t, "tz must be timezone, timezone name, or nil", err.Error())
}

// =============================================================================
// Comparison
// =============================================================================

func TestEqualityIgnoresZone(t *testing.T) {
	zones := []string{"UTC", "EST5EDT", "Asia/Kathmandu", "America/St_Johns", "Pacific/Chatham"}
	for _, utc := range []int64{-86400 * 365 * 80, 0, 1234567890, 1552203000} {
		for _, a := range zones {
			for _, b := range zones {
				x, y := mustEpoch(t, utc, a), mustEpoch(t, utc, b)
				assert.True(t, x.Equal(y), "%d %s vs %s", utc, a, b)
				c, err := x.Compare(y)
				require.NoError(t, err)
				assert.Zero(t, c)
			}
		}
	}
}

func TestEqualNeverFails(t *testing.T) {
	ts := mustEpoch(t, 100, "UTC")
	assert.False(t, ts.Equal("100"))
	assert.False(t, ts.Equal(100))
	assert.False(t, ts.Equal(nil))
	assert.True(t, ts.Equal(time.Unix(100, 0)))
	assert.True(t, ts.Equal(&ts))
}

func TestOrderingOperators(t *testing.T) {
	early := mustEpoch(t, 100, "UTC")
	late := mustEpoch(t, 200, "EST5EDT")

	tests := []struct {
		name string
		fn   func(any) (bool, error)
		arg  any
		want bool
	}{
		{"less", early.Less, late, true},
		{"less_self", early.Less, early, false},
		{"less_equal_self", early.LessEqual, early, true},
		{"greater", late.Greater, early, true},
		{"greater_equal", early.GreaterEqual, late, false},
		{"less_time", early.Less, time.Unix(101, 0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(tc.arg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOrderingRejectsOtherTypes(t *testing.T) {
	ts := mustEpoch(t, 100, "UTC")
	for _, other := range []any{"100", 100, Seconds(100), nil} {
		_, err := ts.Less(other)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedOperand)

		var dtErr *Error
		require.True(t, errors.As(err, &dtErr))
		assert.Equal(t, KindUnsupportedOperand, dtErr.Kind)
	}
}

// =============================================================================
// Rendering
// =============================================================================

func TestRendering(t *testing.T) {
	ts := mustDate(t, "EST5EDT", 2011, 4, 12, 9, 30, 5)

	assert.Equal(t, "2011-04-12 09:30:05", ts.ISO())
	assert.Equal(t, "2011.0412", ts.YMD())
	assert.Equal(t, "2011.0412.tue", ts.YMDWeekday())
	assert.Equal(t, "tue", ts.Weekday())
	assert.Equal(t, "2011-04-12-09:30:05", ts.Stamp())
	assert.Equal(t, "2011-04-12 09:30:05 EDT", ts.String())
	assert.Equal(t, "Tue Apr 12 2011 -0400", ts.Format("%a %b %d %Y %z"))
	assert.Equal(t, "1302615005 100%s", ts.Format("%s 100%%s"))

	utc, err := ts.ISOIn("UTC")
	require.NoError(t, err)
	assert.Equal(t, "2011-04-12 13:30:05", utc)

	tokyo, err := ts.YMDWeekdayIn("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "2011.0412.tue", tokyo)

	late, err := mustDate(t, "EST5EDT", 2011, 4, 12, 21, 0, 0).WeekdayIn("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "wed", late)

	_, err = ts.FormatIn("%F", "Nowhere/Special")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestStringHonoursConfiguredLayout(t *testing.T) {
	t.Cleanup(config.Reset)
	ts := mustDate(t, "EST5EDT", 2012, 12, 31, 1, 2, 3)

	t.Setenv("DTM_STR", "%Y.%m%d %H:%M:%S")
	assert.Equal(t, "2012.1231 01:02:03", ts.String())

	t.Setenv("DTM_STR", "")
	assert.Equal(t, "2012-12-31 01:02:03 EST", ts.String())
}

func TestGoString(t *testing.T) {
	ts := mustEpoch(t, 1356933723, "EST5EDT")
	assert.Equal(t, `dtm.Epoch(1356933723, "EST5EDT")`, ts.GoString())
}

func TestRoundTripRender(t *testing.T) {
	for _, layout := range BuiltinFormats {
		ts := mustDate(t, "America/Chicago", 2019, 11, 3, 1, 30, 0)
		if layout == "%Y.%m%d" || layout == "%m/%d/%Y" || layout == "%m/%d/%y" {
			ts = mustDate(t, "America/Chicago", 2019, 11, 3)
		}
		s := ts.Format(layout)
		back, err := Strptime(s, layout, "America/Chicago")
		require.NoError(t, err, layout)
		assert.Equal(t, s, back.Format(layout), layout)
	}
}

// =============================================================================
// Arithmetic and day stepping
// =============================================================================

func TestTimestampArithmetic(t *testing.T) {
	a := mustDate(t, "UTC", 2010, 1, 1)
	b := mustDate(t, "UTC", 2010, 12, 31, 11, 59, 59)

	assert.Equal(t, "364d11:59:59", b.Sub(a).String())
	assert.True(t, a.Add(b.Sub(a)).Equal(b))
	assert.True(t, b.Subtract(b.Sub(a)).Equal(a))
	assert.Equal(t, int64(-1), a.SubTime(time.Unix(a.Unix()+1, 0)).Seconds())
	assert.Equal(t, a.Zone(), a.AddSeconds(90).Zone())
}

func TestIncrementDecrement(t *testing.T) {
	start := mustDate(t, "UTC", 2010, 1, 1)

	got, err := start.Increment(Delta{Components: []int64{1, 2, 3, 4}})
	require.NoError(t, err)
	assert.Equal(t, "2010-01-02 02:03:04", got.ISO())

	got, err = start.Increment(Delta{Components: []int64{30}})
	require.NoError(t, err)
	assert.Equal(t, "2010-01-01 00:00:30", got.ISO())

	got, err = start.Decrement(Delta{Magnitudes: Magnitudes{"hours": 1.5, "days": 1}})
	require.NoError(t, err)
	assert.Equal(t, "2009-12-30 22:30:00", got.ISO())

	_, err = start.Increment(Delta{Components: []int64{1}, Magnitudes: Magnitudes{"s": 1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMixedArguments)
	assert.Equal(t, "increment expects either components or magnitudes, not both", err.Error())

	_, err = start.Decrement(Delta{Components: []int64{1, 2, 3, 4, 5}})
	assert.ErrorIs(t, err, ErrConstruction)
}

// Zones whose transitions fall at midnight (Havana, Cairo, Sao_Paulo before
// 2019) or shift by half an hour (Lord_Howe).
var dayStepZones = []string{
	"EST5EDT", "Europe/London", "America/Havana", "Africa/Cairo",
	"Australia/Lord_Howe", "America/Sao_Paulo",
}

func TestNextDayCountIsAdditive(t *testing.T) {
	for _, tz := range dayStepZones {
		for year := 2017; year <= 2024; year++ {
			x := mustDate(t, tz, year, 1, 1, 13, 45, 0)
			for _, n := range []int{0, 1, 3, 40, 100} {
				for _, m := range []int{1, 2, 100} {
					assert.True(t, x.NextDay(n).NextDay(m).Equal(x.NextDay(n+m)), "%s %d n=%d m=%d", tz, year, n, m)
				}
			}
		}
	}
}

func TestNextThenPreviousAtMidnight(t *testing.T) {
	for _, tz := range append([]string{"UTC"}, dayStepZones...) {
		for year := 2017; year <= 2024; year++ {
			x := mustDate(t, tz, year, 3, 1)
			for i := 0; i < 300; i++ {
				if !assert.True(t, x.NextDay(1).PreviousDay(1).Equal(x), "%s %s", tz, x.ISO()) {
					break
				}
				x = x.NextDay(1)
			}
		}
	}
}

func TestWeekdaySearchAcrossMidnightGap(t *testing.T) {
	x := mustDate(t, "Africa/Cairo", 2024, 4, 24, 9, 0, 0)
	sat, err := x.NextWeekday("sat")
	require.NoError(t, err)
	assert.Equal(t, "2024-04-27 00:00:00", sat.ISO())

	fri, err := x.WeekdayCeiling("fri")
	require.NoError(t, err)
	assert.Equal(t, "2024-04-26 01:00:00", fri.ISO())

	var days []string
	for ts := range mustDate(t, "America/Havana", 2017, 3, 10).Range(mustDate(t, "America/Havana", 2017, 3, 13)) {
		days = append(days, ts.YMDWeekday())
	}
	assert.Equal(t, []string{"2017.0310.fri", "2017.0311.sat", "2017.0312.sun", "2017.0313.mon"}, days)
}

func TestWeekdayFixedPoints(t *testing.T) {
	x := mustDate(t, "America/Boise", 2018, 1, 17, 10, 0, 0)
	floor, err := x.WeekdayFloor(x.Weekday())
	require.NoError(t, err)
	ceiling, err := x.WeekdayCeiling(x.Weekday())
	require.NoError(t, err)
	assert.True(t, floor.Equal(x))
	assert.True(t, ceiling.Equal(x))
}

func TestWeekdayErrors(t *testing.T) {
	x := mustDate(t, "UTC", 2011, 4, 12)

	_, err := x.NextWeekday("wed", "wednesday")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
	assert.Equal(t, "one of the targets is not a valid weekday", err.Error())

	_, err = x.LastWeekday("Mon")
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = x.WeekdayFloor()
	assert.ErrorIs(t, err, ErrInvalidArgumentType)

	_, err = x.WeekdayCeiling()
	assert.ErrorIs(t, err, ErrInvalidArgumentType)
}

func TestScenarios(t *testing.T) {
	tz := "America/New_York"
	assert.True(t, mustDate(t, tz, 2012, 12, 31).NextDay(1).Equal(mustDate(t, tz, 2013, 1, 1)))
	assert.True(t, mustDate(t, tz, 2013, 3, 8).NextDay(5).Equal(mustDate(t, tz, 2013, 3, 13)))
	assert.True(t, mustDate(t, tz, 2000, 2, 28).NextDay(1).Equal(mustDate(t, tz, 2000, 2, 29)))
	assert.True(t, mustDate(t, "UTC", 1800, 2, 28).NextDay(1).Equal(mustDate(t, "UTC", 1800, 3, 1)))

	wed, err := mustDate(t, tz, 2011, 4, 12).NextWeekday("wed")
	require.NoError(t, err)
	assert.True(t, wed.Equal(mustDate(t, tz, 2011, 4, 13)))
}

// =============================================================================
// Range
// =============================================================================

func TestRange(t *testing.T) {
	first := mustDate(t, "EST5EDT", 2013, 3, 8, 12, 0, 0)
	last := mustDate(t, "EST5EDT", 2013, 3, 12)

	var got []string
	for ts := range first.Range(last) {
		got = append(got, ts.ISO())
	}
	assert.Equal(t, []string{
		"2013-03-08 12:00:00",
		"2013-03-09 00:00:00",
		"2013-03-10 00:00:00",
		"2013-03-11 00:00:00",
		"2013-03-12 00:00:00",
	}, got)
}

func TestRangeIsLazy(t *testing.T) {
	first := mustDate(t, "UTC", 2000, 1, 1)
	last := mustDate(t, "UTC", 2100, 1, 1)

	count := 0
	for range first.Range(last) {
		count++
		if count >= 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestRangeEmpty(t *testing.T) {
	first := mustDate(t, "UTC", 2000, 1, 2)
	last := mustDate(t, "UTC", 2000, 1, 1)
	assert.Empty(t, slices.Collect(first.Range(last)))
}
