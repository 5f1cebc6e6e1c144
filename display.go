package dtm

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/dtmlib/dtm/internal/config"
)

// Layouts used by the fixed renderings.
const (
	DefaultString = "%F %T %Z"
	StampLayout   = "%F-%T"
	ISOLayout     = "%Y-%m-%d %H:%M:%S"
	YMDLayout     = "%Y.%m%d"
)

// render applies a strftime layout to utc seen in loc. %s (epoch seconds)
// is expanded here since strftime implementations disagree on it.
func render(layout string, utc int64, loc *time.Location) string {
	t := time.Unix(utc, 0).In(loc)
	return strftime.Format(expandEpoch(layout, utc), t)
}

func expandEpoch(layout string, utc int64) string {
	if !strings.Contains(layout, "%s") {
		return layout
	}
	var sb strings.Builder
	for i := 0; i < len(layout); i++ {
		if layout[i] == '%' && i+1 < len(layout) {
			switch layout[i+1] {
			case 's':
				sb.WriteString(strconv.FormatInt(utc, 10))
				i++
				continue
			case '%':
				sb.WriteString("%%")
				i++
				continue
			}
		}
		sb.WriteByte(layout[i])
	}
	return sb.String()
}

// Format renders ts in its own zone with a strftime layout.
func (ts Timestamp) Format(layout string) string {
	return render(layout, ts.utc, ts.Zone())
}

// FormatIn renders ts in tz with a strftime layout.
func (ts Timestamp) FormatIn(layout string, tz any) (string, error) {
	loc, err := ResolveZone(tz)
	if err != nil {
		return "", err
	}
	return render(layout, ts.utc, loc), nil
}

// ISO renders ts as YYYY-MM-DD HH:MM:SS.
func (ts Timestamp) ISO() string {
	return ts.Format(ISOLayout)
}

// ISOIn renders ts as YYYY-MM-DD HH:MM:SS in tz.
func (ts Timestamp) ISOIn(tz any) (string, error) {
	return ts.FormatIn(ISOLayout, tz)
}

// YMD renders ts as YYYY.MMDD.
func (ts Timestamp) YMD() string {
	return ts.Format(YMDLayout)
}

// YMDIn renders ts as YYYY.MMDD in tz.
func (ts Timestamp) YMDIn(tz any) (string, error) {
	return ts.FormatIn(YMDLayout, tz)
}

// YMDWeekday renders ts as YYYY.MMDD.www, e.g. 2011.0412.tue.
func (ts Timestamp) YMDWeekday() string {
	return ts.YMD() + "." + ts.Weekday()
}

// YMDWeekdayIn is YMDWeekday in tz.
func (ts Timestamp) YMDWeekdayIn(tz any) (string, error) {
	other, err := ts.In(tz)
	if err != nil {
		return "", err
	}
	return other.YMDWeekday(), nil
}

// Weekday returns the lowercase three letter weekday code of ts.
func (ts Timestamp) Weekday() string {
	return weekdayOf(ts.Time()).Code()
}

// WeekdayIn returns the weekday code of ts in tz.
func (ts Timestamp) WeekdayIn(tz any) (string, error) {
	other, err := ts.In(tz)
	if err != nil {
		return "", err
	}
	return other.Weekday(), nil
}

// Stamp renders ts as YYYY-MM-DD-HH:MM:SS.
func (ts Timestamp) Stamp() string {
	return ts.Format(StampLayout)
}

// String renders ts in its own zone with the configured layout, or
// DefaultString when none is set.
func (ts Timestamp) String() string {
	layout := config.Current().Str
	if layout == "" {
		layout = DefaultString
	}
	return ts.Format(layout)
}

// GoString renders ts as the Epoch call that rebuilds it.
func (ts Timestamp) GoString() string {
	return fmt.Sprintf("dtm.Epoch(%d, %q)", ts.utc, ts.Zone().String())
}
