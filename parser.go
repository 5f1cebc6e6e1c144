package dtm

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dtmlib/dtm/internal/config"
)

// BuiltinFormats are the parse formats tried by Parse, in order, after any
// configured extras.
var BuiltinFormats = []string{
	"%Y.%m%d",
	"%Y.%m%d %H:%M:%S",
	"%Y/%m/%d %H:%M",
	"%Y-%m-%d %H:%M:%S",
	"%Y-%m-%dT%H:%M:%SZ",
	"%Y-%m-%dT%H:%M:%S",
	"%m/%d/%Y %H:%M:%S",
	"%m/%d/%Y",
	"%m/%d/%y %H:%M:%S",
	"%m/%d/%y",
}

// Parse reads spec with the first matching candidate format and interprets
// the result as wall-clock time in tz.
func Parse(spec string, tz any) (Timestamp, error) {
	loc, err := ResolveZone(tz)
	if err != nil {
		return Timestamp{}, err
	}
	formats := append(config.Current().Formats, BuiltinFormats...)
	for _, format := range formats {
		tokens, err := tokenizeFormat(format)
		if err != nil {
			slog.Debug("skipping unusable format", slog.String("format", format), slog.String("error", err.Error()))
			continue
		}
		if r, ok := matchFormat(tokens, spec); ok {
			return r.timestamp(loc), nil
		}
	}
	return Timestamp{}, ParseError(spec)
}

// Strptime reads s with exactly one format, interpreted in tz.
func Strptime(s, format string, tz any) (Timestamp, error) {
	loc, err := ResolveZone(tz)
	if err != nil {
		return Timestamp{}, err
	}
	tokens, err := tokenizeFormat(format)
	if err != nil {
		return Timestamp{}, FormatMismatchError(s, format, err)
	}
	r, ok := matchFormat(tokens, s)
	if !ok {
		return Timestamp{}, FormatMismatchError(s, format, nil)
	}
	return r.timestamp(loc), nil
}

// ====================================================================
// Matcher
// ====================================================================

// numericField describes the digits a directive consumes and their range.
type numericField struct {
	minWidth, maxWidth int
	lo, hi             int
}

var numericFields = map[byte]numericField{
	'Y': {4, 4, 0, 9999},
	'y': {2, 2, 0, 99},
	'm': {1, 2, 1, 12},
	'd': {1, 2, 1, 31},
	'H': {1, 2, 0, 23},
	'I': {1, 2, 1, 12},
	'M': {1, 2, 0, 59},
	'S': {1, 2, 0, 59},
	'j': {1, 3, 1, 366},
}

// parseState carries the fields read so far. It is passed by value so that
// backtracking needs no undo step.
type parseState struct {
	year, month, day     int
	hour, minute, second int
	yday                 int
	twelve               bool
	pm                   int // -1 unset, 0 am, 1 pm
	epoch                *int64
}

func newParseState() parseState {
	return parseState{year: 1900, month: 1, day: 1, pm: -1}
}

// matchFormat reports whether tokens consume all of input, and the fields
// read when they do. Range errors count as a mismatch.
func matchFormat(tokens []token, input string) (parseState, bool) {
	st, ok := match(tokens, input, 0, newParseState())
	if !ok {
		return st, false
	}
	if st.epoch != nil {
		return st, true
	}
	st.resolve()
	return st, validWall(st.wall())
}

func match(tokens []token, input string, pos int, st parseState) (parseState, bool) {
	if len(tokens) == 0 {
		return st, pos == len(input)
	}
	tok, rest := tokens[0], tokens[1:]

	switch tok.kind {
	case tokenLiteral:
		end := pos + len(tok.literal)
		if end > len(input) || !strings.EqualFold(input[pos:end], tok.literal) {
			return st, false
		}
		return match(rest, input, end, st)

	case tokenSpace:
		end := pos
		for end < len(input) && isSpace(input[end]) {
			end++
		}
		if end == pos {
			return st, false
		}
		return match(rest, input, end, st)
	}

	if f, ok := numericFields[tok.directive]; ok {
		for width := f.maxWidth; width >= f.minWidth; width-- {
			v, ok := digitsAt(input, pos, width)
			if !ok || v < f.lo || v > f.hi {
				continue
			}
			next := st
			next.set(tok.directive, v)
			if out, ok := match(rest, input, pos+width, next); ok {
				return out, true
			}
		}
		return st, false
	}

	switch tok.directive {
	case 'b', 'B', 'h':
		for m := Jan; m <= Dec; m++ {
			if out, ok := matchName(rest, input, pos, st, m.FullName(), func(s *parseState) { s.month = m.Number() }); ok {
				return out, true
			}
		}
	case 'a', 'A':
		for w := Monday; w <= Sunday; w++ {
			if out, ok := matchName(rest, input, pos, st, w.FullName(), func(*parseState) {}); ok {
				return out, true
			}
		}
	case 'p':
		for i, marker := range []string{"am", "pm"} {
			end := pos + 2
			if end <= len(input) && strings.EqualFold(input[pos:end], marker) {
				next := st
				next.pm = i
				if out, ok := match(rest, input, end, next); ok {
					return out, true
				}
			}
		}
	case 's':
		start := pos
		if start < len(input) && (input[start] == '-' || input[start] == '+') {
			start++
		}
		end := start
		for end < len(input) && isDigit(input[end]) {
			end++
		}
		for ; end > start; end-- {
			v, err := strconv.ParseInt(input[pos:end], 10, 64)
			if err != nil {
				continue
			}
			next := st
			next.epoch = &v
			if out, ok := match(rest, input, end, next); ok {
				return out, true
			}
		}
	}
	return st, false
}

// matchName matches a full name or its three letter abbreviation, longest
// first.
func matchName(rest []token, input string, pos int, st parseState, name string, apply func(*parseState)) (parseState, bool) {
	for _, candidate := range []string{name, name[:3]} {
		end := pos + len(candidate)
		if end > len(input) || !strings.EqualFold(input[pos:end], candidate) {
			continue
		}
		next := st
		apply(&next)
		if out, ok := match(rest, input, end, next); ok {
			return out, true
		}
	}
	return st, false
}

func digitsAt(input string, pos, width int) (int, bool) {
	if pos+width > len(input) {
		return 0, false
	}
	v := 0
	for i := pos; i < pos+width; i++ {
		if !isDigit(input[i]) {
			return 0, false
		}
		v = v*10 + int(input[i]-'0')
	}
	return v, true
}

func (st *parseState) set(directive byte, v int) {
	switch directive {
	case 'Y':
		st.year = v
	case 'y':
		// POSIX pivot: 69-99 are 1969-1999, 00-68 are 2000-2068.
		if v < 69 {
			st.year = 2000 + v
		} else {
			st.year = 1900 + v
		}
	case 'm':
		st.month = v
	case 'd':
		st.day = v
	case 'H':
		st.hour = v
	case 'I':
		st.hour = v
		st.twelve = true
	case 'M':
		st.minute = v
	case 'S':
		st.second = v
	case 'j':
		st.yday = v
	}
}

// resolve applies the 12 hour clock and day-of-year fields.
func (st *parseState) resolve() {
	if st.twelve {
		h := st.hour % 12
		if st.pm == 1 {
			h += 12
		}
		st.hour = h
	}
	if st.yday > 0 && st.month == 1 && st.day == 1 {
		for m := 1; m <= 12; m++ {
			n := daysIn(st.year, m)
			if st.yday <= n {
				st.month, st.day = m, st.yday
				return
			}
			st.yday -= n
		}
		// Day 366 of a common year.
		st.month, st.day = 13, 1
	}
}

func (st parseState) wall() wallClock {
	return wallClock{
		Year: st.year, Month: st.month, Day: st.day,
		Hour: st.hour, Minute: st.minute, Second: st.second,
	}
}

func (st parseState) timestamp(loc *time.Location) Timestamp {
	if st.epoch != nil {
		return Timestamp{utc: *st.epoch, loc: loc}
	}
	return Timestamp{utc: wallToUnix(st.wall(), loc), loc: loc}
}
