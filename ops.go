package dtm

import (
	"time"
)

// Operator is an arithmetic operator accepted by Apply.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
)

func (op Operator) String() string {
	symbols := map[Operator]string{
		OpAdd:      "+",
		OpSub:      "-",
		OpMul:      "*",
		OpDiv:      "/",
		OpFloorDiv: "//",
		OpMod:      "%",
	}
	return symbols[op]
}

// operandKind is the closed set of value families Apply understands.
type operandKind int

const (
	operandOther operandKind = iota
	operandTimestamp
	operandTime
	operandDuration
	operandTimeDuration
	operandInt
	operandFloat
)

// operand is a classified argument to Apply.
type operand struct {
	kind operandKind
	ts   Timestamp
	secs int64
	f    float64
}

func classify(v any) operand {
	switch x := v.(type) {
	case Timestamp:
		return operand{kind: operandTimestamp, ts: x}
	case *Timestamp:
		if x != nil {
			return operand{kind: operandTimestamp, ts: *x}
		}
	case time.Time:
		return operand{kind: operandTime, ts: FromTime(x)}
	case Duration:
		return operand{kind: operandDuration, secs: x.secs}
	case *Duration:
		if x != nil {
			return operand{kind: operandDuration, secs: x.secs}
		}
	case time.Duration:
		return operand{kind: operandTimeDuration, secs: int64(x / time.Second)}
	}
	if n, ok := intValue(v); ok {
		return operand{kind: operandInt, secs: n, f: float64(n)}
	}
	if f, ok := scalarValue(v); ok {
		return operand{kind: operandFloat, f: f}
	}
	return operand{kind: operandOther}
}

// isInstant reports a Timestamp or a time.Time.
func (o operand) isInstant() bool {
	return o.kind == operandTimestamp || o.kind == operandTime
}

// isSpan reports a value usable as a number of seconds in addition.
func (o operand) isSpan() bool {
	return o.kind == operandDuration || o.kind == operandTimeDuration || o.kind == operandInt
}

// isScalar reports a plain number.
func (o operand) isScalar() bool {
	return o.kind == operandInt || o.kind == operandFloat
}

// Apply evaluates left op right over Timestamps, Durations, time.Time,
// time.Duration and plain numbers. The result is a Timestamp or a Duration.
//
//	Timestamp + span       -> Timestamp    Duration + Timestamp -> Timestamp
//	Timestamp - Timestamp  -> Duration     Timestamp - span    -> Timestamp
//	Duration +/- span      -> Duration     span +/- Duration   -> Duration
//	Duration * number      -> Duration     number * Duration   -> Duration
//	Duration / number, Duration // number, Duration % number -> Duration
//
// A span is a Duration, a time.Duration or an integer number of seconds.
// Anything else, such as Duration - Timestamp or Duration * Duration, fails
// with KindUnsupportedOperand.
func Apply(op Operator, left, right any) (any, error) {
	l, r := classify(left), classify(right)
	unsupported := UnsupportedOperandError(op.String(), left, right)

	switch op {
	case OpAdd:
		switch {
		case l.isInstant() && r.isSpan():
			return l.ts.AddSeconds(r.secs), nil
		case l.kind == operandDuration && r.isInstant():
			return r.ts.AddSeconds(l.secs), nil
		case l.kind == operandDuration && r.isSpan(), l.isSpan() && r.kind == operandDuration:
			return Duration{secs: l.secs + r.secs}, nil
		}

	case OpSub:
		switch {
		case l.isInstant() && r.isInstant():
			return l.ts.Sub(r.ts), nil
		case l.isInstant() && r.isSpan():
			return l.ts.AddSeconds(-r.secs), nil
		case l.kind == operandDuration && r.isSpan(), l.isSpan() && r.kind == operandDuration:
			return Duration{secs: l.secs - r.secs}, nil
		}

	case OpMul:
		switch {
		case l.kind == operandDuration && r.isScalar():
			return Duration{secs: l.secs}.Mul(r.f), nil
		case l.isScalar() && r.kind == operandDuration:
			return Duration{secs: r.secs}.Mul(l.f), nil
		}

	case OpDiv, OpFloorDiv, OpMod:
		if l.kind != operandDuration || !r.isScalar() {
			return nil, unsupported
		}
		d := Duration{secs: l.secs}
		switch op {
		case OpDiv:
			return d.Div(r.f)
		case OpFloorDiv:
			return d.FloorDiv(r.f)
		default:
			return d.Mod(r.f)
		}
	}
	return nil, unsupported
}

// CompareValues orders two values of the same family: instants with
// instants, spans with spans (numbers count as seconds).
func CompareValues(left, right any) (int, error) {
	l := classify(left)
	switch {
	case l.isInstant():
		return l.ts.Compare(right)
	case l.kind == operandDuration || l.kind == operandTimeDuration:
		return Duration{secs: l.secs}.Compare(right)
	case l.isScalar():
		if r := classify(right); r.kind == operandDuration {
			c, err := Duration{secs: r.secs}.Compare(left)
			return -c, err
		}
	}
	return 0, UnsupportedOperandError("comparison", left, right)
}

func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

// scalarValue returns any plain number as float64.
func scalarValue(v any) (float64, bool) {
	if n, ok := intValue(v); ok {
		return float64(n), true
	}
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}
