package dtm

import (
	"fmt"
)

// ErrorKind represents the type of error that occurred.
type ErrorKind string

const (
	KindConstruction               ErrorKind = "construction"
	KindParse                      ErrorKind = "parse"
	KindInvalidTimezone            ErrorKind = "invalid_timezone"
	KindInvalidWeekday             ErrorKind = "invalid_weekday"
	KindInvalidArgumentType        ErrorKind = "invalid_argument_type"
	KindMutuallyExclusiveArguments ErrorKind = "mutually_exclusive_arguments"
	KindMixedArguments             ErrorKind = "mixed_arguments"
	KindUnsupportedOperand         ErrorKind = "unsupported_operand"
	KindZeroDivision               ErrorKind = "zero_division"
)

// Sentinels for use with errors.Is. Only the Kind is compared.
var (
	ErrConstruction               = &Error{Kind: KindConstruction}
	ErrParse                      = &Error{Kind: KindParse}
	ErrInvalidTimezone            = &Error{Kind: KindInvalidTimezone}
	ErrInvalidWeekday             = &Error{Kind: KindInvalidWeekday}
	ErrInvalidArgumentType        = &Error{Kind: KindInvalidArgumentType}
	ErrMutuallyExclusiveArguments = &Error{Kind: KindMutuallyExclusiveArguments}
	ErrMixedArguments             = &Error{Kind: KindMixedArguments}
	ErrUnsupportedOperand         = &Error{Kind: KindUnsupportedOperand}
	ErrZeroDivision               = &Error{Kind: KindZeroDivision}
)

// Error is the single error type returned by this package.
type Error struct {
	Kind    ErrorKind
	Message string
	Input   string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ConstructionError reports an argument shape no constructor accepts.
func ConstructionError(message string) *Error {
	return &Error{Kind: KindConstruction, Message: message}
}

// ParseError reports that none of the candidate formats matched input.
func ParseError(input string) *Error {
	return &Error{
		Kind:    KindParse,
		Message: fmt.Sprintf("None of the formats matched '%s'", input),
		Input:   input,
	}
}

// FormatMismatchError reports that input does not fit one explicit format.
func FormatMismatchError(input, format string, cause error) *Error {
	return &Error{
		Kind:    KindParse,
		Message: fmt.Sprintf("time data '%s' does not match format '%s'", input, format),
		Input:   input,
		Cause:   cause,
	}
}

// InvalidTimezoneError reports a zone specifier that cannot be resolved.
func InvalidTimezoneError(input string, cause error) *Error {
	return &Error{
		Kind:    KindInvalidTimezone,
		Message: "tz must be timezone, timezone name, or nil",
		Input:   input,
		Cause:   cause,
	}
}

// InvalidWeekdayError reports a weekday code outside mon..sun.
func InvalidWeekdayError(input string) *Error {
	return &Error{
		Kind:    KindInvalidWeekday,
		Message: "one of the targets is not a valid weekday",
		Input:   input,
	}
}

// InvalidArgumentTypeError reports a weekday search without targets.
func InvalidArgumentTypeError(message string) *Error {
	return &Error{Kind: KindInvalidArgumentType, Message: message}
}

// MutuallyExclusiveError names the synonym group that was over-specified.
func MutuallyExclusiveError(group []string) *Error {
	msg := "Mutually exclusive arguments: "
	for i, name := range group {
		if i > 0 {
			msg += ", "
		}
		msg += name
	}
	return &Error{Kind: KindMutuallyExclusiveArguments, Message: msg}
}

// MixedArgumentsError reports that components and magnitudes were both given.
func MixedArgumentsError(message string) *Error {
	return &Error{Kind: KindMixedArguments, Message: message}
}

// UnsupportedOperandError reports an operator applied to incompatible values.
func UnsupportedOperandError(op string, left, right any) *Error {
	return &Error{
		Kind:    KindUnsupportedOperand,
		Message: fmt.Sprintf("unsupported operand type(s) for %s: '%s' and '%s'", op, typeName(left), typeName(right)),
	}
}

// ZeroDivisionError reports division or modulo by zero.
func ZeroDivisionError(op string) *Error {
	return &Error{Kind: KindZeroDivision, Message: fmt.Sprintf("duration %s by zero", op)}
}

func typeName(v any) string {
	switch v.(type) {
	case Timestamp, *Timestamp:
		return "Timestamp"
	case Duration, *Duration:
		return "Duration"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", v)
	}
}
