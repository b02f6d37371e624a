package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ConversionError reports a token that cannot be converted to its target type.
type ConversionError struct {
	Token  string
	Target Type
	Cause  error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %q to %s", e.Token, e.Target)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying parse error
func (e *ConversionError) Unwrap() error { return e.Cause }

var (
	errNotBool      = errors.New("expected true/false, yes/no, on/off or 1/0")
	errUnknownEnum  = errors.New("no matching member")
	errNotScalar    = errors.New("expected a single value")
	errUnknownKind  = errors.New("unsupported type")
	errArrayElement = errors.New("arrays of arrays are not supported")
)

// Convert converts a single token into a value of type t. Array types
// produce a one-element array.
func Convert(token string, t Type) (Value, error) {
	switch t.kind {
	case KindString:
		return StringValue(token), nil
	case KindBool:
		b, ok := parseBool(token)
		if !ok {
			return Value{}, &ConversionError{Token: token, Target: t, Cause: errNotBool}
		}
		return BoolValue(b), nil
	case KindInt:
		n, err := parseInt(token)
		if err != nil {
			return Value{}, &ConversionError{Token: token, Target: t, Cause: unwrapNumError(err)}
		}
		return IntValue(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Value{}, &ConversionError{Token: token, Target: t, Cause: unwrapNumError(err)}
		}
		return FloatValue(f), nil
	case KindDuration:
		d, err := time.ParseDuration(token)
		if err != nil {
			return Value{}, &ConversionError{Token: token, Target: t, Cause: err}
		}
		return DurationValue(d), nil
	case KindEnum:
		if t.enum == nil {
			return Value{}, &ConversionError{Token: token, Target: t, Cause: errUnknownKind}
		}
		m, ok := t.enum.Lookup(token)
		if !ok {
			cause := fmt.Errorf("%w, expected one of %s", errUnknownEnum, strings.Join(t.enum.tokens(), ", "))
			return Value{}, &ConversionError{Token: token, Target: t, Cause: cause}
		}
		return EnumValue(t.enum, m), nil
	case KindArray:
		return ConvertAll([]string{token}, t)
	default:
		return Value{}, &ConversionError{Token: token, Target: t, Cause: errUnknownKind}
	}
}

// ConvertAll converts a token list. Array types convert every token to the
// element type in order; scalar types require exactly one token.
func ConvertAll(tokens []string, t Type) (Value, error) {
	if t.kind != KindArray {
		if len(tokens) != 1 {
			return Value{}, &ConversionError{Token: strings.Join(tokens, " "), Target: t, Cause: errNotScalar}
		}
		return Convert(tokens[0], t)
	}

	elem := t.Elem()
	if elem.kind == KindArray {
		return Value{}, &ConversionError{Token: strings.Join(tokens, " "), Target: t, Cause: errArrayElement}
	}

	items := make([]Value, 0, len(tokens))
	for _, token := range tokens {
		item, err := Convert(token, elem)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	return ArrayValue(elem, items...), nil
}

// Truthy reports the boolean meaning of a token; it is used for anti-names,
// which bind the negation of the supplied token.
func Truthy(token string) (bool, error) {
	b, ok := parseBool(token)
	if !ok {
		return false, &ConversionError{Token: token, Target: Bool, Cause: errNotBool}
	}
	return b, nil
}

func parseBool(token string) (bool, bool) {
	switch strings.ToLower(token) {
	case "true", "1", "yes", "y", "on":
		return true, true
	case "false", "0", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

// parseInt accepts decimal plus 0x, 0o and 0b prefixed integers. A plain
// leading zero stays decimal.
func parseInt(token string) (int64, error) {
	digits := strings.TrimLeft(token, "+-")
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			return strconv.ParseInt(token, 0, 64)
		}
	}
	return strconv.ParseInt(token, 10, 64)
}

func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}
