package beans

import (
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Char is a parameter type for single-character literals. A rune parameter
// takes a number; a Char parameter takes the character itself.
type Char rune

var charType = reflect.TypeFor[Char]()

// ConvertLiteral converts a literal argument to a value of type t.
//
// Supported are string, bool, Char, the signed and unsigned integer kinds,
// the float kinds, named types with one of those underlying kinds, and
// pointers to any of them. A pointer is the nullable form: the converted
// value is stored in a fresh variable and its address returned.
//
// Booleans use strconv.ParseBool, so "1", "t" and "TRUE" are accepted and
// anything it does not recognize is an error. rune is int32 and parses as
// a number; use Char for a character.
//
// A value that does not parse yields a *LiteralError. Any other target type
// yields ErrUnsupportedArgumentType.
func ConvertLiteral(raw string, t reflect.Type) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrUnsupportedArgumentType)
	}

	if t.Kind() == reflect.Pointer {
		if !isLiteralKind(t.Elem().Kind()) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedArgumentType, formatType(t))
		}
		v, err := convertValue(raw, t.Elem())
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr.Interface(), nil
	}

	v, err := convertValue(raw, t)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func isLiteralKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func convertValue(raw string, t reflect.Type) (reflect.Value, error) {
	v := reflect.New(t).Elem()

	if t == charType {
		r, size := utf8.DecodeRuneInString(raw)
		if size == 0 || size != len(raw) || (r == utf8.RuneError && size == 1) {
			return reflect.Value{}, &LiteralError{Value: raw, Type: t, Cause: ErrCharLength}
		}
		v.SetInt(int64(r))
		return v, nil
	}

	switch t.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, &LiteralError{Value: raw, Type: t, Cause: err}
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, &LiteralError{Value: raw, Type: t, Cause: err}
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, &LiteralError{Value: raw, Type: t, Cause: err}
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return reflect.Value{}, &LiteralError{Value: raw, Type: t, Cause: err}
		}
		v.SetFloat(f)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedArgumentType, formatType(t))
	}

	return v, nil
}
