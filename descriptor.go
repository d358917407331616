package beans

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// setterPrefix is stripped from a setter name to derive its property name.
const setterPrefix = "Set"

// TypeDescriptor describes how beans of one type are built. It replaces
// runtime discovery of constructors and setters: everything the container
// may call is listed here up front.
type TypeDescriptor struct {
	// Name is the type name declarations refer to.
	Name string

	// Type is the type of the instances this descriptor produces.
	Type reflect.Type

	// Abstract marks a type that can never be instantiated directly.
	Abstract bool

	// Constructors in the order they are tried.
	Constructors []Constructor

	// Setters available for property injection.
	Setters []Setter

	// Default builds an instance when the type declares no constructors
	// and the bean declares no constructor arguments.
	Default func() any
}

// Constructor is one constructor overload.
type Constructor struct {
	// Params are the declared parameter types, in order.
	Params []reflect.Type

	// Invoke calls the constructor. len(args) == len(Params) and args[i]
	// was resolved against Params[i].
	Invoke func(args []any) (any, error)
}

// Setter is a single-argument mutator used for property injection.
type Setter struct {
	// Name is the setter name, e.g. "SetNumber". The property it serves is
	// the name without the "Set" prefix with its first letter lower-cased.
	Name string

	// Param is the declared parameter type.
	Param reflect.Type

	// Invoke applies value to target.
	Invoke func(target, value any) error
}

// Property returns the property name derived from the setter name and
// whether the name is setter-like at all.
func (s Setter) Property() (string, bool) {
	rest, ok := strings.CutPrefix(s.Name, setterPrefix)
	if !ok || rest == "" {
		return "", false
	}

	r, size := utf8.DecodeRuneInString(rest)
	return string(unicode.ToLower(r)) + rest[size:], true
}

// A DescribeOption configures a TypeDescriptor created by Describe.
type DescribeOption func(*TypeDescriptor)

// WithConstructor appends constructor overloads. Overloads are tried in the
// order they were added.
func WithConstructor(constructors ...Constructor) DescribeOption {
	return func(d *TypeDescriptor) {
		d.Constructors = append(d.Constructors, constructors...)
	}
}

// WithSetter appends setters.
func WithSetter(setters ...Setter) DescribeOption {
	return func(d *TypeDescriptor) {
		d.Setters = append(d.Setters, setters...)
	}
}

// WithDefault replaces the default construction path.
func WithDefault(fn func() any) DescribeOption {
	return func(d *TypeDescriptor) {
		d.Default = fn
	}
}

// AsAbstract marks the type as not instantiable.
func AsAbstract() DescribeOption {
	return func(d *TypeDescriptor) {
		d.Abstract = true
	}
}

// Describe creates a descriptor for beans of type *T registered under name.
// The default construction path returns new(T).
//
// Example:
//
//	types.MustRegister(beans.Describe[Server]("app.Server",
//	    beans.WithConstructor(beans.Constructor2(NewServer)),
//	    beans.WithSetter(beans.SetterFunc("SetTimeout", (*Server).SetTimeout)),
//	))
func Describe[T any](name string, opts ...DescribeOption) *TypeDescriptor {
	d := &TypeDescriptor{
		Name:    name,
		Type:    reflect.TypeFor[*T](),
		Default: func() any { return new(T) },
	}

	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d
}

// Constructor0 adapts a no-argument constructor.
func Constructor0[T any](fn func() T) Constructor {
	return Constructor{
		Params: []reflect.Type{},
		Invoke: func(args []any) (any, error) {
			return fn(), nil
		},
	}
}

// Constructor1 adapts a one-argument constructor.
func Constructor1[A, T any](fn func(A) T) Constructor {
	return FallibleConstructor1(func(a A) (T, error) { return fn(a), nil })
}

// Constructor2 adapts a two-argument constructor.
func Constructor2[A, B, T any](fn func(A, B) T) Constructor {
	return FallibleConstructor2(func(a A, b B) (T, error) { return fn(a, b), nil })
}

// Constructor3 adapts a three-argument constructor.
func Constructor3[A, B, C, T any](fn func(A, B, C) T) Constructor {
	return FallibleConstructor3(func(a A, b B, c C) (T, error) { return fn(a, b, c), nil })
}

// FallibleConstructor1 adapts a one-argument constructor that can fail.
func FallibleConstructor1[A, T any](fn func(A) (T, error)) Constructor {
	return Constructor{
		Params: []reflect.Type{reflect.TypeFor[A]()},
		Invoke: func(args []any) (any, error) {
			a, err := argAs[A](args, 0)
			if err != nil {
				return nil, err
			}
			return fn(a)
		},
	}
}

// FallibleConstructor2 adapts a two-argument constructor that can fail.
func FallibleConstructor2[A, B, T any](fn func(A, B) (T, error)) Constructor {
	return Constructor{
		Params: []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()},
		Invoke: func(args []any) (any, error) {
			a, err := argAs[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := argAs[B](args, 1)
			if err != nil {
				return nil, err
			}
			return fn(a, b)
		},
	}
}

// FallibleConstructor3 adapts a three-argument constructor that can fail.
func FallibleConstructor3[A, B, C, T any](fn func(A, B, C) (T, error)) Constructor {
	return Constructor{
		Params: []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()},
		Invoke: func(args []any) (any, error) {
			a, err := argAs[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := argAs[B](args, 1)
			if err != nil {
				return nil, err
			}
			c, err := argAs[C](args, 2)
			if err != nil {
				return nil, err
			}
			return fn(a, b, c)
		},
	}
}

// SetterFunc adapts a setter. Method expressions fit directly:
//
//	beans.SetterFunc("SetNumber", (*Widget).SetNumber)
func SetterFunc[T, V any](name string, fn func(T, V)) Setter {
	return FallibleSetterFunc(name, func(t T, v V) error {
		fn(t, v)
		return nil
	})
}

// FallibleSetterFunc adapts a setter that can reject its value.
func FallibleSetterFunc[T, V any](name string, fn func(T, V) error) Setter {
	return Setter{
		Name:  name,
		Param: reflect.TypeFor[V](),
		Invoke: func(target, value any) error {
			t, ok := target.(T)
			if !ok {
				return fmt.Errorf("%w: setter %s wants receiver %s, got %T",
					ErrArgumentType, name, formatType(reflect.TypeFor[T]()), target)
			}
			v, ok := value.(V)
			if !ok {
				return fmt.Errorf("%w: setter %s wants %s, got %T",
					ErrArgumentType, name, formatType(reflect.TypeFor[V]()), value)
			}
			return fn(t, v)
		},
	}
}

func argAs[A any](args []any, i int) (A, error) {
	v, ok := args[i].(A)
	if !ok {
		var zero A
		return zero, fmt.Errorf("%w: parameter %d wants %s, got %T",
			ErrArgumentType, i, formatType(reflect.TypeFor[A]()), args[i])
	}
	return v, nil
}
