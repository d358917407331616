package beans

import (
	"reflect"
)

// Resolve is a generic helper that returns the bean id as type T.
//
// It fails with a ResolutionError (matching ErrBeanNotFound) if no ready
// bean has the id, and with a TypeMismatchError if the bean is not a T.
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T

	if id == "" {
		return zero, ResolutionError{Cause: ErrBeanIDEmpty}
	}

	instance, ok := c.Get(id)
	if !ok {
		return zero, ResolutionError{
			BeanID:    id,
			Cause:     ErrBeanNotFound,
			Available: c.IDs(),
		}
	}

	result, ok := instance.(T)
	if !ok {
		return zero, TypeMismatchError{
			BeanID:   id,
			Expected: reflect.TypeFor[T](),
			Actual:   reflect.TypeOf(instance),
		}
	}

	return result, nil
}

// MustResolve resolves a bean and panics on error.
func MustResolve[T any](c *Container, id string) T {
	result, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return result
}
