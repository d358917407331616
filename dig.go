package beans

import (
	"fmt"
	"reflect"

	"go.uber.org/dig"
)

// ProvideTo registers every ready bean with a dig container as a named value:
// the bean's id is the dig name and its dynamic type is the provided type.
//
// Example:
//
//	dc := dig.New()
//	if err := c.ProvideTo(dc); err != nil {
//	    return err
//	}
//
//	type params struct {
//	    dig.In
//	    Store *Store `name:"store"`
//	}
//	err := dc.Invoke(func(p params) { ... })
func (c *Container) ProvideTo(dc *dig.Container) error {
	if dc == nil {
		return ErrDigContainerNil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.built {
		return ErrContainerNotBuilt
	}

	for _, id := range c.order {
		instance := reflect.ValueOf(c.ready[id].Instance())

		fnType := reflect.FuncOf(nil, []reflect.Type{instance.Type()}, false)
		fn := reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
			return []reflect.Value{instance}
		})

		if err := dc.Provide(fn.Interface(), dig.Name(id)); err != nil {
			return fmt.Errorf("failed to provide bean %q to dig: %w", id, err)
		}
	}

	return nil
}
