package beans

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// TypeRegistry maps type names used in declarations to TypeDescriptors.
//
// A TypeRegistry is safe for concurrent use. Registration normally happens
// once at startup, before any Container is built from it.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]*typeInfo
}

// typeInfo is a registered descriptor with its setter table precomputed.
// Problems that only matter once a bean of the type is declared are kept
// and reported when that happens.
type typeInfo struct {
	desc    *TypeDescriptor
	setters map[string]Setter

	// notInstantiable is non-nil when beans of this type can never be built.
	notInstantiable error

	// ambiguous is non-nil when two setters derive the same property name.
	ambiguous error
}

// NewTypeRegistry creates an empty TypeRegistry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		types: make(map[string]*typeInfo),
	}
}

// Register adds a descriptor. It fails if the descriptor is malformed or the
// name is taken.
func (r *TypeRegistry) Register(desc *TypeDescriptor) error {
	if desc == nil {
		return &ConfigError{Cause: ErrDescriptorNil}
	}

	info, err := compileType(desc)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[desc.Name]; exists {
		return &ConfigError{TypeName: desc.Name, Cause: ErrTypeAlreadyRegistered}
	}

	r.types[desc.Name] = info
	return nil
}

// MustRegister registers each descriptor and panics on the first error.
func (r *TypeRegistry) MustRegister(descs ...*TypeDescriptor) *TypeRegistry {
	for _, desc := range descs {
		if err := r.Register(desc); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the descriptor registered under name.
func (r *TypeRegistry) Lookup(name string) (*TypeDescriptor, bool) {
	info, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	return info.desc, true
}

// Names returns the registered type names, sorted.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *TypeRegistry) lookup(name string) (*typeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.types[name]
	return info, ok
}

// compileType validates the shape of a descriptor and indexes its setters.
func compileType(desc *TypeDescriptor) (*typeInfo, error) {
	if desc.Name == "" {
		return nil, &ConfigError{Cause: ErrTypeNameEmpty}
	}

	malformed := func(format string, args ...any) error {
		return &ConfigError{TypeName: desc.Name, Cause: fmt.Errorf(format, args...)}
	}

	if desc.Type == nil {
		return nil, malformed("descriptor type cannot be nil")
	}

	for i, ctor := range desc.Constructors {
		if ctor.Invoke == nil {
			return nil, malformed("constructor %d has no Invoke function", i)
		}
		for j, p := range ctor.Params {
			if p == nil {
				return nil, malformed("constructor %d parameter %d has no type", i, j)
			}
		}
	}

	info := &typeInfo{
		desc:    desc,
		setters: make(map[string]Setter, len(desc.Setters)),
	}

	for i, setter := range desc.Setters {
		if setter.Invoke == nil {
			return nil, malformed("setter %d (%s) has no Invoke function", i, setter.Name)
		}
		if setter.Param == nil {
			return nil, malformed("setter %d (%s) has no parameter type", i, setter.Name)
		}

		property, ok := setter.Property()
		if !ok {
			continue
		}
		if _, exists := info.setters[property]; exists && info.ambiguous == nil {
			info.ambiguous = fmt.Errorf("%w: %s", ErrAmbiguousSetter, setter.Name)
			continue
		}
		info.setters[property] = setter
	}

	info.notInstantiable = checkInstantiable(desc)

	return info, nil
}

// checkInstantiable rejects descriptors whose instances cannot be concrete
// beans: abstract types, interfaces, primitives and the built-in container
// kinds. Only structs and pointers to structs are accepted.
func checkInstantiable(desc *TypeDescriptor) error {
	if desc.Abstract {
		return fmt.Errorf("%w: %s is abstract", ErrTypeNotInstantiable, desc.Name)
	}

	t := desc.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s has kind %s", ErrTypeNotInstantiable, formatType(desc.Type), t.Kind())
	}

	if len(desc.Constructors) == 0 && desc.Default == nil {
		return fmt.Errorf("%w: %s has no constructors and no default", ErrTypeNotInstantiable, desc.Name)
	}

	return nil
}
