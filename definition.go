package beans

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
)

var beanIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]+$`)

// Definition is one parsed bean declaration. It tracks which referenced
// beans are still missing and builds the bean once none are.
//
// A Definition is not safe for concurrent use; the Container drives it from
// a single goroutine.
type Definition struct {
	id   string
	info *typeInfo

	ctorArgs  []Argument
	props     map[string]Argument
	propOrder []string

	// deps holds every referenced id once, in first-reference order.
	deps     []string
	pending  map[string]struct{}
	resolved map[string]any

	instance any
	state    State
}

// BeanInfo is a read-only summary of a Definition.
type BeanInfo struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Dependencies []string `json:"dependencies"`
	Pending      []string `json:"pending,omitempty"`
	State        State    `json:"state"`
}

// NewDefinition validates a declaration against the registered types.
// All failures are ErrConfigInvalid.
func NewDefinition(decl Declaration, types *TypeRegistry) (*Definition, error) {
	if types == nil {
		return nil, &ConfigError{BeanID: decl.ID, Cause: ErrTypeRegistryNil}
	}

	if !beanIDPattern.MatchString(decl.ID) {
		return nil, &ConfigError{BeanID: decl.ID, Cause: fmt.Errorf("%w: %q", ErrInvalidBeanID, decl.ID)}
	}

	invalid := func(cause error) error {
		return &ConfigError{BeanID: decl.ID, TypeName: decl.Type, Cause: cause}
	}

	if decl.Type == "" {
		return nil, invalid(ErrTypeNameEmpty)
	}

	info, ok := types.lookup(decl.Type)
	if !ok {
		return nil, invalid(ErrTypeNotFound)
	}
	if info.notInstantiable != nil {
		return nil, invalid(info.notInstantiable)
	}
	if info.ambiguous != nil {
		return nil, invalid(info.ambiguous)
	}

	d := &Definition{
		id:       decl.ID,
		info:     info,
		props:    make(map[string]Argument, len(decl.Properties)),
		pending:  make(map[string]struct{}),
		resolved: make(map[string]any),
		state:    Declared,
	}

	byIndex := make(map[int]Argument, len(decl.ConstructorArgs))
	for _, ca := range decl.ConstructorArgs {
		if ca.Index < 0 {
			return nil, invalid(fmt.Errorf("%w: %d", ErrNegativeIndex, ca.Index))
		}
		if _, exists := byIndex[ca.Index]; exists {
			return nil, invalid(fmt.Errorf("%w: %d", ErrDuplicateIndex, ca.Index))
		}

		arg, err := newArgument(ca.Value, ca.Ref)
		if err != nil {
			return nil, invalid(fmt.Errorf("constructor argument %d: %w", ca.Index, err))
		}
		byIndex[ca.Index] = arg
		d.addDependency(arg)
	}

	// Indices are unique and non-negative, so 0..n-1 must all be present.
	d.ctorArgs = make([]Argument, len(byIndex))
	for i := range d.ctorArgs {
		arg, ok := byIndex[i]
		if !ok {
			return nil, invalid(fmt.Errorf("%w: %d", ErrIndexGap, i))
		}
		d.ctorArgs[i] = arg
	}

	for _, p := range decl.Properties {
		if p.Name == "" {
			return nil, invalid(ErrPropertyNameEmpty)
		}
		if _, exists := d.props[p.Name]; exists {
			return nil, invalid(fmt.Errorf("%w: %s", ErrDuplicateProperty, p.Name))
		}

		arg, err := newArgument(p.Value, p.Ref)
		if err != nil {
			return nil, invalid(fmt.Errorf("property %s: %w", p.Name, err))
		}
		d.props[p.Name] = arg
		d.propOrder = append(d.propOrder, p.Name)
		d.addDependency(arg)
	}

	if len(d.pending) == 0 {
		d.state = Resolvable
	}

	return d, nil
}

func (d *Definition) addDependency(arg Argument) {
	if !arg.IsReference() {
		return
	}
	if _, exists := d.pending[arg.Value]; exists {
		return
	}
	d.pending[arg.Value] = struct{}{}
	d.deps = append(d.deps, arg.Value)
}

// ID returns the bean id.
func (d *Definition) ID() string {
	return d.id
}

// TypeName returns the name of the bean's type.
func (d *Definition) TypeName() string {
	return d.info.desc.Name
}

// Type returns the type of the instances the bean's type descriptor produces.
func (d *Definition) Type() reflect.Type {
	return d.info.desc.Type
}

// State returns the current lifecycle state.
func (d *Definition) State() State {
	return d.state
}

// Dependencies returns every bean id this bean references.
func (d *Definition) Dependencies() []string {
	return slices.Clone(d.deps)
}

// PendingDependencies returns the referenced ids not yet resolved, in
// reference order.
func (d *Definition) PendingDependencies() []string {
	var ids []string
	for _, id := range d.deps {
		if _, ok := d.pending[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// HasPendingDependencies reports whether some referenced bean is not ready yet.
func (d *Definition) HasPendingDependencies() bool {
	return len(d.pending) > 0
}

// Instance returns the built instance, or nil before a successful Build.
func (d *Definition) Instance() any {
	return d.instance
}

// Info returns a summary of the definition.
func (d *Definition) Info() BeanInfo {
	deps := d.Dependencies()
	if deps == nil {
		deps = []string{}
	}
	return BeanInfo{
		ID:           d.id,
		Type:         d.TypeName(),
		Dependencies: deps,
		Pending:      d.PendingDependencies(),
		State:        d.state,
	}
}

// OnBeanReady tells the definition that the bean id finished building. If
// this definition references id, the dependency is struck and the instance
// kept for argument resolution. Unrelated ids are ignored.
func (d *Definition) OnBeanReady(id string, instance any) {
	if _, ok := d.pending[id]; !ok {
		return
	}

	delete(d.pending, id)
	d.resolved[id] = instance

	if len(d.pending) == 0 && d.state == Declared {
		d.state = Resolvable
	}
}

// Build constructs the bean and injects its properties. The instance is
// memoized: later calls return it without rebuilding.
//
// Build fails with ErrUnresolvedDependency while dependencies are pending or
// when no constructor matches, and with ErrConfigInvalid when property
// injection fails.
func (d *Definition) Build() (any, error) {
	if d.HasPendingDependencies() {
		return nil, &UnresolvedDependencyError{
			BeanID: d.id,
			Cause:  fmt.Errorf("%w: %s", ErrPendingDependencies, strings.Join(d.PendingDependencies(), ", ")),
		}
	}

	if d.instance != nil {
		return d.instance, nil
	}

	instance, err := d.construct()
	if err != nil {
		d.state = Failed
		return nil, err
	}
	d.state = Instantiated

	if err := d.injectProperties(instance); err != nil {
		d.state = Failed
		return nil, err
	}

	d.instance = instance
	d.state = Ready
	return instance, nil
}

// construct tries the constructors whose arity matches the declared
// arguments, in order. A failing candidate is skipped: constructors of the
// same arity are overloads and the next one may accept the arguments.
func (d *Definition) construct() (any, error) {
	desc := d.info.desc

	if len(desc.Constructors) == 0 {
		if len(d.ctorArgs) == 0 && desc.Default != nil {
			if instance := desc.Default(); !isNil(instance) {
				return instance, nil
			}
			return nil, &UnresolvedDependencyError{BeanID: d.id, Cause: ErrNilInstance}
		}
		return nil, &UnresolvedDependencyError{BeanID: d.id, Cause: ErrNoMatchingConstructor}
	}

	var attempts []*InstantiationError
	for _, ctor := range desc.Constructors {
		if len(ctor.Params) != len(d.ctorArgs) {
			continue
		}

		instance, err := d.tryConstructor(ctor)
		if err != nil {
			attempts = append(attempts, err)
			continue
		}
		return instance, nil
	}

	return nil, &UnresolvedDependencyError{
		BeanID:   d.id,
		Cause:    ErrNoMatchingConstructor,
		Attempts: attempts,
	}
}

func (d *Definition) tryConstructor(ctor Constructor) (instance any, ierr *InstantiationError) {
	fail := func(cause error) *InstantiationError {
		return &InstantiationError{
			BeanID:   d.id,
			TypeName: d.TypeName(),
			Params:   ctor.Params,
			Cause:    cause,
		}
	}

	args := make([]any, len(ctor.Params))
	for i, param := range ctor.Params {
		v, err := d.resolveArgument(d.ctorArgs[i], param)
		if err != nil {
			return nil, fail(fmt.Errorf("argument %d: %w", i, err))
		}
		args[i] = v
	}

	defer func() {
		if r := recover(); r != nil {
			instance = nil
			ierr = fail(ErrConstructorPanic)
			ierr.Panic = r
		}
	}()

	v, err := ctor.Invoke(args)
	if err != nil {
		return nil, fail(err)
	}
	if isNil(v) {
		return nil, fail(ErrNilInstance)
	}
	return v, nil
}

// injectProperties applies every declared property through its setter.
// Injection is all or nothing: a property without a setter fails the bean.
func (d *Definition) injectProperties(instance any) error {
	var unmatched []string

	for _, name := range d.propOrder {
		setter, ok := d.info.setters[name]
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}

		if err := d.applySetter(instance, name, setter); err != nil {
			return err
		}
	}

	if len(unmatched) > 0 {
		return &ConfigError{
			BeanID:   d.id,
			TypeName: d.TypeName(),
			Property: unmatched[0],
			Cause:    fmt.Errorf("%w: %s", ErrNoSetter, strings.Join(unmatched, ", ")),
		}
	}

	return nil
}

func (d *Definition) applySetter(instance any, name string, setter Setter) (err error) {
	value, err := d.resolveArgument(d.props[name], setter.Param)
	if err != nil {
		if errors.Is(err, ErrUnresolvedDependency) {
			return err
		}
		return &ConfigError{BeanID: d.id, TypeName: d.TypeName(), Property: name, Cause: err}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ConfigError{
				BeanID:   d.id,
				TypeName: d.TypeName(),
				Property: name,
				Cause:    fmt.Errorf("%w: %v", ErrSetterPanic, r),
			}
		}
	}()

	if err := setter.Invoke(instance, value); err != nil {
		return &ConfigError{BeanID: d.id, TypeName: d.TypeName(), Property: name, Cause: err}
	}
	return nil
}

// resolveArgument produces the value for one parameter of type t. References
// resolve to the referenced bean regardless of t.
func (d *Definition) resolveArgument(arg Argument, t reflect.Type) (any, error) {
	if arg.IsReference() {
		instance, ok := d.resolved[arg.Value]
		if !ok {
			return nil, &UnresolvedDependencyError{
				BeanID: d.id,
				Cause:  fmt.Errorf("%w: %s", ErrUnresolvedReference, arg.Value),
			}
		}
		return instance, nil
	}

	return ConvertLiteral(arg.Value, t)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
