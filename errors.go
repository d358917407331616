package beans

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Error Kinds
// ========================================
// Every error returned by a build matches exactly one of these with errors.Is.

var (
	// ErrConfigInvalid marks a malformed declaration or type setup.
	ErrConfigInvalid = errors.New("invalid bean configuration")

	// ErrUnresolvedDependency marks a bean that could not be constructed because a
	// dependency never became ready or no constructor matched.
	ErrUnresolvedDependency = errors.New("unresolved bean dependency")

	// ErrInstantiation marks the failure of a single constructor attempt.
	ErrInstantiation = errors.New("bean instantiation failed")
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are causes. They are wrapped in one of the typed errors below, which
// adds the bean id and the error kind.

var (
	// Declaration errors.
	ErrInvalidBeanID         = errors.New("bean id must start with a letter followed by one or more letters or digits")
	ErrDuplicateBeanID       = errors.New("duplicate bean id")
	ErrTypeNameEmpty         = errors.New("bean type cannot be empty")
	ErrTypeNotFound          = errors.New("bean type not registered")
	ErrTypeNotInstantiable   = errors.New("bean type is not instantiable")
	ErrNegativeIndex         = errors.New("constructor argument index cannot be negative")
	ErrDuplicateIndex        = errors.New("constructor argument index appeared more than once")
	ErrIndexGap              = errors.New("constructor argument index is missing")
	ErrPropertyNameEmpty     = errors.New("property name cannot be empty")
	ErrDuplicateProperty     = errors.New("property appeared more than once")
	ErrArgumentValueMissing  = errors.New("neither value nor ref was given")
	ErrArgumentValueConflict = errors.New("value and ref cannot both be given")

	// Type descriptor errors.
	ErrDescriptorNil           = errors.New("type descriptor cannot be nil")
	ErrTypeAlreadyRegistered   = errors.New("type already registered")
	ErrAmbiguousSetter         = errors.New("setter is overloaded")
	ErrUnsupportedArgumentType = errors.New("unsupported argument type")
	ErrNoSetter                = errors.New("no setter for property")

	// Construction errors.
	ErrNoMatchingConstructor = errors.New("no matching constructor")
	ErrUnresolvedReference   = errors.New("referenced bean is not resolved")
	ErrPendingDependencies   = errors.New("bean has pending dependencies")
	ErrNilInstance           = errors.New("constructor returned nil")
	ErrConstructorPanic      = errors.New("constructor panicked")
	ErrSetterPanic           = errors.New("setter panicked")
	ErrArgumentType          = errors.New("argument has the wrong type")
	ErrCharLength            = errors.New("literal must be exactly one character")

	// Container errors.
	ErrBeanNotFound      = errors.New("bean not found")
	ErrBeanIDEmpty       = errors.New("bean id cannot be empty")
	ErrContainerBuilt    = errors.New("container has already been built")
	ErrContainerNotBuilt = errors.New("container has not been built")
	ErrTypeRegistryNil   = errors.New("type registry cannot be nil")
	ErrDigContainerNil   = errors.New("dig container cannot be nil")
)

var (
	_ error = (*ConfigError)(nil)
	_ error = (*UnresolvedDependencyError)(nil)
	_ error = (*InstantiationError)(nil)
	_ error = (*LiteralError)(nil)
	_ error = ResolutionError{}
	_ error = TypeMismatchError{}
	_ error = BuildError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// ConfigError is returned for every ErrConfigInvalid condition.
type ConfigError struct {
	BeanID   string // empty when the error is not tied to one bean
	TypeName string
	Property string // set for property injection failures
	Cause    error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("invalid bean configuration")
	if e.BeanID != "" {
		b.WriteString(fmt.Sprintf(" for %q", e.BeanID))
	}
	if e.TypeName != "" {
		b.WriteString(fmt.Sprintf(" (type %s)", e.TypeName))
	}
	if e.Property != "" {
		b.WriteString(fmt.Sprintf(", property %q", e.Property))
	}
	b.WriteString(fmt.Sprintf(": %v", e.Cause))
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfigInvalid
}

// UnresolvedDependencyError is returned when beans cannot be constructed.
//
// For a single bean (no matching constructor) BeanID and Attempts are set.
// For a build that stopped making progress Unresolved lists every bean left
// pending, Missing the referenced ids that were never declared, and Cycle one
// dependency cycle if the pending beans contain any.
type UnresolvedDependencyError struct {
	BeanID     string
	Unresolved []string
	Missing    []string
	Cycle      []string
	Attempts   []*InstantiationError
	Cause      error
}

func (e *UnresolvedDependencyError) Error() string {
	var b strings.Builder
	if e.BeanID != "" {
		b.WriteString(fmt.Sprintf("bean %q can not be created: %v", e.BeanID, e.Cause))
		for i, attempt := range e.Attempts {
			b.WriteString(fmt.Sprintf("\n  %d. %v", i+1, attempt))
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("not all beans could be created due to unresolved dependencies: %s",
		strings.Join(e.Unresolved, ", ")))
	if len(e.Missing) > 0 {
		b.WriteString(fmt.Sprintf("\n  undeclared: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Cycle) > 0 {
		b.WriteString(fmt.Sprintf("\n  cycle: %s -> %s", strings.Join(e.Cycle, " -> "), e.Cycle[0]))
	}
	return b.String()
}

func (e *UnresolvedDependencyError) Unwrap() error {
	return e.Cause
}

func (e *UnresolvedDependencyError) Is(target error) bool {
	return target == ErrUnresolvedDependency
}

// InstantiationError describes one failed constructor attempt.
type InstantiationError struct {
	BeanID   string
	TypeName string
	Params   []reflect.Type
	Panic    any // set when the constructor panicked
	Cause    error
}

func (e *InstantiationError) Error() string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = formatType(p)
	}
	if e.Panic != nil {
		return fmt.Sprintf("constructor %s(%s) panicked: %v", e.TypeName, strings.Join(params, ", "), e.Panic)
	}
	return fmt.Sprintf("constructor %s(%s) failed: %v", e.TypeName, strings.Join(params, ", "), e.Cause)
}

func (e *InstantiationError) Unwrap() error {
	return e.Cause
}

func (e *InstantiationError) Is(target error) bool {
	return target == ErrInstantiation
}

// LiteralError reports a literal that does not parse as the requested type.
type LiteralError struct {
	Value string
	Type  reflect.Type
	Cause error
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Value, formatType(e.Type), e.Cause)
}

func (e *LiteralError) Unwrap() error {
	return e.Cause
}

// ResolutionError is returned by Resolve when no ready bean has the id.
type ResolutionError struct {
	BeanID    string
	Cause     error
	Available []string
}

func (e ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("bean not found: %q", e.BeanID))

	if e.Cause != nil && e.Cause != ErrBeanNotFound {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if similar := findSimilarIDs(e.BeanID, e.Available); len(similar) > 0 {
		b.WriteString("\n\nDid you mean one of these?\n")
		for _, id := range similar {
			b.WriteString(fmt.Sprintf("  • %s\n", id))
		}
	}

	return b.String()
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// findSimilarIDs finds ids that contain, or are contained in, the target ignoring case.
func findSimilarIDs(target string, available []string) []string {
	if target == "" || len(available) == 0 {
		return nil
	}

	lower := strings.ToLower(target)
	var similar []string
	for _, id := range available {
		if id == target {
			continue
		}

		candidate := strings.ToLower(id)
		if strings.Contains(candidate, lower) || strings.Contains(lower, candidate) {
			similar = append(similar, id)
		}

		if len(similar) >= 5 {
			break
		}
	}

	return similar
}

// TypeMismatchError indicates a bean is not of the type requested by Resolve.
type TypeMismatchError struct {
	BeanID   string
	Expected reflect.Type
	Actual   reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("bean %q: expected %s, got %s", e.BeanID, formatType(e.Expected), formatType(e.Actual))
}

// BuildError wraps errors that abort a container build.
type BuildError struct {
	Phase string // "parse" or "resolve"
	Cause error
}

func (e BuildError) Error() string {
	return fmt.Sprintf("build failed during %s phase: %v", e.Phase, e.Cause)
}

func (e BuildError) Unwrap() error {
	return e.Cause
}

// IsConfigInvalid reports whether err is an ErrConfigInvalid error.
func IsConfigInvalid(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}

// IsUnresolvedDependency reports whether err is an ErrUnresolvedDependency error.
func IsUnresolvedDependency(err error) bool {
	return errors.Is(err, ErrUnresolvedDependency)
}

// IsNotFound reports whether err means a bean id is unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBeanNotFound)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
