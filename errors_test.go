package beans

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		config     bool
		unresolved bool
		inst       bool
	}{
		{
			name:   "config error",
			err:    &ConfigError{BeanID: "bean1", Cause: ErrIndexGap},
			config: true,
		},
		{
			name:       "unresolved dependency error",
			err:        &UnresolvedDependencyError{BeanID: "bean1", Cause: ErrNoMatchingConstructor},
			unresolved: true,
		},
		{
			name: "instantiation error",
			err:  &InstantiationError{BeanID: "bean1", Cause: ErrNilInstance},
			inst: true,
		},
		{
			name:   "wrapped in build error",
			err:    BuildError{Phase: "parse", Cause: &ConfigError{Cause: ErrDuplicateBeanID}},
			config: true,
		},
		{
			name:       "wrapped with fmt",
			err:        fmt.Errorf("loading: %w", &UnresolvedDependencyError{Cause: ErrPendingDependencies}),
			unresolved: true,
		},
		{
			name: "plain error",
			err:  errors.New("other"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.config, IsConfigInvalid(tt.err))
			assert.Equal(t, tt.unresolved, IsUnresolvedDependency(tt.err))
			assert.Equal(t, tt.inst, errors.Is(tt.err, ErrInstantiation))
		})
	}
}

func TestErrorCauses(t *testing.T) {
	err := BuildError{Phase: "parse", Cause: &ConfigError{
		BeanID: "bean1",
		Cause:  fmt.Errorf("%w: %d", ErrIndexGap, 1),
	}}

	assert.ErrorIs(t, err, ErrIndexGap)
	assert.NotErrorIs(t, err, ErrDuplicateIndex)

	var ce *ConfigError
	assert.ErrorAs(t, err, &ce)
	assert.Equal(t, "bean1", ce.BeanID)
}

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "cause only",
			err:  &ConfigError{Cause: ErrTypeRegistryNil},
			want: "invalid bean configuration: type registry cannot be nil",
		},
		{
			name: "bean and type",
			err:  &ConfigError{BeanID: "bean1", TypeName: "app.Store", Cause: ErrTypeNotFound},
			want: `invalid bean configuration for "bean1" (type app.Store): bean type not registered`,
		},
		{
			name: "property",
			err:  &ConfigError{BeanID: "bean1", Property: "number", Cause: ErrNoSetter},
			want: `invalid bean configuration for "bean1", property "number": no setter for property`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUnresolvedDependencyError_Error(t *testing.T) {
	t.Run("single bean with attempts", func(t *testing.T) {
		err := &UnresolvedDependencyError{
			BeanID: "bean1",
			Cause:  ErrNoMatchingConstructor,
			Attempts: []*InstantiationError{
				{TypeName: "app.Flag", Params: []reflect.Type{reflect.TypeFor[bool]()}, Cause: ErrArgumentType},
				{TypeName: "app.Flag", Params: []reflect.Type{reflect.TypeFor[string]()}, Panic: "boom", Cause: ErrConstructorPanic},
			},
		}

		msg := err.Error()
		assert.Contains(t, msg, `bean "bean1" can not be created: no matching constructor`)
		assert.Contains(t, msg, "1. constructor app.Flag(bool) failed: argument has the wrong type")
		assert.Contains(t, msg, "2. constructor app.Flag(string) panicked: boom")
	})

	t.Run("stalled build", func(t *testing.T) {
		err := &UnresolvedDependencyError{
			Unresolved: []string{"left", "right", "repo"},
			Missing:    []string{"ghost"},
			Cycle:      []string{"left", "right"},
			Cause:      ErrPendingDependencies,
		}

		msg := err.Error()
		assert.Contains(t, msg, "unresolved dependencies: left, right, repo")
		assert.Contains(t, msg, "undeclared: ghost")
		assert.Contains(t, msg, "cycle: left -> right -> left")
	})
}

func TestLiteralError(t *testing.T) {
	cause := errors.New("invalid syntax")
	err := &LiteralError{Value: "error.", Type: reflect.TypeFor[int](), Cause: cause}

	assert.Equal(t, `cannot convert "error." to int: invalid syntax`, err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestResolutionError(t *testing.T) {
	tests := []struct {
		name     string
		err      ResolutionError
		contains []string
		excludes []string
	}{
		{
			name:     "no suggestions",
			err:      ResolutionError{BeanID: "mailer", Cause: ErrBeanNotFound, Available: []string{"store"}},
			contains: []string{`bean not found: "mailer"`},
			excludes: []string{"Did you mean"},
		},
		{
			name:     "suggestions",
			err:      ResolutionError{BeanID: "store", Cause: ErrBeanNotFound, Available: []string{"store", "userStore", "Store2", "cache"}},
			contains: []string{"Did you mean", "userStore", "Store2"},
			excludes: []string{"cache"},
		},
		{
			name:     "other cause",
			err:      ResolutionError{Cause: ErrBeanIDEmpty},
			contains: []string{"bean id cannot be empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				assert.Contains(t, msg, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, msg, s)
			}
		})
	}
}

func TestFindSimilarIDs(t *testing.T) {
	available := []string{"a1", "a2", "a3", "a4", "a5", "a6", "b1"}

	assert.Len(t, findSimilarIDs("a", available), 5)
	assert.Nil(t, findSimilarIDs("", available))
	assert.Nil(t, findSimilarIDs("a", nil))
	assert.Equal(t, []string{"b1"}, findSimilarIDs("B", available))
}

func TestFormatType(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{nil, "<nil>"},
		{reflect.TypeFor[int](), "int"},
		{reflect.TypeFor[*gadget](), "*gadget"},
		{reflect.TypeFor[[]gadget](), "[]gadget"},
		{reflect.TypeFor[*int](), "*int"},
		{reflect.TypeFor[[]string](), "[]string"},
		{reflect.TypeFor[map[string]int](), "map[string]int"},
		{reflect.TypeFor[State](), "State"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatType(tt.typ))
		})
	}
}
