package testutil

import (
	"io"
	"testing"

	"github.com/junioryono/beans"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewLogger returns a silent logger and a hook recording its entries.
func NewLogger() (*logrus.Logger, *test.Hook) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	return logger, test.NewLocal(logger)
}

// MustBuild builds a container over the fixture types and fails the test on
// any error.
func MustBuild(t *testing.T, decls []beans.Declaration) *beans.Container {
	t.Helper()
	logger, _ := NewLogger()
	c := beans.NewContainer(Types(), beans.WithLogger(logger))
	require.NoError(t, c.Build(decls), "failed to build container")
	return c
}

// BuildErr builds a container over the fixture types and returns the error,
// failing the test if the build succeeds.
func BuildErr(t *testing.T, decls []beans.Declaration) (*beans.Container, error) {
	t.Helper()
	logger, _ := NewLogger()
	c := beans.NewContainer(Types(), beans.WithLogger(logger))
	err := c.Build(decls)
	require.Error(t, err, "expected build to fail")
	return c, err
}

// AssertBeanResolvable checks that id resolves to a non-nil T.
func AssertBeanResolvable[T any](t *testing.T, c *beans.Container, id string) T {
	t.Helper()
	bean, err := beans.Resolve[T](c, id)
	require.NoError(t, err, "failed to resolve bean %q", id)
	require.NotNil(t, bean, "resolved bean %q is nil", id)
	return bean
}

// AssertBeanNotFound checks that id is not available.
func AssertBeanNotFound(t *testing.T, c *beans.Container, id string) {
	t.Helper()
	_, ok := c.Get(id)
	assert.False(t, ok, "bean %q should not be available", id)
	_, err := beans.Resolve[any](c, id)
	assert.True(t, beans.IsNotFound(err), "expected not found error, got: %v", err)
}

// AssertConfigInvalid checks err is ErrConfigInvalid and, when cause is
// non-nil, that it wraps cause.
func AssertConfigInvalid(t *testing.T, err error, cause error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, beans.IsConfigInvalid(err), "expected ErrConfigInvalid, got: %v", err)
	if cause != nil {
		assert.ErrorIs(t, err, cause)
	}
}

// AssertUnresolvedDependency checks err is ErrUnresolvedDependency and, when
// cause is non-nil, that it wraps cause.
func AssertUnresolvedDependency(t *testing.T, err error, cause error) *beans.UnresolvedDependencyError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, beans.IsUnresolvedDependency(err), "expected ErrUnresolvedDependency, got: %v", err)
	if cause != nil {
		assert.ErrorIs(t, err, cause)
	}

	var ue *beans.UnresolvedDependencyError
	require.ErrorAs(t, err, &ue)
	return ue
}

// AssertContainerEmpty checks a failed build published nothing.
func AssertContainerEmpty(t *testing.T, c *beans.Container) {
	t.Helper()
	assert.False(t, c.IsBuilt())
	assert.Empty(t, c.IDs())
	assert.Empty(t, c.Beans())
}
