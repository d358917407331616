package beans_test

import (
	"testing"

	"github.com/junioryono/beans"
	"github.com/junioryono/beans/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
)

func TestProvideTo(t *testing.T) {
	c := testutil.MustBuild(t, testutil.NewDeclarations().
		Bean("primary", testutil.DataSourceType).Prop("url", "db://primary").
		Bean("replica", testutil.DataSourceType).Prop("url", "db://replica").
		Bean("users", testutil.UserRepositoryType).Ref(0, "primary").
		Build())

	dc := dig.New()
	require.NoError(t, c.ProvideTo(dc))

	type params struct {
		dig.In

		Primary *testutil.DataSource     `name:"primary"`
		Replica *testutil.DataSource     `name:"replica"`
		Users   *testutil.UserRepository `name:"users"`
	}

	err := dc.Invoke(func(p params) {
		assert.Equal(t, "db://primary", p.Primary.URL)
		assert.Equal(t, "db://replica", p.Replica.URL)
		assert.Same(t, p.Primary, p.Users.Source)

		primary, _ := c.Get("primary")
		assert.Same(t, primary, p.Primary)
	})
	require.NoError(t, err)
}

func TestProvideTo_UnnamedLookupFails(t *testing.T) {
	c := testutil.MustBuild(t, testutil.NewDeclarations().Bean("plain", testutil.PlainType).Build())

	dc := dig.New()
	require.NoError(t, c.ProvideTo(dc))

	err := dc.Invoke(func(*testutil.Plain) {})
	assert.Error(t, err, "beans are only provided by name")
}

func TestProvideTo_Errors(t *testing.T) {
	t.Run("nil dig container", func(t *testing.T) {
		c := testutil.MustBuild(t, nil)
		assert.ErrorIs(t, c.ProvideTo(nil), beans.ErrDigContainerNil)
	})

	t.Run("not built", func(t *testing.T) {
		c := beans.NewContainer(testutil.Types())
		assert.ErrorIs(t, c.ProvideTo(dig.New()), beans.ErrContainerNotBuilt)
	})

	t.Run("name already provided", func(t *testing.T) {
		c := testutil.MustBuild(t, testutil.NewDeclarations().Bean("plain", testutil.PlainType).Build())

		dc := dig.New()
		require.NoError(t, dc.Provide(func() *testutil.Plain { return &testutil.Plain{} }, dig.Name("plain")))

		err := c.ProvideTo(dc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"plain"`)
	})
}
