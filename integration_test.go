package beans_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/junioryono/beans"
	"github.com/junioryono/beans/document"
	"github.com/junioryono/beans/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_DocumentToContainer(t *testing.T) {
	for _, name := range []string{"beans.xml", "beans.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := document.ResolveLocation("classpath:"+name, filepath.Join("document", "testdata"))
			decls, err := document.Load(path)
			require.NoError(t, err)

			c := testutil.MustBuild(t, decls)

			svc := testutil.AssertBeanResolvable[*testutil.UserService](t, c, "userService")
			source := testutil.AssertBeanResolvable[*testutil.DataSource](t, c, "dataSource")
			assert.Same(t, source, svc.Repository.Source)
			assert.Equal(t, 3, svc.Retries)
			assert.Equal(t, "hello", svc.Greeting)
			assert.Equal(t, 8, source.PoolSize)
		})
	}
}

func TestIntegration_XMLErrorsKeepTheirKind(t *testing.T) {
	tests := []struct {
		name       string
		xml        string
		config     bool
		unresolved bool
	}{
		{
			name:   "index gap",
			xml:    `<beans><bean id="flag" class="test.Flag"><constructor-arg index="1" value="true"/></bean></beans>`,
			config: true,
		},
		{
			name:   "empty value falls through to missing ref",
			xml:    `<beans><bean id="flag" class="test.Flag"><constructor-arg index="0" value=""/></bean></beans>`,
			config: true,
		},
		{
			name:       "undeclared reference",
			xml:        `<beans><bean id="repo" class="demo.UserRepository"><constructor-arg index="0" ref="db"/></bean></beans>`,
			unresolved: true,
		},
		{
			name:   "bad integer property",
			xml:    `<beans><bean id="widget" class="test.Widget"><property name="number" value="error."/></bean></beans>`,
			config: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := document.DecodeXML(strings.NewReader(tt.xml))
			require.NoError(t, err)

			_, err = testutil.BuildErr(t, decls)
			assert.Equal(t, tt.config, beans.IsConfigInvalid(err), "config: %v", err)
			assert.Equal(t, tt.unresolved, beans.IsUnresolvedDependency(err), "unresolved: %v", err)
		})
	}
}

func TestIntegration_InterleavedGraph(t *testing.T) {
	// Every widget references the plain bean declared last; flags are
	// independent and interleaved with the widgets.
	const n = 40

	b := testutil.NewDeclarations()
	for i := 0; i < n-1; i++ {
		b.Bean(fmt.Sprintf("flag%d", i), testutil.FlagType).Value(0, "true")
		b.Bean(fmt.Sprintf("widget%d", i), testutil.WidgetType).PropRef("owner", "plain")
	}
	b.Bean("plain", testutil.PlainType)

	c := testutil.MustBuild(t, b.Build())

	assert.Len(t, c.IDs(), 2*(n-1)+1)
	plain := testutil.AssertBeanResolvable[*testutil.Plain](t, c, "plain")
	for i := 0; i < n-1; i++ {
		w := testutil.AssertBeanResolvable[*testutil.Widget](t, c, fmt.Sprintf("widget%d", i))
		assert.Same(t, plain, w.Owner())
	}

	order := c.Order()
	assert.Equal(t, "widget0", order[n], "widgets are built in the second pass, after every flag and the plain bean")
}
