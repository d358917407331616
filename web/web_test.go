package web_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/junioryono/beans"
	"github.com/junioryono/beans/internal/testutil"
	"github.com/junioryono/beans/web"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, build bool) (*httptest.Server, *beans.Container) {
	t.Helper()

	logger, _ := testutil.NewLogger()
	c := beans.NewContainer(testutil.Types(), beans.WithLogger(logger), beans.WithID("test-container"))
	if build {
		require.NoError(t, c.Build(testutil.LayeredDeclarations()))
	}

	srv := httptest.NewServer(web.Handler(c, logger))
	t.Cleanup(srv.Close)
	return srv, c
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("built", func(t *testing.T) {
		t.Parallel()
		srv, _ := newServer(t, true)

		resp, body := get(t, srv.URL+"/healthz")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"status":"ok"`)
		assert.Contains(t, body, `"container":"test-container"`)
	})

	t.Run("not built", func(t *testing.T) {
		t.Parallel()
		srv, _ := newServer(t, false)

		resp, _ := get(t, srv.URL+"/healthz")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestListBeans(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t, true)

	resp, body := get(t, srv.URL+"/beans")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

	var infos []beans.BeanInfo
	require.NoError(t, json.Unmarshal([]byte(body), &infos))
	require.Len(t, infos, 3)

	assert.Equal(t, "userService", infos[0].ID)
	assert.Equal(t, testutil.UserServiceType, infos[0].Type)
	assert.Equal(t, []string{"userRepository"}, infos[0].Dependencies)
	assert.Equal(t, beans.Ready, infos[0].State)
	assert.Empty(t, infos[0].Pending)

	assert.Equal(t, "userRepository", infos[1].ID)
	assert.Equal(t, "dataSource", infos[2].ID)
	assert.Equal(t, []string{}, infos[2].Dependencies)
}

func TestGetBean(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t, true)

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantBody   string
	}{
		{name: "declared", id: "dataSource", wantStatus: http.StatusOK, wantBody: `"type":"demo.DataSource"`},
		{name: "undeclared", id: "mailer", wantStatus: http.StatusNotFound, wantBody: `"error"`},
		{name: "lists available ids", id: "userservice", wantStatus: http.StatusNotFound, wantBody: `"available":["dataSource","userRepository","userService"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, body := get(t, srv.URL+"/beans/"+tt.id)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, body, tt.wantBody)
		})
	}
}

func TestGraph(t *testing.T) {
	t.Parallel()

	t.Run("built", func(t *testing.T) {
		t.Parallel()
		srv, _ := newServer(t, true)

		resp, body := get(t, srv.URL+"/beans.dot")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, strings.HasPrefix(body, "digraph"))
		assert.Contains(t, body, `"userService" -> "userRepository"`)
	})

	t.Run("not built", func(t *testing.T) {
		t.Parallel()
		srv, _ := newServer(t, false)

		resp, body := get(t, srv.URL+"/beans.dot")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Contains(t, body, beans.ErrContainerNotBuilt.Error())
	})
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	logger, hook := testutil.NewLogger()
	c := beans.NewContainer(testutil.Types(), beans.WithLogger(logger))
	require.NoError(t, c.Build(nil))

	rec := httptest.NewRecorder()
	web.Handler(c, logger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/beans/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var served *logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == "request served" {
			served = entry
		}
	}
	require.NotNil(t, served)
	assert.Equal(t, http.MethodGet, served.Data["method"])
	assert.Equal(t, "/beans/missing", served.Data["path"])
	assert.Equal(t, http.StatusNotFound, served.Data["status"])
	assert.NotEmpty(t, served.Data["request_id"])
}
