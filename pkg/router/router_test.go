package router

import (
	"context"
	"testing"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *api.Request) api.Result { return api.OK(nil, 0) }

func newTestRouter(t *testing.T) *Router {
	r := New()
	require.NoError(t, r.Handle("users.list", "GET", "/api/users", noop))
	require.NoError(t, r.Handle("users.search", "GET", "/api/users/search", noop))
	require.NoError(t, r.Handle("users.get", "GET", "/api/users/:id", noop))
	require.NoError(t, r.Handle("users.update", "PUT", "/api/users/:id", noop))
	return r
}

func TestToMuxPattern(t *testing.T) {
	assert.Equal(t, "/api/users/{id}", ToMuxPattern("/api/users/:id"))
	assert.Equal(t, "/a/{x}/b/{y}", ToMuxPattern("/a/:x/b/:y"))
	assert.Equal(t, "/api/users", ToMuxPattern("/api/users"))
}

func TestRouter_Match(t *testing.T) {
	r := newTestRouter(t)

	t.Run("rota estática vence o parâmetro", func(t *testing.T) {
		m, err := r.Match("GET", "/api/users/search", "q=%EA%B9%80")
		require.NoError(t, err)
		assert.Equal(t, "users.search", m.Route.Name)
		assert.Equal(t, "김", m.Query.Get("q"))
	})

	t.Run("extrai parâmetros de path", func(t *testing.T) {
		m, err := r.Match("get", "/api/users/42", "")
		require.NoError(t, err)
		assert.Equal(t, "users.get", m.Route.Name)
		assert.Equal(t, "42", m.Params["id"])
	})

	t.Run("método diferente no mesmo path", func(t *testing.T) {
		m, err := r.Match("PUT", "/api/users/7", "")
		require.NoError(t, err)
		assert.Equal(t, "users.update", m.Route.Name)
	})

	t.Run("método não permitido", func(t *testing.T) {
		_, err := r.Match("DELETE", "/api/users", "")
		assert.ErrorIs(t, err, ErrMethodNotAllowed)
	})

	t.Run("sem rota", func(t *testing.T) {
		_, err := r.Match("GET", "/api/unknown", "")
		assert.ErrorIs(t, err, ErrNoRoute)
	})
}

func TestRouter_HandleDuplicate(t *testing.T) {
	r := newTestRouter(t)

	err := r.Handle("users.other", "GET", "/api/users/:id", noop)
	assert.ErrorIs(t, err, ErrDuplicateRoute)

	err = r.Handle("users.get", "POST", "/api/other", noop)
	assert.ErrorIs(t, err, ErrDuplicateRoute)

	assert.Panics(t, func() { r.MustHandle("users.list", "GET", "/api/users", noop) })
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(t)

	routes := r.Routes()
	require.Len(t, routes, 4)
	assert.Equal(t, "users.list", routes[0].Name)
	assert.Equal(t, "/api/users/:id", routes[2].Pattern)

	rt, ok := r.Lookup("users.update")
	require.True(t, ok)
	assert.Equal(t, "PUT", rt.Method)
}
