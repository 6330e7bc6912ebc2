package intercept

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/engine"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/raywall/fast-mock-toolkit/pkg/metrics"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *engine.MockEngine {
	t.Helper()
	e, err := engine.NewMockEngine(context.Background(), nil, "",
		engine.WithSleeper(&responder.RecordingSleeper{}),
		engine.WithMetrics(&metrics.MemoryProvider{}),
		engine.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)
	return e
}

func TestTransport_Handled(t *testing.T) {
	client := &http.Client{}
	restore := Install(client, newEngine(t), PolicyError, zerolog.Nop())
	defer restore()

	resp, err := client.Get("http://app.local/api/users/1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "200 OK", resp.Status)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var u fixtures.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&u))
	assert.Equal(t, "김철수", u.Name)
	require.NotNil(t, u.Profile)
}

func TestTransport_PostBody(t *testing.T) {
	client := &http.Client{}
	defer Install(client, newEngine(t), PolicyError, zerolog.Nop())()

	resp, err := client.Post("http://app.local/api/users", "application/json", bytes.NewBufferString(`{"name":"Ana"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var apiErr api.Error
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	assert.Equal(t, api.CodeValidation, apiErr.Code)
}

func TestTransport_NetworkError(t *testing.T) {
	client := &http.Client{}
	defer Install(client, newEngine(t), PolicyError, zerolog.Nop())()

	_, err := client.Get("http://app.local/api/network-error")
	require.Error(t, err)
	assert.True(t, errors.Is(err, responder.ErrNetworkFailure))
}

func TestTransport_UnhandledPolicies(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Real", "yes")
		_, _ = w.Write(append([]byte("real:"), body...))
	}))
	defer upstream.Close()

	e := newEngine(t)

	t.Run("error", func(t *testing.T) {
		client := &http.Client{}
		defer Install(client, e, PolicyError, zerolog.Nop())()
		_, err := client.Get(upstream.URL + "/api/comments")
		assert.True(t, errors.Is(err, ErrUnhandledRequest))
	})

	for _, p := range []Policy{PolicyBypass, PolicyWarn} {
		t.Run(string(p), func(t *testing.T) {
			var logs bytes.Buffer
			client := &http.Client{}
			defer Install(client, e, p, zerolog.New(&logs))()

			resp, err := client.Post(upstream.URL+"/api/comments", "text/plain", bytes.NewBufferString("oi"))
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, "real:oi", string(body))
			assert.Equal(t, "yes", resp.Header.Get("X-Real"))

			if p == PolicyWarn {
				assert.Contains(t, logs.String(), "/api/comments")
			} else {
				assert.Zero(t, logs.Len())
			}
		})
	}
}

func TestTransport_HostFilter(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("real:" + r.URL.Path))
	}))
	defer upstream.Close()

	client := &http.Client{Transport: &Transport{
		Engine: newEngine(t),
		Policy: PolicyError,
		Logger: zerolog.Nop(),
		Host:   "api.local",
	}}

	resp, err := client.Get("http://API.local:8080/api/users/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	// rota que o mock atenderia, mas o host não é o configurado
	resp, err = client.Get(upstream.URL + "/api/users/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "real:/api/users/1", string(body))
}

func TestInstall_Restore(t *testing.T) {
	base := &http.Transport{}
	client := &http.Client{Transport: base}
	restore := Install(client, newEngine(t), PolicyWarn, zerolog.Nop())

	tr, ok := client.Transport.(*Transport)
	require.True(t, ok)
	assert.Same(t, base, tr.Base)

	restore()
	assert.Same(t, base, client.Transport)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyWarn, p)

	p, err = ParsePolicy("bypass")
	require.NoError(t, err)
	assert.True(t, p.Forwards())
	assert.False(t, PolicyError.Forwards())

	_, err = ParsePolicy("ignore")
	assert.Error(t, err)
}
