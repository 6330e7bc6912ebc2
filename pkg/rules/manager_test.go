package rules

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVars() map[string]interface{} {
	req := &api.Request{
		Route:  "users.create",
		Method: "POST",
		Path:   "/api/users",
		Params: map[string]string{"id": "999"},
		Query:  url.Values{"q": {"김"}},
		Header: http.Header{"X-Test": {"1"}},
		Body:   []byte(`{"email":"kim@example.com","age":20}`),
	}
	return RequestVars(req)
}

func TestEvaluateBool(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)
	vars := sampleVars()

	t.Run("condição verdadeira", func(t *testing.T) {
		ok, err := rm.EvaluateBool("has(body.email) && body.email == 'kim@example.com'", vars)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("parâmetros e query", func(t *testing.T) {
		ok, err := rm.EvaluateBool("params.id == '999' && query.q == '김' && method == 'POST'", vars)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expressão vazia aprova", func(t *testing.T) {
		ok, err := rm.EvaluateBool("", vars)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("campo ausente no corpo", func(t *testing.T) {
		ok, err := rm.EvaluateBool("has(body.name)", vars)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCompileBool(t *testing.T) {
	rm, _ := NewRuleManager()

	_, err := rm.CompileBool("method == ")
	assert.Error(t, err, "sintaxe inválida deveria falhar")

	_, err = rm.CompileBool("path + 'x'")
	assert.Error(t, err, "expressão string não é condição")

	_, err = rm.CompileBool("route == 'users.get'")
	assert.NoError(t, err)
}

func TestEvaluateValue(t *testing.T) {
	rm, _ := NewRuleManager()
	vars := WithResponse(sampleVars(), 409, 800, "duplicate-email")

	res, err := rm.EvaluateValue("delay_ms * 2", vars)
	require.NoError(t, err)
	assert.Equal(t, int64(1600), res)

	res, err = rm.EvaluateValue("fault", vars)
	require.NoError(t, err)
	assert.Equal(t, "duplicate-email", res)

	ok, err := rm.EvaluateBool("status >= 400", vars)
	require.NoError(t, err)
	assert.True(t, ok)
}
