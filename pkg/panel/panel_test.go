package panel

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/raywall/fast-mock-toolkit/pkg/client"
	"github.com/raywall/fast-mock-toolkit/pkg/engine"
	"github.com/raywall/fast-mock-toolkit/pkg/intercept"
	"github.com/raywall/fast-mock-toolkit/pkg/metrics"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanel(t *testing.T) (*Panel, *responder.RecordingSleeper) {
	t.Helper()
	sleeper := &responder.RecordingSleeper{}
	e, err := engine.NewMockEngine(context.Background(), nil, "",
		engine.WithSleeper(sleeper),
		engine.WithMetrics(&metrics.MemoryProvider{}),
		engine.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	httpClient := &http.Client{}
	t.Cleanup(intercept.Install(httpClient, e, intercept.PolicyError, zerolog.Nop()))
	return New(client.New("http://app.local", httpClient), zerolog.Nop()), sleeper
}

func statuses(t *testing.T, results []Result) []int {
	t.Helper()
	out := make([]int, 0, len(results))
	for _, r := range results {
		s, ok := r.Outcome.(Success)
		if !ok {
			out = append(out, 0)
			continue
		}
		out = append(out, s.Status)
	}
	return out
}

func TestPanel_Basic(t *testing.T) {
	p, _ := newPanel(t)

	results, err := p.Run(context.Background(), SuiteBasic)
	require.NoError(t, err)
	assert.Equal(t, []int{200, 200, 200}, statuses(t, results))

	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(results[2].Outcome.(Success).Body, &user))
	assert.Equal(t, "김철수", user["name"])
}

func TestPanel_ErrorsClassifiesNetworkFailure(t *testing.T) {
	p, _ := newPanel(t)

	results, err := p.Run(context.Background(), SuiteErrors)
	require.NoError(t, err)
	require.Len(t, results, 3)

	notFound := results[0].Outcome.(Success)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, "Not Found", notFound.StatusText)

	failure, ok := results[1].Outcome.(Failure)
	require.True(t, ok)
	assert.ErrorIs(t, failure.Err, responder.ErrNetworkFailure)
	assert.False(t, results[1].Succeeded())

	serverErr := results[2].Outcome.(Success)
	assert.Equal(t, http.StatusInternalServerError, serverErr.Status)
	assert.Equal(t, "Internal Server Error", serverErr.StatusText)
}

func TestPanel_CRUDAndAdvanced(t *testing.T) {
	p, _ := newPanel(t)
	ctx := context.Background()

	crud, err := p.Run(ctx, SuiteCRUD)
	require.NoError(t, err)
	assert.Equal(t, []int{201, 400, 409}, statuses(t, crud))

	adv, err := p.Run(ctx, SuiteAdvanced)
	require.NoError(t, err)
	assert.Equal(t, []int{200, 200, 200}, statuses(t, adv))
	assert.JSONEq(t, `[]`, string(adv[2].Outcome.(Success).Body))
}

func TestPanel_SlowUsesSimulatedDelay(t *testing.T) {
	p, sleeper := newPanel(t)

	results, err := p.Run(context.Background(), SuiteSlow)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Succeeded())
	assert.Equal(t, int64(3000), sleeper.Last().Milliseconds())
}

func TestPanel_AccumulateAndClear(t *testing.T) {
	p, _ := newPanel(t)

	all, err := p.RunAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 13)
	assert.Len(t, p.Results(), 13)

	p.Clear()
	assert.Empty(t, p.Results())
}

func TestPanel_UnknownSuite(t *testing.T) {
	p, _ := newPanel(t)
	_, err := p.Run(context.Background(), Suite("nope"))
	assert.Error(t, err)

	_, err = ParseSuite("nope")
	assert.Error(t, err)

	suites, err := ParseSuite("all")
	require.NoError(t, err)
	assert.Equal(t, Suites(), suites)
}

func TestFailure_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Result{Suite: SuiteErrors, Name: "x", Outcome: Failure{Err: responder.ErrNetworkFailure}})
	require.NoError(t, err)
	assert.Contains(t, string(data), responder.ErrNetworkFailure.Error())
}
