package metrics

import (
	"testing"
	"time"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/raywall/fast-mock-toolkit/pkg/rules"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVars() map[string]interface{} {
	req := &api.Request{Route: "events.create", Method: "POST", Path: "/api/events", Body: []byte(`{"category":"회의"}`)}
	return rules.WithResponse(rules.RequestVars(req), 409, 0, "")
}

func TestProcessor_ProcessRules(t *testing.T) {
	rm, _ := rules.NewRuleManager()
	provider := &MemoryProvider{}

	defs := []config.CustomMetricDefinition{
		{ID: "conflitos", Name: "mock.events.conflicts", Type: "count"},
		{ID: "atraso", Name: "mock.delay", Type: "gauge"},
	}
	processor := NewProcessor(defs, provider, rm)

	t.Run("Count com condição e tags dinâmicas", func(t *testing.T) {
		err := processor.ProcessRules([]config.MetricRegistrationRule{{
			MetricID: "conflitos",
			When:     "route == 'events.create' && status == 409",
			Value:    "1",
			Tags:     map[string]string{"category": "body.category"},
		}}, testVars())
		require.NoError(t, err)

		calls := provider.Named("mock.events.conflicts")
		require.Len(t, calls, 1)
		assert.Equal(t, TypeCount, calls[0].Type)
		assert.Equal(t, []string{"category:회의"}, calls[0].Tags)
	})

	t.Run("Condição falsa não registra", func(t *testing.T) {
		err := processor.ProcessRules([]config.MetricRegistrationRule{{
			MetricID: "atraso", When: "status == 200", Value: "delay_ms",
		}}, testVars())
		require.NoError(t, err)
		assert.Empty(t, provider.Named("mock.delay"))
	})

	t.Run("Métrica não definida", func(t *testing.T) {
		err := processor.ProcessRules([]config.MetricRegistrationRule{{MetricID: "x", Value: "1"}}, testVars())
		assert.Error(t, err)
	})

	t.Run("Valor não numérico", func(t *testing.T) {
		err := processor.ProcessRules([]config.MetricRegistrationRule{{MetricID: "atraso", Value: "['a']"}}, testVars())
		assert.Error(t, err)
	})
}

func TestRecorder_Record(t *testing.T) {
	provider := &MemoryProvider{}
	rec := NewRecorder(provider, nil, nil, zerolog.Nop())

	rec.Record(Outcome{Route: "users.get", Method: "GET", Status: 404, Delay: 300 * time.Millisecond, FaultID: "user-999-not-found"})
	rec.RecordUnhandled("GET", "warn")

	reqs := provider.Named(MetricRequests)
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Tags, "status:404")

	delay := provider.Named(MetricDelay)
	require.Len(t, delay, 1)
	assert.Equal(t, float64(300), delay[0].Value)

	assert.Len(t, provider.Named(MetricFaults), 1)
	assert.Len(t, provider.Named(MetricUnhandled), 1)

	var nilRec *Recorder
	assert.NotPanics(t, func() { nilRec.Record(Outcome{}) })
}
