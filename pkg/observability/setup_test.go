package observability

import (
	"testing"

	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStatsd struct{ mock.Mock }

func (m *mockStatsd) Count(name string, value int64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Gauge(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Histogram(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func TestSetupMetrics(t *testing.T) {
	t.Run("Desabilitado devolve Noop", func(t *testing.T) {
		provider, err := SetupMetrics("mock", config.MetricsConf{})
		require.NoError(t, err)
		assert.IsType(t, &NoopProvider{}, provider)
	})

	t.Run("Habilitado devolve Datadog", func(t *testing.T) {
		cfg := config.MetricsConf{Datadog: config.DatadogConf{Enabled: true, Addr: "localhost:8125"}}
		provider, err := SetupMetrics("mock", cfg)
		require.NoError(t, err)
		assert.IsType(t, &DatadogProvider{}, provider)
	})
}

func TestDatadogProvider_GlobalTags(t *testing.T) {
	client := new(mockStatsd)
	client.On("Count", "mock.requests", int64(1), []string{"service:mock", "route:users.list"}, float64(1)).Return(nil)
	client.On("Histogram", "mock.simulated_delay_ms", float64(500), []string{"service:mock"}, float64(1)).Return(nil)

	p := NewDatadogProvider(client, "service:mock")
	require.NoError(t, p.Count("mock.requests", 1, []string{"route:users.list"}))
	require.NoError(t, p.Histogram("mock.simulated_delay_ms", 500, nil))
	client.AssertExpectations(t)
}
