// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package config

import (
	"time"

	"github.com/raywall/fast-mock-toolkit/pkg/faults"
)

// MockConfig representa a estrutura raiz do arquivo YAML do mock.
type MockConfig struct {
	Version string         `yaml:"version" validate:"required"`
	Service ServiceDetails `yaml:"service" validate:"required"`
	Mock    MockConf       `yaml:"mock"`
	Seed    SeedConf       `yaml:"seed"`
	// Faults nulo usa as regras padrão; uma lista vazia desliga todas.
	Faults  []faults.Rule `yaml:"faults" validate:"dive"`
	GraphQL GraphQLConf   `yaml:"graphql"`
}

// ServiceDetails contém os metadados e configurações de runtime do serviço.
type ServiceDetails struct {
	Name    string      `yaml:"name" validate:"required,hostname_rfc1123"`
	Runtime string      `yaml:"runtime" validate:"required,oneof=local lambda"`
	Port    int         `yaml:"port" env:"PORT" validate:"required_if=Runtime local,gte=0,max=65535"`
	Logging LoggingConf `yaml:"logging"`
	Metrics MetricsConf `yaml:"metrics"`
}

// MockConf controla o comportamento do mock.
type MockConf struct {
	// DeleteMutates ausente equivale a true.
	DeleteMutates *bool `yaml:"delete_mutates"`
	// DisableLatency zera todas as latências simuladas.
	DisableLatency bool `yaml:"disable_latency" env:"MOCK_DISABLE_LATENCY"`
	// LatencyOverrides substitui a latência de uma rota (ex: users.list: 50ms).
	LatencyOverrides map[string]string `yaml:"latency_overrides"`
	UnhandledPolicy  string            `yaml:"unhandled_policy" env:"MOCK_UNHANDLED_POLICY" validate:"omitempty,oneof=bypass warn error"`
	// Upstream recebe as requisições não tratadas nas políticas bypass e warn.
	Upstream        string            `yaml:"upstream" env:"MOCK_UPSTREAM" validate:"omitempty,url"`
	UpstreamTimeout string            `yaml:"upstream_timeout"`
	ResponseHeaders map[string]string `yaml:"response_headers"`
	DisableAdmin    bool              `yaml:"disable_admin"`
	RateLimit       RateLimitConf     `yaml:"rate_limit"`
	// ResetQueue é a URL de uma fila SQS cujas mensagens reiniciam o estado.
	ResetQueue string `yaml:"reset_queue" env:"MOCK_RESET_QUEUE"`
}

type RateLimitConf struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps" validate:"required_if=Enabled true,gte=0"`
	Burst   int     `yaml:"burst" validate:"required_if=Enabled true,gte=0"`
}

// SeedConf aponta a origem da massa de dados. Vazio usa a semente embutida.
// Esquemas aceitos: arquivo local, s3://, dynamodb://, redis://, postgres://.
type SeedConf struct {
	Source string `yaml:"source" env:"MOCK_SEED_SOURCE"`
}

type GraphQLConf struct {
	Enabled bool   `yaml:"enabled"`
	Route   string `yaml:"route" validate:"omitempty,startswith=/"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
	// Rules registra métricas customizadas avaliadas a cada requisição.
	Rules []MetricRegistrationRule `yaml:"rules" validate:"dive"`
}

type DatadogConf struct {
	Enabled           bool                     `yaml:"enabled" env:"DD_ENABLED"`
	Addr              string                   `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace         string                   `yaml:"namespace"`
	CustomDefinitions []CustomMetricDefinition `yaml:"custom_definitions" validate:"dive"`
}

type CustomMetricDefinition struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type" validate:"oneof=count gauge histogram"`
}

type MetricRegistrationRule struct {
	MetricID string            `yaml:"metric_id" validate:"required"`
	When     string            `yaml:"when"`
	Value    string            `yaml:"value" validate:"required"`
	Tags     map[string]string `yaml:"tags"`
}

// Defaults de runtime.
const (
	DefaultPolicy       = "warn"
	DefaultGraphQLRoute = "/api/graphql"
	defaultUpstreamWait = 10 * time.Second
)

// DeleteMutatesOrDefault aplica o default (true) quando o campo é omitido.
func (m MockConf) DeleteMutatesOrDefault() bool {
	if m.DeleteMutates == nil {
		return true
	}
	return *m.DeleteMutates
}

// Policy devolve a política de requisições não tratadas.
func (m MockConf) Policy() string {
	if m.UnhandledPolicy == "" {
		return DefaultPolicy
	}
	return m.UnhandledPolicy
}

// GetUpstreamTimeout converte o timeout do upstream (padrão 10s).
func (m MockConf) GetUpstreamTimeout() time.Duration {
	d, err := time.ParseDuration(m.UpstreamTimeout)
	if err != nil || d <= 0 {
		return defaultUpstreamWait
	}
	return d
}

// Latencies converte os overrides já validados.
func (m MockConf) Latencies() map[string]time.Duration {
	out := make(map[string]time.Duration, len(m.LatencyOverrides))
	for route, raw := range m.LatencyOverrides {
		if d, err := time.ParseDuration(raw); err == nil {
			out[route] = d
		}
	}
	return out
}

// FaultRules devolve as regras efetivas.
func (c *MockConfig) FaultRules() []faults.Rule {
	if c.Faults == nil {
		return faults.DefaultRules()
	}
	return c.Faults
}

func (g GraphQLConf) RouteOrDefault() string {
	if g.Route == "" {
		return DefaultGraphQLRoute
	}
	return g.Route
}

// Default devolve uma configuração local mínima, usada quando nenhum
// arquivo é informado.
func Default() *MockConfig {
	return &MockConfig{
		Version: "1.0",
		Service: ServiceDetails{
			Name:    "fast-mock",
			Runtime: "local",
			Port:    8080,
			Logging: LoggingConf{Enabled: true, Level: "info", Format: "json"},
		},
		GraphQL: GraphQLConf{Enabled: true},
	}
}
