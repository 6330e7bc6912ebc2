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
package metrics

import "fmt"

// Métricas padrão emitidas pelo Recorder.
const (
	MetricRequests  = "mock.requests"
	MetricDelay     = "mock.simulated_delay_ms"
	MetricFaults    = "mock.faults"
	MetricUnhandled = "mock.unhandled"
)

// Provider é o backend de métricas: statsd em produção, memória nos testes.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

type MetricType string

const (
	TypeCount     MetricType = "count"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// MetricDefinition liga o id usado nas regras ao nome publicado.
type MetricDefinition struct {
	Name string
	Type MetricType
}

// Emit envia value pelo método do provider que corresponde ao tipo.
func (d MetricDefinition) Emit(p Provider, value float64, tags []string) error {
	switch d.Type {
	case TypeCount:
		return p.Count(d.Name, value, tags)
	case TypeGauge:
		return p.Gauge(d.Name, value, tags)
	case TypeHistogram:
		return p.Histogram(d.Name, value, tags)
	}
	return fmt.Errorf("tipo de métrica desconhecido: %s", d.Type)
}
