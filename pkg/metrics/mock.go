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

import "sync"

// Call é uma chamada registrada pelo MemoryProvider.
type Call struct {
	Type  MetricType
	Name  string
	Value float64
	Tags  []string
}

// MemoryProvider guarda as métricas em memória. Útil em testes e no modo
// local sem agente Datadog.
type MemoryProvider struct {
	mu    sync.Mutex
	calls []Call
}

func (m *MemoryProvider) record(t MetricType, name string, v float64, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Type: t, Name: name, Value: v, Tags: append([]string(nil), tags...)})
	return nil
}

func (m *MemoryProvider) Count(name string, v float64, tags []string) error {
	return m.record(TypeCount, name, v, tags)
}

func (m *MemoryProvider) Gauge(name string, v float64, tags []string) error {
	return m.record(TypeGauge, name, v, tags)
}

func (m *MemoryProvider) Histogram(name string, v float64, tags []string) error {
	return m.record(TypeHistogram, name, v, tags)
}

// Calls devolve uma cópia das chamadas registradas.
func (m *MemoryProvider) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Named filtra as chamadas por nome de métrica.
func (m *MemoryProvider) Named(name string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
