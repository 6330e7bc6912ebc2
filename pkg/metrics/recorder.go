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

import (
	"strconv"
	"time"

	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/rs/zerolog"
)

// Outcome resume uma requisição atendida pelo mock.
type Outcome struct {
	Route   string
	Method  string
	Status  int
	Delay   time.Duration
	FaultID string
	// Vars são as variáveis CEL da requisição, já com o desfecho.
	Vars map[string]interface{}
}

// Recorder emite as métricas padrão e as customizadas de cada requisição.
// Falhas de envio são apenas logadas.
type Recorder struct {
	provider  Provider
	processor *Processor
	rules     []config.MetricRegistrationRule
	logger    zerolog.Logger
}

func NewRecorder(provider Provider, processor *Processor, list []config.MetricRegistrationRule, logger zerolog.Logger) *Recorder {
	return &Recorder{provider: provider, processor: processor, rules: list, logger: logger}
}

// Record registra uma requisição roteada.
func (r *Recorder) Record(o Outcome) {
	if r == nil || r.provider == nil {
		return
	}
	tags := []string{
		"route:" + o.Route,
		"method:" + o.Method,
		"status:" + strconv.Itoa(o.Status),
	}
	r.send(r.provider.Count(MetricRequests, 1, tags))
	r.send(r.provider.Histogram(MetricDelay, float64(o.Delay.Milliseconds()), tags))
	if o.FaultID != "" {
		r.send(r.provider.Count(MetricFaults, 1, append(tags, "fault:"+o.FaultID)))
	}

	if r.processor != nil && len(r.rules) > 0 && o.Vars != nil {
		if err := r.processor.ProcessRules(r.rules, o.Vars); err != nil {
			r.logger.Warn().Err(err).Str("route", o.Route).Msg("falha ao registrar métricas customizadas")
		}
	}
}

// RecordUnhandled conta requisições sem rota.
func (r *Recorder) RecordUnhandled(method, policy string) {
	if r == nil || r.provider == nil {
		return
	}
	r.send(r.provider.Count(MetricUnhandled, 1, []string{"method:" + method, "policy:" + policy}))
}

func (r *Recorder) send(err error) {
	if err != nil {
		r.logger.Debug().Err(err).Msg("falha ao enviar métrica")
	}
}
