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
	"fmt"
	"sort"
	"strconv"

	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/raywall/fast-mock-toolkit/pkg/rules"
)

// Processor avalia as regras de métricas customizadas do YAML contra as
// variáveis de cada requisição atendida.
type Processor struct {
	defs     map[string]MetricDefinition
	provider Provider
	rm       *rules.RuleManager
}

func NewProcessor(defs []config.CustomMetricDefinition, provider Provider, rm *rules.RuleManager) *Processor {
	byID := make(map[string]MetricDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = MetricDefinition{Name: d.Name, Type: MetricType(d.Type)}
	}
	return &Processor{defs: byID, provider: provider, rm: rm}
}

// ProcessRules para na primeira regra que falhar.
func (p *Processor) ProcessRules(list []config.MetricRegistrationRule, vars map[string]interface{}) error {
	for _, rule := range list {
		if err := p.apply(rule, vars); err != nil {
			return fmt.Errorf("métrica %s: %w", rule.MetricID, err)
		}
	}
	return nil
}

func (p *Processor) apply(rule config.MetricRegistrationRule, vars map[string]interface{}) error {
	def, ok := p.defs[rule.MetricID]
	if !ok {
		return fmt.Errorf("definição inexistente")
	}

	matched, err := p.rm.EvaluateBool(rule.When, vars)
	if err != nil {
		return fmt.Errorf("condição: %w", err)
	}
	if !matched {
		return nil
	}

	value, err := p.measure(rule.Value, vars)
	if err != nil {
		return err
	}
	tags, err := p.tags(rule.Tags, vars)
	if err != nil {
		return err
	}
	return def.Emit(p.provider, value, tags)
}

func (p *Processor) measure(expr string, vars map[string]interface{}) (float64, error) {
	raw, err := p.rm.EvaluateValue(expr, vars)
	if err != nil {
		return 0, fmt.Errorf("valor: %w", err)
	}
	v, err := numeric(raw)
	if err != nil {
		return 0, fmt.Errorf("valor inválido: %w", err)
	}
	return v, nil
}

// tags devolve "chave:valor" em ordem alfabética de chave.
func (p *Processor) tags(exprs map[string]string, vars map[string]interface{}) ([]string, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(exprs))
	for k := range exprs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		v, err := p.rm.EvaluateValue(exprs[k], vars)
		if err != nil {
			return nil, fmt.Errorf("tag %s: %w", k, err)
		}
		out = append(out, fmt.Sprintf("%s:%v", k, v))
	}
	return out, nil
}

// numeric aceita os tipos que o CEL devolve para números, bool e strings
// numéricas.
func numeric(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("tipo não numérico %T", v)
}
