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
package engine

import (
	"fmt"
	"sort"

	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/raywall/fast-mock-toolkit/pkg/graphql"
	"github.com/raywall/fast-mock-toolkit/pkg/handlers"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
	"github.com/raywall/fast-mock-toolkit/pkg/router"
	"github.com/raywall/fast-mock-toolkit/pkg/rules"
)

// ValidationReport contém o resultado detalhado da análise.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Analyze inspeciona uma configuração já validada estruturalmente: compila
// as expressões CEL e confere se as rotas citadas existem.
func Analyze(cfg *config.MockConfig) (*ValidationReport, error) {
	report := &ValidationReport{Valid: true, Errors: []string{}, Warnings: []string{}}

	rm, err := rules.NewRuleManager()
	if err != nil {
		return nil, fmt.Errorf("falha interna ao iniciar analisador de regras: %w", err)
	}

	known := knownRoutes(cfg)

	for _, rule := range cfg.FaultRules() {
		if rule.When != "" {
			if _, err := rm.CompileBool(rule.When); err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("Faults[%s]: Erro de sintaxe CEL: %v", rule.ID, err))
			}
		}
		for _, name := range rule.Routes {
			if !known[name] {
				report.Warnings = append(report.Warnings, fmt.Sprintf("Faults[%s]: rota desconhecida %q", rule.ID, name))
			}
		}
	}

	overrides := make([]string, 0, len(cfg.Mock.LatencyOverrides))
	for name := range cfg.Mock.LatencyOverrides {
		overrides = append(overrides, name)
	}
	sort.Strings(overrides)
	for _, name := range overrides {
		if !known[name] {
			report.Warnings = append(report.Warnings, fmt.Sprintf("Mock.LatencyOverrides: rota desconhecida %q", name))
		}
	}

	if _, err := responder.NewSynthesizer(nil, rm, cfg.Mock.ResponseHeaders); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Mock.ResponseHeaders: %v", err))
	}

	for _, rule := range cfg.Service.Metrics.Rules {
		if rule.When != "" {
			if _, err := rm.CompileBool(rule.When); err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("Metrics.Rule[%s]: Erro na condição: %v", rule.MetricID, err))
			}
		}
		if _, err := rm.CompileProgram(rule.Value); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Metrics.Rule[%s]: Erro no valor: %v", rule.MetricID, err))
		}
	}

	if cfg.Mock.Upstream == "" && cfg.Mock.Policy() != "error" {
		report.Warnings = append(report.Warnings, "Mock.Upstream vazio: requisições não tratadas recebem 404 no servidor HTTP")
	}

	if len(report.Errors) > 0 {
		report.Valid = false
	}
	return report, nil
}

// knownRoutes monta o conjunto de nomes de rota que a configuração registra.
func knownRoutes(cfg *config.MockConfig) map[string]bool {
	r := router.New()
	_ = handlers.New(fixtures.MustNewStore(fixtures.Dataset{}), handlers.DefaultOptions()).Register(r)

	known := map[string]bool{"*": true}
	for _, route := range r.Routes() {
		known[route.Name] = true
	}
	if cfg.GraphQL.Enabled {
		known[graphql.RouteName] = true
	}
	if !cfg.Mock.DisableAdmin {
		known[RouteAdminReset] = true
		known[RouteAdminRoutes] = true
	}
	return known
}
