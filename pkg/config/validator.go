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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *MockConfig) error {
	if err := cv.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}
	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *MockConfig) error {
	// 1. Unicidade dos ids de regras de falha
	seen := make(map[string]bool)
	for _, r := range cfg.Faults {
		if seen[r.ID] {
			return fmt.Errorf("regra de falha com id duplicado: '%s'", r.ID)
		}
		seen[r.ID] = true
		if !r.NetworkError && r.Status == 0 {
			return fmt.Errorf("regra de falha '%s' precisa de 'status' ou 'network_error'", r.ID)
		}
	}

	// 2. Latências precisam ser durações válidas e não negativas
	for route, raw := range cfg.Mock.LatencyOverrides {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("latência inválida para '%s': %q", route, raw)
		}
		if d < 0 {
			return fmt.Errorf("latência negativa para '%s'", route)
		}
	}

	if cfg.Mock.UpstreamTimeout != "" {
		if _, err := time.ParseDuration(cfg.Mock.UpstreamTimeout); err != nil {
			return fmt.Errorf("upstream_timeout inválido: %q", cfg.Mock.UpstreamTimeout)
		}
	}

	// 3. Regras de métricas devem apontar para definições existentes
	defs := make(map[string]bool)
	for _, d := range cfg.Service.Metrics.Datadog.CustomDefinitions {
		defs[d.ID] = true
	}
	for _, r := range cfg.Service.Metrics.Rules {
		if !defs[r.MetricID] {
			return fmt.Errorf("regra de métrica referencia definição inexistente: '%s'", r.MetricID)
		}
	}
	return nil
}
