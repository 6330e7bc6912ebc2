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
package faults

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/rules"
	"github.com/rs/zerolog"
)

// AnyRoute faz a regra valer para todas as rotas.
const AnyRoute = "*"

// Rule força um desfecho quando a condição CEL é satisfeita.
type Rule struct {
	ID      string   `yaml:"id" json:"id" validate:"required"`
	Routes  []string `yaml:"routes" json:"routes" validate:"required,min=1"`
	When    string   `yaml:"when" json:"when"`
	Status  int      `yaml:"status" json:"status" validate:"omitempty,min=100,max=599"`
	Code    string   `yaml:"code" json:"code"`
	Message string   `yaml:"message" json:"message"`
	DelayMs int      `yaml:"delay_ms" json:"delay_ms" validate:"min=0"`
	// NetworkError simula queda de transporte; Status é ignorado.
	NetworkError bool `yaml:"network_error" json:"network_error"`
}

// Result converte a regra no resultado que substitui o handler.
func (r Rule) Result() api.Result {
	delay := time.Duration(r.DelayMs) * time.Millisecond
	if r.NetworkError {
		return api.NetworkError(delay)
	}
	status := r.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	code := r.Code
	if code == "" {
		code = string(api.CodeInternal)
	}
	msg := r.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	return api.Fail(api.NewError(status, api.Code(code), msg), delay)
}

func (r Rule) appliesTo(route string) bool {
	for _, rt := range r.Routes {
		if rt == AnyRoute || rt == route {
			return true
		}
	}
	return false
}

// DefaultRules reproduz os cenários de erro clássicos do mock: o id 999 como
// usuário inexistente e kim@example.com como email já cadastrado.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:      "user-999-not-found",
			Routes:  []string{"users.get", "users.update", "users.delete"},
			When:    "params.id == '999'",
			Status:  http.StatusNotFound,
			Code:    string(api.CodeUserNotFound),
			Message: "User not found",
			DelayMs: 300,
		},
		{
			ID:      "duplicate-email-kim",
			Routes:  []string{"users.create"},
			When:    "has(body.email) && body.email == 'kim@example.com'",
			Status:  http.StatusConflict,
			Code:    string(api.CodeDuplicateEmail),
			Message: "Email already exists",
		},
	}
}

type compiled struct {
	rule Rule
	prg  cel.Program
}

// Injector avalia as regras de falha na ordem em que foram declaradas.
type Injector struct {
	rules  []compiled
	logger zerolog.Logger
}

// NewInjector compila todas as regras. Qualquer condição inválida aborta a
// inicialização.
func NewInjector(rm *rules.RuleManager, list []Rule, logger zerolog.Logger) (*Injector, error) {
	inj := &Injector{logger: logger}
	seen := make(map[string]struct{}, len(list))
	for _, r := range list {
		if r.ID == "" {
			return nil, fmt.Errorf("regra de falha sem id")
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("regra de falha '%s' duplicada", r.ID)
		}
		seen[r.ID] = struct{}{}
		if len(r.Routes) == 0 {
			return nil, fmt.Errorf("regra de falha '%s' sem rotas", r.ID)
		}

		c := compiled{rule: r}
		if r.When != "" {
			prg, err := rm.CompileBool(r.When)
			if err != nil {
				return nil, fmt.Errorf("regra de falha '%s': %w", r.ID, err)
			}
			c.prg = prg
		}
		inj.rules = append(inj.rules, c)
	}
	return inj, nil
}

// Rules devolve as regras ativas.
func (i *Injector) Rules() []Rule {
	out := make([]Rule, 0, len(i.rules))
	for _, c := range i.rules {
		out = append(out, c.rule)
	}
	return out
}

// Evaluate devolve a primeira regra que casa com a requisição. Erros de
// avaliação são logados e contam como não correspondência.
func (i *Injector) Evaluate(req *api.Request) (Rule, bool) {
	if i == nil || len(i.rules) == 0 {
		return Rule{}, false
	}
	var vars map[string]interface{}
	for _, c := range i.rules {
		if !c.rule.appliesTo(req.Route) {
			continue
		}
		if c.prg == nil {
			return c.rule, true
		}
		if vars == nil {
			vars = rules.RequestVars(req)
		}
		ok, err := rules.EvalBool(c.prg, vars)
		if err != nil {
			i.logger.Warn().Err(err).Str("rule", c.rule.ID).Str("route", req.Route).Msg("falha ao avaliar regra de falha")
			continue
		}
		if ok {
			return c.rule, true
		}
	}
	return Rule{}, false
}
