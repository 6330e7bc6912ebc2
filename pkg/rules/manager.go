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
package rules

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/raywall/fast-mock-toolkit/pkg/api"
)

// Variáveis disponíveis nas expressões.
const (
	VarMethod  = "method"
	VarPath    = "path"
	VarRoute   = "route"
	VarParams  = "params"
	VarQuery   = "query"
	VarBody    = "body"
	VarHeader  = "header"
	VarStatus  = "status"
	VarDelayMs = "delay_ms"
	VarFault   = "fault"
)

// RuleManager gerencia a compilação e avaliação de expressões CEL sobre
// requisições do mock.
type RuleManager struct {
	env   *cel.Env
	cache sync.Map // expressão -> cel.Program
}

// NewRuleManager inicializa o ambiente CEL com as variáveis de requisição.
func NewRuleManager() (*RuleManager, error) {
	env, err := cel.NewEnv(
		cel.Variable(VarMethod, cel.StringType),
		cel.Variable(VarPath, cel.StringType),
		cel.Variable(VarRoute, cel.StringType),
		cel.Variable(VarParams, cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable(VarQuery, cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable(VarBody, cel.DynType),
		cel.Variable(VarHeader, cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable(VarStatus, cel.IntType),
		cel.Variable(VarDelayMs, cel.IntType),
		cel.Variable(VarFault, cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}
	return &RuleManager{env: env}, nil
}

// CompileProgram compila a expressão e guarda o programa em cache.
func (rm *RuleManager) CompileProgram(expr string) (cel.Program, error) {
	if prg, ok := rm.cache.Load(expr); ok {
		return prg.(cel.Program), nil
	}
	ast, issues := rm.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro de compilação CEL '%s': %w", expr, issues.Err())
	}
	prg, err := rm.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar programa CEL: %w", err)
	}
	rm.cache.Store(expr, prg)
	return prg, nil
}

// CompileBool compila uma condição e garante que ela produz um booleano.
func (rm *RuleManager) CompileBool(expr string) (cel.Program, error) {
	ast, issues := rm.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro de compilação CEL '%s': %w", expr, issues.Err())
	}
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expressão '%s' deve retornar bool, retorna %s", expr, out)
	}
	return rm.CompileProgram(expr)
}

// EvaluateBool processa condições. Expressão vazia aprova.
func (rm *RuleManager) EvaluateBool(expr string, vars map[string]interface{}) (bool, error) {
	if expr == "" {
		return true, nil
	}
	prg, err := rm.CompileProgram(expr)
	if err != nil {
		return false, err
	}
	return EvalBool(prg, vars)
}

// EvaluateValue processa expressões de valor (tags e valores de métricas).
func (rm *RuleManager) EvaluateValue(expr string, vars map[string]interface{}) (interface{}, error) {
	if expr == "" {
		return nil, nil
	}
	prg, err := rm.CompileProgram(expr)
	if err != nil {
		return nil, err
	}
	out, _, err := prg.Eval(vars)
	if err != nil {
		return nil, fmt.Errorf("erro execução CEL: %w", err)
	}
	return out.Value(), nil
}

// EvalBool executa um programa já compilado.
func EvalBool(prg cel.Program, vars map[string]interface{}) (bool, error) {
	out, _, err := prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("erro execução CEL: %w", err)
	}
	if val, ok := out.Value().(bool); ok {
		return val, nil
	}
	return false, fmt.Errorf("resultado não é booleano")
}

// RequestVars monta as variáveis de uma requisição roteada. As variáveis de
// resposta ficam zeradas.
func RequestVars(req *api.Request) map[string]interface{} {
	header := make(map[string]string, len(req.Header))
	for k := range req.Header {
		header[k] = req.Header.Get(k)
	}
	params := req.Params
	if params == nil {
		params = map[string]string{}
	}
	return map[string]interface{}{
		VarMethod:  req.Method,
		VarPath:    req.Path,
		VarRoute:   req.Route,
		VarParams:  params,
		VarQuery:   req.FlatQuery(),
		VarBody:    req.BodyMap(),
		VarHeader:  header,
		VarStatus:  int64(0),
		VarDelayMs: int64(0),
		VarFault:   "",
	}
}

// WithResponse completa as variáveis com o desfecho da requisição.
func WithResponse(vars map[string]interface{}, status int, delayMs int64, fault string) map[string]interface{} {
	out := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	out[VarStatus] = int64(status)
	out[VarDelayMs] = delayMs
	out[VarFault] = fault
	return out
}
