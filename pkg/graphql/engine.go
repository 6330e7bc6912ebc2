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
package graphql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
)

// RouteName é o nome lógico da rota GraphQL.
const RouteName = "graphql.query"

// Engine executa consultas somente leitura sobre o store do mock.
type Engine struct {
	Schema graphql.Schema
}

// Request é o corpo aceito em POST /api/graphql.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

func NewEngine(store *fixtures.Store) (*Engine, error) {
	schema, err := buildSchema(&resolver{store: store})
	if err != nil {
		return nil, fmt.Errorf("falha ao montar schema graphql: %w", err)
	}
	return &Engine{Schema: schema}, nil
}

func (e *Engine) Execute(ctx context.Context, query string, variables map[string]interface{}, operation string) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.Schema,
		RequestString:  query,
		VariableValues: variables,
		OperationName:  operation,
		Context:        ctx,
	})
}

// Handle adapta o engine para uma rota do mock. Erros de consulta seguem a
// convenção GraphQL: status 200 com a lista "errors" no corpo.
func (e *Engine) Handle(ctx context.Context, req *api.Request) api.Result {
	var body Request
	if err := json.Unmarshal(req.Body, &body); err != nil {
		return api.Fail(api.InvalidJSON(), 0)
	}
	if body.Query == "" {
		return api.Fail(api.Validation("query is required"), 0)
	}
	return api.OK(e.Execute(ctx, body.Query, body.Variables, body.OperationName), 0)
}
