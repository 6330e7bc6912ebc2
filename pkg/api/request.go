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
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Inbound é a requisição crua recebida por um adaptador de interceptação
// (RoundTripper, servidor HTTP ou Lambda) antes do roteamento.
type Inbound struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Request é a requisição já roteada entregue a um handler.
type Request struct {
	// Route é o nome lógico da rota (ex: "users.get").
	Route  string
	Method string
	Path   string
	Params map[string]string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// HandlerFunc implementa a regra de negócio de um endpoint.
type HandlerFunc func(ctx context.Context, req *Request) Result

// Param devolve um parâmetro de path ("" se ausente).
func (r *Request) Param(name string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[name]
}

// QueryValue devolve o primeiro valor de um parâmetro de query.
func (r *Request) QueryValue(name string) string {
	if r.Query == nil {
		return ""
	}
	return r.Query.Get(name)
}

// DecodeJSON decodifica o corpo em v. Corpo vazio também é JSON inválido.
func (r *Request) DecodeJSON(v interface{}) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("corpo vazio")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("json inválido: %w", err)
	}
	return nil
}

// BodyMap expõe o corpo como mapa genérico, usado nas regras de falha.
// Corpos que não são objetos JSON viram um mapa vazio.
func (r *Request) BodyMap() map[string]interface{} {
	out := make(map[string]interface{})
	if len(r.Body) == 0 {
		return out
	}
	if err := json.Unmarshal(r.Body, &out); err != nil {
		return make(map[string]interface{})
	}
	return out
}

// FlatQuery reduz a query ao primeiro valor de cada chave.
func (r *Request) FlatQuery() map[string]string {
	out := make(map[string]string, len(r.Query))
	for k, v := range r.Query {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
