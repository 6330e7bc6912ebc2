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
package panel

import (
	"fmt"
	"net/http"
)

// Suite agrupa probes executadas em sequência.
type Suite string

const (
	SuiteBasic    Suite = "basic"
	SuiteErrors   Suite = "errors"
	SuiteCRUD     Suite = "crud"
	SuiteAdvanced Suite = "advanced"
	SuiteSlow     Suite = "slow"
)

// Suites lista todas as suítes na ordem de execução de RunAll.
func Suites() []Suite {
	return []Suite{SuiteBasic, SuiteErrors, SuiteCRUD, SuiteAdvanced, SuiteSlow}
}

// Probe é uma única chamada do painel.
type Probe struct {
	Name   string
	Method string
	Path   string
	Body   interface{}
}

type userBody struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

var catalog = map[Suite][]Probe{
	SuiteBasic: {
		{Name: "list users", Method: http.MethodGet, Path: "/api/users"},
		{Name: "list posts", Method: http.MethodGet, Path: "/api/posts"},
		{Name: "get user 1", Method: http.MethodGet, Path: "/api/users/1"},
	},
	SuiteErrors: {
		{Name: "missing user (404)", Method: http.MethodGet, Path: "/api/users/999"},
		{Name: "network error", Method: http.MethodGet, Path: "/api/network-error"},
		{Name: "server error (500)", Method: http.MethodGet, Path: "/api/server-error"},
	},
	SuiteCRUD: {
		{Name: "create user", Method: http.MethodPost, Path: "/api/users",
			Body: userBody{Name: "테스트 사용자", Email: "test@example.com", Role: "user"}},
		{Name: "create user without name", Method: http.MethodPost, Path: "/api/users",
			Body: userBody{Email: "invalid@example.com"}},
		{Name: "duplicate email (409)", Method: http.MethodPost, Path: "/api/users",
			Body: userBody{Name: "김철수", Email: "kim@example.com", Role: "user"}},
	},
	SuiteAdvanced: {
		{Name: "posts page 2", Method: http.MethodGet, Path: "/api/posts?page=2"},
		{Name: "search posts (q=MSW)", Method: http.MethodGet, Path: "/api/posts/search?q=MSW"},
		{Name: "search posts (empty)", Method: http.MethodGet, Path: "/api/posts/search?q="},
	},
	SuiteSlow: {
		{Name: "slow response", Method: http.MethodGet, Path: "/api/slow"},
	},
}

// Probes devolve uma cópia das probes da suíte.
func Probes(s Suite) ([]Probe, error) {
	list, ok := catalog[s]
	if !ok {
		return nil, fmt.Errorf("suíte desconhecida: %q", s)
	}
	return append([]Probe(nil), list...), nil
}

// ParseSuite aceita o nome de uma suíte ou "all".
func ParseSuite(name string) ([]Suite, error) {
	if name == "" || name == "all" {
		return Suites(), nil
	}
	if _, ok := catalog[Suite(name)]; !ok {
		return nil, fmt.Errorf("suíte desconhecida: %q", name)
	}
	return []Suite{Suite(name)}, nil
}
