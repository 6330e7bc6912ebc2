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
package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/raywall/fast-mock-toolkit/pkg/api"
)

var (
	ErrNoRoute          = errors.New("router: nenhuma rota corresponde à requisição")
	ErrMethodNotAllowed = errors.New("router: método não permitido para o path")
	ErrDuplicateRoute   = errors.New("router: rota já registrada")
)

// Route descreve um endpoint registrado.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Handler api.HandlerFunc `json:"-"`
}

// Match é o resultado da resolução de uma requisição.
type Match struct {
	Route  *Route
	Params map[string]string
	Query  url.Values
}

// Router resolve (método, path) para um handler. Os padrões usam a sintaxe
// ":param" e são convertidos para variáveis do gorilla/mux. A primeira rota
// registrada que corresponder vence.
type Router struct {
	mux    *mux.Router
	routes []*Route
	byName map[string]*Route
	keys   map[string]struct{}
}

func New() *Router {
	return &Router{
		mux:    mux.NewRouter(),
		byName: make(map[string]*Route),
		keys:   make(map[string]struct{}),
	}
}

// Handle registra um handler. Método e padrão idênticos a uma rota existente
// resultam em ErrDuplicateRoute, assim como nomes repetidos.
func (r *Router) Handle(name, method, pattern string, h api.HandlerFunc) error {
	method = strings.ToUpper(method)
	if name == "" || h == nil {
		return fmt.Errorf("router: nome e handler são obrigatórios")
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("router: padrão %q deve começar com '/'", pattern)
	}
	key := method + " " + pattern
	if _, ok := r.keys[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, key)
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: nome %s", ErrDuplicateRoute, name)
	}

	rt := &Route{Name: name, Method: method, Pattern: pattern, Handler: h}
	// o handler do mux nunca é servido; ele só existe para que o mux limpe
	// o erro de método quando uma rota posterior corresponde
	r.mux.NewRoute().Name(name).Methods(method).Path(ToMuxPattern(pattern)).HandlerFunc(unreachable)
	r.routes = append(r.routes, rt)
	r.byName[name] = rt
	r.keys[key] = struct{}{}
	return nil
}

// MustHandle é usado no registro das rotas embutidas.
func (r *Router) MustHandle(name, method, pattern string, h api.HandlerFunc) {
	if err := r.Handle(name, method, pattern, h); err != nil {
		panic(err)
	}
}

// Match resolve a rota e extrai parâmetros de path e de query.
func (r *Router) Match(method, path, rawQuery string) (*Match, error) {
	req := &http.Request{
		Method: strings.ToUpper(method),
		URL:    &url.URL{Path: path, RawQuery: rawQuery},
		Header: make(http.Header),
	}

	var rm mux.RouteMatch
	if !r.mux.Match(req, &rm) || rm.Route == nil {
		if errors.Is(rm.MatchErr, mux.ErrMethodMismatch) {
			return nil, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, method, path)
		}
		return nil, fmt.Errorf("%w: %s %s", ErrNoRoute, method, path)
	}
	if rm.MatchErr != nil {
		return nil, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, method, path)
	}

	rt, ok := r.byName[rm.Route.GetName()]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrNoRoute, method, path)
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		// query malformada é tratada como ausente, como faria um navegador
		query = url.Values{}
	}
	params := make(map[string]string, len(rm.Vars))
	for k, v := range rm.Vars {
		params[k] = v
	}
	return &Match{Route: rt, Params: params, Query: query}, nil
}

// Lookup devolve uma rota pelo nome.
func (r *Router) Lookup(name string) (*Route, bool) {
	rt, ok := r.byName[name]
	return rt, ok
}

// Routes lista as rotas na ordem de registro.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, *rt)
	}
	return out
}

func unreachable(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// ToMuxPattern converte "/api/users/:id" em "/api/users/{id}".
func ToMuxPattern(pattern string) string {
	segs := strings.Split(pattern, "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") && len(s) > 1 {
			segs[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}
