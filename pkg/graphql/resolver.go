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
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
)

// resolver lê direto do store; a visão GraphQL nunca altera estado.
type resolver struct {
	store *fixtures.Store
}

func (r *resolver) users(p graphql.ResolveParams) (interface{}, error) {
	return r.store.Users(), nil
}

func (r *resolver) user(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(int)
	u, err := r.store.User(id)
	if err != nil {
		// usuário inexistente vira null, como em qualquer campo opcional
		return nil, nil
	}
	return u, nil
}

func (r *resolver) posts(p graphql.ResolveParams) (interface{}, error) {
	page, _ := p.Args["page"].(int)
	posts, _ := r.store.ServePage(page)
	return posts, nil
}

func (r *resolver) postAuthor(p graphql.ResolveParams) (interface{}, error) {
	post, ok := p.Source.(fixtures.Post)
	if !ok {
		return nil, nil
	}
	u, err := r.store.User(post.AuthorID)
	if err != nil {
		return nil, nil
	}
	return u.Summary(), nil
}

func (r *resolver) events(p graphql.ResolveParams) (interface{}, error) {
	search, _ := p.Args["search"].(string)
	from, _ := p.Args["startDate"].(string)
	to, _ := p.Args["endDate"].(string)
	return fixtures.FilterEvents(r.store.Events(), search, from, to), nil
}

func (r *resolver) holidays(p graphql.ResolveParams) (interface{}, error) {
	year, _ := p.Args["year"].(string)
	month := ""
	if m, ok := p.Args["month"].(int); ok {
		month = strconv.Itoa(m)
	}
	return fixtures.HolidaysInMonth(r.store.Holidays(), year, month), nil
}

// resolveProfile evita devolver um *Profile nulo dentro de interface{},
// que o executor não reconhece como null.
func resolveProfile(p graphql.ResolveParams) (interface{}, error) {
	u, ok := p.Source.(fixtures.User)
	if !ok || u.Profile == nil {
		return nil, nil
	}
	return *u.Profile, nil
}
