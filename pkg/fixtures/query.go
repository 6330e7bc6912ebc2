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
package fixtures

import "strings"

// Consultas compartilhadas entre os handlers REST e a visão GraphQL.

// ServePage resolve a paginação fixa: páginas além da primeira só existem
// se estiverem na semente; qualquer outra cai na página 1. later indica que
// a página servida não é a primeira.
func (s *Store) ServePage(page int) (posts []Post, later bool) {
	if page > 1 {
		if out, ok := s.PostPage(page); ok {
			return out, true
		}
	}
	out, ok := s.PostPage(1)
	if !ok {
		out = s.Posts()
	}
	return out, false
}

// SearchUsers busca por substring no nome, sem diferenciar caixa. Consulta
// vazia não retorna nada.
func SearchUsers(users []User, q string) []User {
	q = strings.ToLower(strings.TrimSpace(q))
	found := make([]User, 0)
	if q == "" {
		return found
	}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) {
			found = append(found, u)
		}
	}
	return found
}

// SearchPosts busca no título ou no conteúdo.
func SearchPosts(posts []Post, q string) []Post {
	q = strings.ToLower(strings.TrimSpace(q))
	found := make([]Post, 0)
	if q == "" {
		return found
	}
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Content), q) {
			found = append(found, p)
		}
	}
	return found
}

// FilterEvents filtra por texto (título ou descrição) e, quando as duas
// datas são informadas, pelo intervalo [from, to].
func FilterEvents(events []Event, search, from, to string) []Event {
	search = strings.ToLower(search)
	out := make([]Event, 0)
	for _, ev := range events {
		if search != "" &&
			!strings.Contains(strings.ToLower(ev.Title), search) &&
			!strings.Contains(strings.ToLower(ev.Description), search) {
			continue
		}
		if from != "" && to != "" && (ev.StartDate < from || ev.EndDate > to) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// HolidaysInMonth filtra pelo prefixo "YYYY-MM". Sem mês, devolve a lista
// inteira, ignorando o ano.
func HolidaysInMonth(holidays []Holiday, year, month string) []Holiday {
	if month == "" {
		return holidays
	}
	if len(month) < 2 {
		month = "0" + month
	}
	prefix := year + "-" + month

	out := make([]Holiday, 0)
	for _, hd := range holidays {
		if strings.HasPrefix(hd.Date, prefix) {
			out = append(out, hd)
		}
	}
	return out
}
