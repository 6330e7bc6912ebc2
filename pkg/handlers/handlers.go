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
package handlers

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/raywall/fast-mock-toolkit/pkg/router"
)

// Nomes lógicos das rotas. São usados nas regras de falha, nos overrides de
// latência e nas métricas.
const (
	RouteUsersList    = "users.list"
	RouteUsersSearch  = "users.search"
	RouteUsersGet     = "users.get"
	RouteUsersCreate  = "users.create"
	RouteUsersUpdate  = "users.update"
	RouteUsersDelete  = "users.delete"
	RoutePostsList    = "posts.list"
	RoutePostsSearch  = "posts.search"
	RouteEventsList   = "events.list"
	RouteEventsGet    = "events.get"
	RouteEventsCreate = "events.create"
	RouteEventsUpdate = "events.update"
	RouteEventsDelete = "events.delete"
	RouteHolidaysList = "holidays.list"
	RouteNetworkError = "synthetic.network_error"
	RouteServerError  = "synthetic.server_error"
	RouteSlow         = "synthetic.slow"
)

// Latências simuladas por endpoint.
const (
	delayUsersList     = 500 * time.Millisecond
	delayUsersSearch   = 300 * time.Millisecond
	delayUserFound     = 200 * time.Millisecond
	delayUserNotFound  = 300 * time.Millisecond
	delayUserCreate    = 800 * time.Millisecond
	delayUserUpdate    = 600 * time.Millisecond
	delayUserDelete    = 400 * time.Millisecond
	delayPostsPage     = 300 * time.Millisecond
	delayPostsNextPage = 400 * time.Millisecond
	delayPostsSearch   = 500 * time.Millisecond
	delayEventsList    = 300 * time.Millisecond
	delayEventGet      = 200 * time.Millisecond
	delayEventCreate   = 500 * time.Millisecond
	delayEventUpdate   = 400 * time.Millisecond
	delayEventDelete   = 300 * time.Millisecond
	delayHolidays      = 200 * time.Millisecond
	delaySlow          = 3000 * time.Millisecond
)

// Options reúne as variações de comportamento entre versões do mock.
type Options struct {
	// DeleteMutates remove de fato o usuário no DELETE. Desligado, o
	// endpoint apenas ecoa o id e sempre responde 200.
	DeleteMutates bool
	// Now fornece o relógio usado em createdAt/updatedAt.
	Now func() time.Time
	// UserID sorteia ids de usuários novos.
	UserID func() int
	// EventID gera ids de eventos novos.
	EventID func() string
}

// DefaultOptions devolve a configuração padrão: delete com mutação, relógio
// real, ids de usuário no intervalo [4, 1004) e ids de evento UUID.
func DefaultOptions() Options {
	return Options{
		DeleteMutates: true,
		Now:           time.Now,
		UserID:        func() int { return rand.Intn(1000) + 4 },
		EventID:       func() string { return uuid.NewString() },
	}
}

// Handlers implementa os endpoints do mock sobre um Store.
type Handlers struct {
	store    *fixtures.Store
	opts     Options
	validate *validator.Validate
}

// New cria os handlers. Campos nulos em opts recebem os valores padrão.
func New(store *fixtures.Store, opts Options) *Handlers {
	def := DefaultOptions()
	if opts.Now == nil {
		opts.Now = def.Now
	}
	if opts.UserID == nil {
		opts.UserID = def.UserID
	}
	if opts.EventID == nil {
		opts.EventID = def.EventID
	}
	return &Handlers{store: store, opts: opts, validate: newValidator()}
}

// Register registra todas as rotas de negócio. A busca é registrada antes
// da rota com parâmetro para que "/api/users/search" não seja lido como id.
func (h *Handlers) Register(r *router.Router) error {
	type entry struct {
		name, method, pattern string
		h                     api.HandlerFunc
	}
	table := []entry{
		{RouteUsersList, http.MethodGet, "/api/users", h.listUsers},
		{RouteUsersSearch, http.MethodGet, "/api/users/search", h.searchUsers},
		{RouteUsersGet, http.MethodGet, "/api/users/:id", h.getUser},
		{RouteUsersCreate, http.MethodPost, "/api/users", h.createUser},
		{RouteUsersUpdate, http.MethodPut, "/api/users/:id", h.updateUser},
		{RouteUsersDelete, http.MethodDelete, "/api/users/:id", h.deleteUser},
		{RoutePostsList, http.MethodGet, "/api/posts", h.listPosts},
		{RoutePostsSearch, http.MethodGet, "/api/posts/search", h.searchPosts},
		{RouteEventsList, http.MethodGet, "/api/events", h.listEvents},
		{RouteEventsGet, http.MethodGet, "/api/events/:id", h.getEvent},
		{RouteEventsCreate, http.MethodPost, "/api/events", h.createEvent},
		{RouteEventsUpdate, http.MethodPut, "/api/events/:id", h.updateEvent},
		{RouteEventsDelete, http.MethodDelete, "/api/events/:id", h.deleteEvent},
		{RouteHolidaysList, http.MethodGet, "/api/holidays", h.listHolidays},
		{RouteNetworkError, http.MethodGet, "/api/network-error", networkError},
		{RouteServerError, http.MethodGet, "/api/server-error", serverError},
		{RouteSlow, http.MethodGet, "/api/slow", slow},
	}
	for _, e := range table {
		if err := r.Handle(e.name, e.method, e.pattern, e.h); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handlers) now() string {
	return h.opts.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
