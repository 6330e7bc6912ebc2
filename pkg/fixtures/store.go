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

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrNotFound     = errors.New("fixtures: registro não encontrado")
	ErrDuplicateID  = errors.New("fixtures: id duplicado")
	ErrTimeConflict = errors.New("fixtures: conflito de horário")
)

// Store é o banco falso do mock. Cada instância é dona dos seus dados, o que
// permite testes isolados. Seguro para uso concorrente.
type Store struct {
	mu       sync.RWMutex
	seed     Dataset
	users    *Collection[int, User]
	posts    *Collection[int, Post]
	pages    map[int][]int
	events   *Collection[string, Event]
	holidays *Collection[string, Holiday]
}

// NewStore cria um store a partir de uma cópia profunda da semente.
func NewStore(seed Dataset) (*Store, error) {
	s := &Store{}
	if err := s.Load(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewStore é usado com sementes conhecidas (ex: DefaultDataset).
func MustNewStore(seed Dataset) *Store {
	s, err := NewStore(seed)
	if err != nil {
		panic(err)
	}
	return s
}

// Load troca a semente e reinicia o estado a partir dela.
func (s *Store) Load(seed Dataset) error {
	users, posts, events, holidays, err := build(seed)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = seed.Clone()
	s.users, s.posts, s.events, s.holidays = users, posts, events, holidays
	s.pages = seed.Clone().PostPages
	return nil
}

// Reset restaura o estado da semente carregada.
func (s *Store) Reset() {
	s.mu.RLock()
	seed := s.seed
	s.mu.RUnlock()
	// a semente já foi validada em Load
	_ = s.Load(seed)
}

func build(seed Dataset) (*Collection[int, User], *Collection[int, Post], *Collection[string, Event], *Collection[string, Holiday], error) {
	d := seed.Clone()
	users := NewCollection[int, User]()
	for _, u := range d.Users {
		if err := users.Insert(u.ID, u); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("usuário %d: %w", u.ID, err)
		}
	}
	posts := NewCollection[int, Post]()
	for _, p := range d.Posts {
		if err := posts.Insert(p.ID, p); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("post %d: %w", p.ID, err)
		}
	}
	events := NewCollection[string, Event]()
	for _, e := range d.Events {
		if err := events.Insert(e.ID, e); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("evento %s: %w", e.ID, err)
		}
	}
	holidays := NewCollection[string, Holiday]()
	for _, h := range d.Holidays {
		if err := holidays.Insert(h.ID, h); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("feriado %s: %w", h.ID, err)
		}
	}
	return users, posts, events, holidays, nil
}

// --- usuários ---

func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUsers(s.users.All())
}

func (s *Store) User(id int) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.Get(id)
	if !ok {
		return User{}, ErrNotFound
	}
	return u.clone(), nil
}

// maxIDDraws limita os sorteios de AddUser antes de cair no maior id + 1.
const maxIDDraws = 100

// AddUser grava um usuário novo. Quando nextID não é nil o id é sorteado por
// ele até encontrar um valor livre. Se o espaço do gerador estiver esgotado
// o id passa a ser o maior existente + 1.
func (s *Store) AddUser(u User, nextID func() int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nextID != nil {
		u.ID = s.freeUserID(nextID)
	}
	u = u.clone()
	if err := s.users.Insert(u.ID, u); err != nil {
		return User{}, err
	}
	return u.clone(), nil
}

func (s *Store) freeUserID(nextID func() int) int {
	for i := 0; i < maxIDDraws; i++ {
		if id := nextID(); !s.users.Has(id) {
			return id
		}
	}
	highest := 0
	for _, u := range s.users.All() {
		if u.ID > highest {
			highest = u.ID
		}
	}
	return highest + 1
}

// UpdateUser aplica fn sobre uma cópia do usuário e grava o resultado.
func (s *Store) UpdateUser(id int, fn func(*User) error) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users.Get(id)
	if !ok {
		return User{}, ErrNotFound
	}
	u = u.clone()
	if err := fn(&u); err != nil {
		return User{}, err
	}
	u.ID = id
	_ = s.users.Replace(id, u)
	return u.clone(), nil
}

func (s *Store) DeleteUser(id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.Remove(id)
}

// --- posts ---

func (s *Store) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts.All()
}

// PostPage devolve a página fixa pedida. Ids sem post correspondente são
// ignorados.
func (s *Store) PostPage(page int) ([]Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.pages[page]
	if !ok {
		return nil, false
	}
	out := make([]Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.posts.Get(id); ok {
			out = append(out, p)
		}
	}
	return out, true
}

// --- eventos ---

func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEvents(s.events.All())
}

func (s *Store) Event(id string) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events.Get(id)
	if !ok {
		return Event{}, ErrNotFound
	}
	return ev.clone(), nil
}

// AddEvent verifica conflito de horário e grava na mesma seção crítica.
func (s *Store) AddEvent(ev Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := FindConflict(ev, s.events.All()); found {
		return Event{}, ErrTimeConflict
	}
	ev = ev.clone()
	if err := s.events.Insert(ev.ID, ev); err != nil {
		return Event{}, err
	}
	return ev.clone(), nil
}

// UpdateEvent aplica fn sobre uma cópia do evento, verifica conflito
// ignorando o próprio evento e grava o resultado.
func (s *Store) UpdateEvent(id string, fn func(*Event) error) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events.Get(id)
	if !ok {
		return Event{}, ErrNotFound
	}
	ev = ev.clone()
	if err := fn(&ev); err != nil {
		return Event{}, err
	}
	ev.ID = id
	if _, found := FindConflict(ev, s.events.All()); found {
		return Event{}, ErrTimeConflict
	}
	_ = s.events.Replace(id, ev)
	return ev.clone(), nil
}

func (s *Store) DeleteEvent(id string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Remove(id)
}

// --- feriados ---

func (s *Store) Holidays() []Holiday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.holidays.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Snapshot devolve uma cópia do estado atual no formato de semente.
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := Dataset{
		Users:    s.users.All(),
		Posts:    s.posts.All(),
		Events:   s.events.All(),
		Holidays: s.holidays.All(),
	}
	d.PostPages = s.pages
	return d.Clone()
}

func cloneUsers(in []User) []User {
	out := make([]User, len(in))
	for i, u := range in {
		out[i] = u.clone()
	}
	return out
}

func cloneEvents(in []Event) []Event {
	out := make([]Event, len(in))
	for i, e := range in {
		out[i] = e.clone()
	}
	return out
}
