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

// Collection mantém entidades indexadas por id preservando a ordem de
// inserção. Não é segura para uso concorrente: o Store faz o controle.
type Collection[K comparable, T any] struct {
	items map[K]T
	order []K
}

func NewCollection[K comparable, T any]() *Collection[K, T] {
	return &Collection[K, T]{items: make(map[K]T)}
}

func (c *Collection[K, T]) Get(id K) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *Collection[K, T]) Has(id K) bool {
	_, ok := c.items[id]
	return ok
}

func (c *Collection[K, T]) Len() int {
	return len(c.order)
}

// All devolve os itens na ordem de inserção.
func (c *Collection[K, T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Insert adiciona um item novo. Falha com ErrDuplicateID se o id já existe.
func (c *Collection[K, T]) Insert(id K, v T) error {
	if c.Has(id) {
		return ErrDuplicateID
	}
	c.items[id] = v
	c.order = append(c.order, id)
	return nil
}

// Replace substitui um item existente mantendo sua posição.
func (c *Collection[K, T]) Replace(id K, v T) error {
	if !c.Has(id) {
		return ErrNotFound
	}
	c.items[id] = v
	return nil
}

func (c *Collection[K, T]) Remove(id K) (T, error) {
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	delete(c.items, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return v, nil
}
