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
package seed

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "mock:seed"

// RedisGetter é o subconjunto do cliente go-redis usado pelo loader.
type RedisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Close() error
}

func (l *Loader) loadRedis(ctx context.Context, source string) (fixtures.Dataset, error) {
	u, err := url.Parse(source)
	if err != nil {
		return fixtures.Dataset{}, fmt.Errorf("URL Redis inválida: %w", err)
	}
	// "key" é nosso; o ParseURL do go-redis recusa opções desconhecidas.
	q := u.Query()
	key := q.Get("key")
	if key == "" {
		key = defaultRedisKey
	}
	q.Del("key")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return fixtures.Dataset{}, fmt.Errorf("URL Redis inválida: %w", err)
	}

	newClient := l.NewRedis
	if newClient == nil {
		newClient = func(o *redis.Options) RedisGetter { return redis.NewClient(o) }
	}
	client := newClient(opts)
	defer client.Close()

	val, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return fixtures.Dataset{}, fmt.Errorf("chave %s não encontrada no redis", key)
	}
	if err != nil {
		return fixtures.Dataset{}, fmt.Errorf("erro ao ler seed do redis: %w", err)
	}
	return Decode([]byte(val))
}
