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
package engine

import (
	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/raywall/fast-mock-toolkit/pkg/handlers"
	"github.com/raywall/fast-mock-toolkit/pkg/metrics"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
	"github.com/raywall/fast-mock-toolkit/pkg/seed"
	"github.com/rs/zerolog"
)

// Option customiza a montagem do engine. Sem opções, tudo é derivado da
// configuração (logger, métricas, origem da semente).
type Option func(*settings)

type settings struct {
	sleeper      responder.Sleeper
	metrics      metrics.Provider
	logger       *zerolog.Logger
	handlerOpts  *handlers.Options
	seeds        *seed.Loader
	configLoader *config.Loader
}

// WithSleeper troca a espera real (ex: RecordingSleeper em testes).
func WithSleeper(s responder.Sleeper) Option {
	return func(st *settings) { st.sleeper = s }
}

func WithMetrics(p metrics.Provider) Option {
	return func(st *settings) { st.metrics = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(st *settings) { st.logger = &l }
}

// WithHandlerOptions fixa relógio e geradores de id. DeleteMutates continua
// vindo da configuração.
func WithHandlerOptions(o handlers.Options) Option {
	return func(st *settings) { st.handlerOpts = &o }
}

func WithSeedLoader(l *seed.Loader) Option {
	return func(st *settings) { st.seeds = l }
}

func WithConfigLoader(l *config.Loader) Option {
	return func(st *settings) { st.configLoader = l }
}
