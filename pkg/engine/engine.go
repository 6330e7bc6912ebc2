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
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/raywall/fast-mock-toolkit/pkg/faults"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/raywall/fast-mock-toolkit/pkg/graphql"
	"github.com/raywall/fast-mock-toolkit/pkg/handlers"
	"github.com/raywall/fast-mock-toolkit/pkg/logger"
	"github.com/raywall/fast-mock-toolkit/pkg/metrics"
	"github.com/raywall/fast-mock-toolkit/pkg/observability"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
	"github.com/raywall/fast-mock-toolkit/pkg/router"
	"github.com/raywall/fast-mock-toolkit/pkg/rules"
	"github.com/raywall/fast-mock-toolkit/pkg/seed"
	"github.com/rs/zerolog"
)

// runtime agrupa tudo que é derivado de uma configuração. O Reload monta
// um runtime novo e troca o ponteiro de uma vez.
type runtime struct {
	cfg        *config.MockConfig
	store      *fixtures.Store
	router     *router.Router
	faults     *faults.Injector
	synth      *responder.Synthesizer
	recorder   *metrics.Recorder
	latency    map[string]time.Duration
	noLatency  bool
	policy     string
	graphqlURL string
}

// MockEngine recebe requisições já capturadas por um adaptador e devolve a
// resposta simulada: roteamento, regras de falha, handler, latência.
type MockEngine struct {
	mu           sync.RWMutex
	ConfigSource string
	Logger       zerolog.Logger
	Metrics      metrics.Provider
	rt           *runtime
	st           settings
}

// NewMockEngine monta o engine. source é a origem da configuração, usada
// pelo Reload; pode ser vazia quando a configuração foi montada em código.
func NewMockEngine(ctx context.Context, cfg *config.MockConfig, source string, opts ...Option) (*MockEngine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var st settings
	for _, opt := range opts {
		opt(&st)
	}
	if st.sleeper == nil {
		st.sleeper = responder.RealSleeper{}
	}
	if st.seeds == nil {
		st.seeds = seed.NewLoader()
	}
	if st.configLoader == nil {
		st.configLoader = config.NewLoader()
	}

	log := logger.Configure(cfg.Service.Logging)
	if st.logger != nil {
		log = *st.logger
	}

	provider := st.metrics
	if provider == nil {
		var err error
		provider, err = observability.SetupMetrics(cfg.Service.Name, cfg.Service.Metrics)
		if err != nil {
			return nil, fmt.Errorf("falha métricas: %w", err)
		}
	}

	e := &MockEngine{
		ConfigSource: source,
		Logger:       log,
		Metrics:      provider,
		st:           st,
	}
	rt, err := e.build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	e.rt = rt
	return e, nil
}

func (e *MockEngine) build(ctx context.Context, cfg *config.MockConfig) (*runtime, error) {
	rm, err := rules.NewRuleManager()
	if err != nil {
		return nil, fmt.Errorf("falha fatal ao iniciar RuleManager: %w", err)
	}

	dataset, err := e.st.seeds.Load(ctx, cfg.Seed.Source)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar seed: %w", err)
	}
	store, err := fixtures.NewStore(dataset)
	if err != nil {
		return nil, fmt.Errorf("seed inválido: %w", err)
	}

	hOpts := handlers.DefaultOptions()
	if e.st.handlerOpts != nil {
		hOpts = *e.st.handlerOpts
	}
	hOpts.DeleteMutates = cfg.Mock.DeleteMutatesOrDefault()

	r := router.New()
	if err := handlers.New(store, hOpts).Register(r); err != nil {
		return nil, fmt.Errorf("falha ao registrar rotas: %w", err)
	}

	rt := &runtime{
		cfg:       cfg,
		store:     store,
		router:    r,
		latency:   cfg.Mock.Latencies(),
		noLatency: cfg.Mock.DisableLatency,
		policy:    cfg.Mock.Policy(),
	}

	if cfg.GraphQL.Enabled {
		gql, err := graphql.NewEngine(store)
		if err != nil {
			return nil, err
		}
		rt.graphqlURL = cfg.GraphQL.RouteOrDefault()
		if err := r.Handle(graphql.RouteName, "POST", rt.graphqlURL, gql.Handle); err != nil {
			return nil, fmt.Errorf("falha ao registrar graphql: %w", err)
		}
	}
	if !cfg.Mock.DisableAdmin {
		if err := registerAdmin(r, rt); err != nil {
			return nil, err
		}
	}

	rt.faults, err = faults.NewInjector(rm, cfg.FaultRules(), e.Logger)
	if err != nil {
		return nil, fmt.Errorf("regras de falha inválidas: %w", err)
	}
	for _, rule := range rt.faults.Rules() {
		for _, name := range rule.Routes {
			if _, ok := r.Lookup(name); !ok && name != faults.AnyRoute {
				e.Logger.Warn().Str("fault", rule.ID).Str("route", name).Msg("regra de falha aponta para rota inexistente")
			}
		}
	}

	rt.synth, err = responder.NewSynthesizer(e.st.sleeper, rm, cfg.Mock.ResponseHeaders)
	if err != nil {
		return nil, fmt.Errorf("falha responder: %w", err)
	}
	rt.synth.WithLogger(e.Logger)

	processor := metrics.NewProcessor(cfg.Service.Metrics.Datadog.CustomDefinitions, e.Metrics, rm)
	rt.recorder = metrics.NewRecorder(e.Metrics, processor, cfg.Service.Metrics.Rules, e.Logger)
	return rt, nil
}

func (e *MockEngine) current() *runtime {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rt
}

// Dispatch atende uma requisição. Requisições sem rota (ou com método não
// registrado para o path) devolvem um erro que satisfaz
// errors.Is(err, api.ErrUnhandled); a política fica com o adaptador.
// Falhas de rede simuladas devolvem responder.ErrNetworkFailure.
func (e *MockEngine) Dispatch(ctx context.Context, in api.Inbound) (*responder.Envelope, error) {
	rt := e.current()

	m, err := rt.router.Match(in.Method, in.Path, in.RawQuery)
	if err != nil {
		rt.recorder.RecordUnhandled(in.Method, rt.policy)
		return nil, fmt.Errorf("%w: %w", api.ErrUnhandled, err)
	}

	req := &api.Request{
		Route:  m.Route.Name,
		Method: in.Method,
		Path:   in.Path,
		Params: m.Params,
		Query:  m.Query,
		Header: in.Header,
		Body:   in.Body,
	}
	vars := rules.RequestVars(req)

	var (
		res     api.Result
		faultID string
	)
	if rule, ok := rt.faults.Evaluate(req); ok {
		res = rule.Result()
		faultID = rule.ID
	} else {
		res = m.Route.Handler(ctx, req)
		if d, ok := rt.latency[req.Route]; ok {
			res.Delay = d
		}
	}
	if rt.noLatency {
		res.Delay = 0
	}

	env, err := rt.synth.Synthesize(ctx, res, rules.WithResponse(vars, res.Status, res.Delay.Milliseconds(), faultID))

	status := res.Status
	if errors.Is(err, responder.ErrNetworkFailure) {
		status = 0
	}
	rt.recorder.Record(metrics.Outcome{
		Route:   req.Route,
		Method:  req.Method,
		Status:  status,
		Delay:   res.Delay,
		FaultID: faultID,
		Vars:    rules.WithResponse(vars, status, res.Delay.Milliseconds(), faultID),
	})

	evt := e.Logger.Debug().
		Str("route", req.Route).
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", status).
		Dur("delay", res.Delay)
	if faultID != "" {
		evt = evt.Str("fault", faultID)
	}
	evt.Msg("requisição simulada")

	return env, err
}

// Reset restaura o estado inicial da massa de dados.
func (e *MockEngine) Reset() {
	e.current().store.Reset()
	e.Logger.Info().Msg("estado do mock restaurado")
}

// Reload relê a configuração da origem e recria rotas, regras e store.
// Em caso de erro o runtime atual continua valendo.
func (e *MockEngine) Reload(ctx context.Context) error {
	if e.ConfigSource == "" {
		return fmt.Errorf("reload indisponível: engine sem origem de configuração")
	}
	e.Logger.Info().Str("source", e.ConfigSource).Msg("reload iniciado")

	cfg, err := e.st.configLoader.Load(ctx, e.ConfigSource)
	if err != nil {
		return fmt.Errorf("falha ao carregar nova configuração: %w", err)
	}
	rt, err := e.build(ctx, cfg)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.rt = rt
	e.mu.Unlock()

	e.Logger.Info().Msg("reload concluído")
	return nil
}

// Routes lista as rotas registradas, na ordem de registro.
func (e *MockEngine) Routes() []router.Route {
	return e.current().router.Routes()
}

// Store expõe o store atual, para inspeção em testes.
func (e *MockEngine) Store() *fixtures.Store {
	return e.current().store
}

// Config devolve a configuração do runtime atual.
func (e *MockEngine) Config() *config.MockConfig {
	return e.current().cfg
}
