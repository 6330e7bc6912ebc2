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
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/raywall/fast-mock-toolkit/pkg/client"
	"github.com/rs/zerolog"
)

// Outcome é Success ou Failure.
type Outcome interface {
	outcome()
}

// Success é qualquer resposta HTTP recebida, inclusive 4xx e 5xx.
type Success struct {
	Status     int             `json:"status"`
	StatusText string          `json:"statusText"`
	Body       json.RawMessage `json:"body,omitempty"`
	Elapsed    time.Duration   `json:"elapsed"`
}

// Failure é uma requisição que não produziu resposta.
type Failure struct {
	Err error `json:"-"`
}

func (Success) outcome() {}
func (Failure) outcome() {}

func (f Failure) MarshalJSON() ([]byte, error) {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		Error string `json:"error"`
	}{msg})
}

type Result struct {
	Suite   Suite     `json:"suite"`
	Name    string    `json:"name"`
	At      time.Time `json:"at"`
	Outcome Outcome   `json:"outcome"`
}

// Succeeded informa se a probe obteve alguma resposta.
func (r Result) Succeeded() bool {
	_, ok := r.Outcome.(Success)
	return ok
}

// Panel executa suítes contra um cliente e acumula os resultados.
type Panel struct {
	mu      sync.Mutex
	client  *client.Client
	logger  zerolog.Logger
	results []Result
	now     func() time.Time
}

func New(c *client.Client, logger zerolog.Logger) *Panel {
	return &Panel{client: c, logger: logger, now: time.Now}
}

// Run executa as probes da suíte em ordem. Falhas de uma probe não
// interrompem as seguintes.
func (p *Panel) Run(ctx context.Context, s Suite) ([]Result, error) {
	probes, err := Probes(s)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(probes))
	for _, probe := range probes {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res := p.exec(ctx, s, probe)
		out = append(out, res)

		p.mu.Lock()
		p.results = append(p.results, res)
		p.mu.Unlock()
	}
	return out, nil
}

// RunAll executa todas as suítes.
func (p *Panel) RunAll(ctx context.Context) ([]Result, error) {
	var out []Result
	for _, s := range Suites() {
		res, err := p.Run(ctx, s)
		out = append(out, res...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func (p *Panel) exec(ctx context.Context, s Suite, probe Probe) Result {
	res := Result{Suite: s, Name: probe.Name, At: p.now()}
	start := time.Now()
	resp, body, err := p.client.Raw(ctx, probe.Method, probe.Path, probe.Body)
	elapsed := time.Since(start)
	if err != nil {
		p.logger.Warn().Err(err).Str("suite", string(s)).Str("probe", probe.Name).Msg("probe falhou")
		res.Outcome = Failure{Err: err}
		return res
	}
	p.logger.Debug().Str("suite", string(s)).Str("probe", probe.Name).
		Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("probe concluída")

	success := Success{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode), Elapsed: elapsed}
	if json.Valid(body) {
		success.Body = body
	}
	res.Outcome = success
	return res
}

// Results devolve uma cópia do histórico acumulado.
func (p *Panel) Results() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Result(nil), p.results...)
}

func (p *Panel) Clear() {
	p.mu.Lock()
	p.results = nil
	p.mu.Unlock()
}
