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
package responder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/rules"
	"github.com/rs/zerolog"
)

// HeaderDelay informa ao cliente a latência simulada aplicada.
const HeaderDelay = "x-mock-delay-ms"

// ErrNetworkFailure sinaliza uma falha de transporte simulada: não existe
// status HTTP para entregar.
var ErrNetworkFailure = errors.New("responder: falha de rede simulada")

// Synthesizer aplica latência e monta o envelope de resposta. Headers extras
// podem ser configurados como expressões CEL sobre a requisição.
type Synthesizer struct {
	sleeper Sleeper
	headers map[string]cel.Program
	logger  zerolog.Logger
}

// NewSynthesizer compila os headers extras. Valores no formato ${expr} são
// avaliados; texto puro vira literal.
func NewSynthesizer(sleeper Sleeper, rm *rules.RuleManager, headers map[string]string) (*Synthesizer, error) {
	if sleeper == nil {
		sleeper = RealSleeper{}
	}
	s := &Synthesizer{sleeper: sleeper, headers: make(map[string]cel.Program, len(headers)), logger: zerolog.Nop()}
	if len(headers) > 0 && rm == nil {
		return nil, fmt.Errorf("headers dinâmicos exigem um RuleManager")
	}
	for name, raw := range headers {
		prg, err := rm.CompileProgram(normalizeExpression(raw))
		if err != nil {
			return nil, fmt.Errorf("erro ao compilar header '%s': %w", name, err)
		}
		s.headers[name] = prg
	}
	return s, nil
}

// WithLogger define onde são registrados os headers que falharam na avaliação.
func (s *Synthesizer) WithLogger(l zerolog.Logger) *Synthesizer {
	s.logger = l
	return s
}

// Synthesize espera a latência do resultado e devolve o envelope. Se o
// contexto for cancelado durante a espera o erro do contexto é devolvido.
// vars alimenta os headers dinâmicos e pode ser nil quando não há nenhum.
func (s *Synthesizer) Synthesize(ctx context.Context, res api.Result, vars map[string]interface{}) (*Envelope, error) {
	if err := s.sleeper.Sleep(ctx, res.Delay); err != nil {
		return nil, fmt.Errorf("latência simulada interrompida: %w", err)
	}
	if res.NetworkFailure {
		return nil, ErrNetworkFailure
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	env := &Envelope{
		Status:     status,
		StatusText: http.StatusText(status),
		Header:     make(http.Header),
		Delay:      res.Delay,
	}

	if res.Body != nil {
		body, err := json.Marshal(res.Body)
		if err != nil {
			return nil, fmt.Errorf("erro json marshal: %w", err)
		}
		env.Body = body
		env.Header.Set("Content-Type", "application/json")
	}
	env.Header.Set(HeaderDelay, strconv.FormatInt(res.Delay.Milliseconds(), 10))

	if vars == nil {
		vars = map[string]interface{}{}
	}
	for name, prg := range s.headers {
		out, _, err := prg.Eval(vars)
		if err != nil {
			// o handler já pode ter alterado o estado; só o header é descartado
			s.logger.Warn().Err(err).Str("header", name).Msg("header dinâmico ignorado")
			continue
		}
		env.Header.Set(name, fmt.Sprintf("%v", out.Value()))
	}
	for k, v := range res.Header {
		env.Header.Set(k, v)
	}
	return env, nil
}

func normalizeExpression(expr string) string {
	trimmed := strings.TrimSpace(expr)

	if strings.HasPrefix(trimmed, "${") && strings.HasSuffix(trimmed, "}") {
		return trimmed[2 : len(trimmed)-1]
	}
	if strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "\"") && strings.HasSuffix(trimmed, "\"") {
		return trimmed
	}
	return strconv.Quote(trimmed)
}
