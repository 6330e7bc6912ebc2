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
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/intercept"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
	"github.com/rs/zerolog"
)

// CodeUpstream identifica falhas ao repassar para o upstream real.
const CodeUpstream api.Code = "UPSTREAM_ERROR"

// Fallback atende requisições não tratadas (ex: proxy.Forwarder.Forward).
type Fallback func(ctx context.Context, in api.Inbound) (*responder.Envelope, error)

// Gateway aplica a política de requisições não tratadas sobre o engine.
// É compartilhado pelo servidor HTTP e pelo handler Lambda.
type Gateway struct {
	Engine   intercept.Dispatcher
	Policy   intercept.Policy
	Fallback Fallback
	Logger   zerolog.Logger
}

// Serve devolve sempre um envelope, exceto em falhas de rede simuladas
// (responder.ErrNetworkFailure) e cancelamento do contexto.
func (g *Gateway) Serve(ctx context.Context, in api.Inbound) (*responder.Envelope, error) {
	env, err := g.Engine.Dispatch(ctx, in)
	if err == nil || !errors.Is(err, api.ErrUnhandled) {
		return env, err
	}

	msg := fmt.Sprintf("No handler for %s %s", in.Method, in.Path)
	switch g.Policy {
	case intercept.PolicyError:
		return errorEnvelope(api.NewError(http.StatusInternalServerError, api.CodeUnhandled, msg)), nil
	case intercept.PolicyBypass:
	default:
		g.Logger.Warn().Str("method", in.Method).Str("path", in.Path).Msg("requisição sem handler no mock")
	}

	if g.Fallback == nil {
		return errorEnvelope(api.NewError(http.StatusNotFound, api.CodeUnhandled, msg)), nil
	}
	env, err = g.Fallback(ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.Logger.Error().Err(err).Str("path", in.Path).Msg("falha no upstream")
		return errorEnvelope(api.NewError(http.StatusBadGateway, CodeUpstream, "Upstream request failed")), nil
	}
	return env, nil
}

func errorEnvelope(e *api.Error) *responder.Envelope {
	body, _ := json.Marshal(e)
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &responder.Envelope{
		Status:     e.Status,
		StatusText: http.StatusText(e.Status),
		Header:     header,
		Body:       body,
	}
}
