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
package intercept

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
	"github.com/rs/zerolog"
)

// Dispatcher é o contrato do engine visto pelos adaptadores.
type Dispatcher interface {
	Dispatch(ctx context.Context, in api.Inbound) (*responder.Envelope, error)
}

// Transport é um http.RoundTripper que entrega as requisições ao mock em
// vez da rede. Falhas de rede simuladas viram erro do RoundTrip, que o
// http.Client devolve como *url.Error.
type Transport struct {
	Engine Dispatcher
	// Base atende as requisições não tratadas (bypass e warn).
	// Nil usa http.DefaultTransport.
	Base   http.RoundTripper
	Policy Policy
	Logger zerolog.Logger
	// Host restringe o mock a um único host ("api.local" ou "api.local:8080").
	// Requisições para outros hosts vão direto para o Base. Vazio intercepta tudo.
	Host string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.matchesHost(req.URL) {
		return t.base().RoundTrip(req)
	}

	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("intercept: erro ao ler body: %w", err)
		}
	}

	env, err := t.Engine.Dispatch(req.Context(), api.Inbound{
		Method:   req.Method,
		Path:     req.URL.Path,
		RawQuery: req.URL.RawQuery,
		Header:   req.Header.Clone(),
		Body:     body,
	})
	switch {
	case err == nil:
		return env.HTTPResponse(req), nil
	case errors.Is(err, api.ErrUnhandled):
		return t.unhandled(req, body)
	default:
		return nil, fmt.Errorf("intercept: %w", err)
	}
}

func (t *Transport) unhandled(req *http.Request, body []byte) (*http.Response, error) {
	switch t.Policy {
	case PolicyError:
		return nil, fmt.Errorf("%w: %s %s", ErrUnhandledRequest, req.Method, req.URL.String())
	case PolicyBypass:
	default:
		t.Logger.Warn().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Msg("requisição sem handler no mock, seguindo para a rede")
	}

	out := req.Clone(req.Context())
	out.Body = http.NoBody
	if len(body) > 0 {
		out.Body = io.NopCloser(bytes.NewReader(body))
	}
	out.ContentLength = int64(len(body))
	return t.base().RoundTrip(out)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

func (t *Transport) matchesHost(u *url.URL) bool {
	if t.Host == "" {
		return true
	}
	return strings.EqualFold(t.Host, u.Host) || strings.EqualFold(t.Host, u.Hostname())
}

// Install troca o transport do client pelo mock e devolve a função que
// restaura o original. O transport anterior vira o Base.
func Install(client *http.Client, engine Dispatcher, policy Policy, logger zerolog.Logger) (restore func()) {
	previous := client.Transport
	client.Transport = &Transport{
		Engine: engine,
		Base:   previous,
		Policy: policy,
		Logger: logger,
	}
	return func() { client.Transport = previous }
}
