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
package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
)

const userAgent = "FastMockToolkit/Passthrough"

// Headers hop-by-hop não são repassados ao upstream.
var hopHeaders = []string{
	"Connection", "Keep-Alive", "Proxy-Authenticate", "Proxy-Authorization",
	"Te", "Trailer", "Transfer-Encoding", "Upgrade",
}

// Forwarder repassa requisições não tratadas pelo mock para a API real.
type Forwarder struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
}

// NewForwarder valida a URL do upstream. Um caminho na URL base vira
// prefixo do caminho repassado.
func NewForwarder(upstream string, timeout time.Duration) (*Forwarder, error) {
	u, err := url.Parse(upstream)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upstream inválido: %q", upstream)
	}
	return &Forwarder{
		base:    u,
		client:  &http.Client{},
		timeout: timeout,
	}, nil
}

// Target monta a URL final no upstream.
func (f *Forwarder) Target(in api.Inbound) string {
	u := *f.base
	u.Path = strings.TrimSuffix(f.base.Path, "/") + in.Path
	u.RawQuery = in.RawQuery
	return u.String()
}

// Forward executa a chamada e devolve a resposta como envelope, sem
// latência simulada.
func (f *Forwarder) Forward(ctx context.Context, in api.Inbound) (*responder.Envelope, error) {
	reqCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	target := f.Target(in)
	req, err := http.NewRequestWithContext(reqCtx, strings.ToUpper(in.Method), target, bytes.NewReader(in.Body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar forward request: %w", err)
	}

	for k, vs := range in.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for _, h := range hopHeaders {
		req.Header.Del(h)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falha na conexão com upstream (%s): %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do upstream: %w", err)
	}

	header := resp.Header.Clone()
	for _, h := range hopHeaders {
		header.Del(h)
	}
	header.Del("Content-Length")

	return &responder.Envelope{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Header:     header,
		Body:       body,
	}, nil
}
