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
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/rs/zerolog"
)

// LambdaHandler adapta eventos do API Gateway para o gateway do mock.
type LambdaHandler struct {
	gateway *Gateway
	logger  zerolog.Logger
}

func NewLambdaHandler(g *Gateway, logger zerolog.Logger) *LambdaHandler {
	return &LambdaHandler{gateway: g, logger: logger}
}

// Handle processa a requisição Lambda. Uma falha de rede simulada vira erro
// da invocação, que o API Gateway entrega como 502.
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	header := make(http.Header)
	for k, v := range req.Headers {
		header.Set(k, v)
	}
	for k, vs := range req.MultiValueHeaders {
		header.Del(k)
		for _, v := range vs {
			header.Add(k, v)
		}
	}

	corrID := header.Get(HeaderCorrelationID)
	if corrID == "" {
		corrID = uuid.NewString()
	}
	logger := h.logger.With().Str("correlation_id", corrID).Logger()
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers:    map[string]string{"Content-Type": "application/json", HeaderCorrelationID: corrID},
				Body:       `{"error":"Invalid base64 body","code":"INVALID_JSON"}`,
			}, nil
		}
		body = decoded
	}

	env, err := h.gateway.Serve(ctx, api.Inbound{
		Method:   strings.ToUpper(req.HTTPMethod),
		Path:     req.Path,
		RawQuery: lambdaQuery(req),
		Header:   header,
		Body:     body,
	})
	if err != nil {
		logger.Error().Err(err).Str("path", req.Path).Msg("lambda request failed")
		return events.APIGatewayProxyResponse{}, err
	}

	resp := events.APIGatewayProxyResponse{
		StatusCode: env.Status,
		Headers:    make(map[string]string, len(env.Header)+1),
		Body:       string(env.Body),
	}
	for k := range env.Header {
		resp.Headers[k] = env.Header.Get(k)
	}
	resp.Headers[HeaderCorrelationID] = corrID

	logger.Info().
		Str("method", req.HTTPMethod).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("lambda request completed")
	return resp, nil
}

// lambdaQuery reconstrói a query string; os valores múltiplos têm prioridade.
func lambdaQuery(req events.APIGatewayProxyRequest) string {
	q := url.Values{}
	for k, v := range req.QueryStringParameters {
		q.Set(k, v)
	}
	for k, vs := range req.MultiValueQueryStringParameters {
		q[k] = append([]string(nil), vs...)
	}
	return q.Encode()
}
