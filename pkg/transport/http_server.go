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
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
	shutdownTimeout     = 5 * time.Second
)

type ctxKey string

// ContextKeyCorrID guarda o correlation id no contexto da requisição.
const ContextKeyCorrID ctxKey = "correlation_id"

// NewHTTPHandler serve o gateway. Falhas de rede simuladas derrubam a
// conexão sem resposta; outros erros viram 500 INTERNAL_ERROR.
func NewHTTPHandler(g *Gateway) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeAPIError(w, api.NewError(http.StatusBadRequest, api.CodeInvalidJSON, "Invalid request body"))
			return
		}
		defer r.Body.Close()

		env, err := g.Serve(r.Context(), api.Inbound{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		switch {
		case errors.Is(err, responder.ErrNetworkFailure):
			panic(http.ErrAbortHandler)
		case err != nil && r.Context().Err() != nil:
			// cliente desistiu durante a latência simulada
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("requisição interrompida")
			return
		case err != nil:
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("falha ao montar resposta")
			writeAPIError(w, api.Internal("Internal server error"))
			return
		}
		if err := env.WriteTo(w); err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("falha ao escrever resposta")
		}
	})
}

// writeAPIError grava o envelope {error, code} com o status do erro.
func writeAPIError(w http.ResponseWriter, e *api.Error) {
	_ = errorEnvelope(e).WriteTo(w)
}

// NewServerHandler monta o handler final com rate limit (opcional) e
// observabilidade.
func NewServerHandler(g *Gateway, rl config.RateLimitConf, logger zerolog.Logger) http.Handler {
	h := NewHTTPHandler(g)
	if rl.Enabled {
		h = RateLimitMiddleware(h, rate.NewLimiter(rate.Limit(rl.RPS), rl.Burst))
	}
	return ObservabilityMiddleware(h, logger)
}

// StartHTTPServer sobe o servidor e bloqueia até o contexto ser cancelado.
func StartHTTPServer(ctx context.Context, port int, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Servidor HTTP ouvindo em %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info().Msg("Encerrando servidor HTTP")
		return srv.Shutdown(shutdownCtx)
	}
}

// RateLimitMiddleware responde 429 quando o limiter esgota.
func RateLimitMiddleware(next http.Handler, limiter *rate.Limiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too many requests","code":"RATE_LIMITED"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- MIDDLEWARE DE OBSERVABILIDADE ---
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.Header().Set(HeaderLatency, strconv.FormatInt(time.Since(rw.startTime).Milliseconds(), 10))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// ObservabilityMiddleware propaga o correlation id, mede a latência e
// registra uma linha de log por requisição. Conexões abortadas aparecem
// com status 0.
func ObservabilityMiddleware(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		corrID := r.Header.Get(HeaderCorrelationID)
		if corrID == "" {
			corrID = uuid.NewString()
		}
		w.Header().Set(HeaderCorrelationID, corrID)

		reqLogger := logger.With().Str("correlation_id", corrID).Logger()
		ctx := reqLogger.WithContext(r.Context())
		ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

		wrapper := &responseWriterWrapper{ResponseWriter: w, startTime: start}

		defer func() {
			reqLogger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapper.statusCode).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Msg("request completed")
		}()

		next.ServeHTTP(wrapper, r.WithContext(ctx))
	})
}
