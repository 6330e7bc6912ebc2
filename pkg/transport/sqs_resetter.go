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
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/raywall/fast-mock-toolkit/pkg/cloud"
	"github.com/rs/zerolog"
)

// Ações aceitas nas mensagens da fila.
const (
	ActionReset  = "reset"
	ActionReload = "reload"
)

// Resetter é implementado pelo engine.
type Resetter interface {
	Reset()
	Reload(ctx context.Context) error
}

// SQSResetter escuta uma fila e reinicia o estado do mock a cada mensagem.
// O corpo pode ser o nome da ação ou {"action": "..."}; qualquer outra
// coisa equivale a reset.
type SQSResetter struct {
	client     cloud.SQSClient
	queueURL   string
	target     Resetter
	logger     zerolog.Logger
	retryDelay time.Duration
}

func NewSQSResetter(client cloud.SQSClient, queueURL string, target Resetter, logger zerolog.Logger) *SQSResetter {
	return &SQSResetter{
		client:     client,
		queueURL:   queueURL,
		target:     target,
		logger:     logger.With().Str("component", "sqs_resetter").Logger(),
		retryDelay: 5 * time.Second,
	}
}

// Start inicia o monitoramento (bloqueante).
func (s *SQSResetter) Start(ctx context.Context) {
	if s.queueURL == "" {
		s.logger.Warn().Msg("URL da fila SQS não configurada. Reset remoto desativado.")
		return
	}

	s.logger.Info().Str("queue", s.queueURL).Msg("Monitorando fila SQS para reset")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Parando monitoramento SQS")
			return
		default:
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueURL),
			MaxNumberOfMessages: 1,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Error().Err(err).Dur("retry_in", s.retryDelay).Msg("Erro no SQS")
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.retryDelay):
			}
			continue
		}

		for _, msg := range out.Messages {
			s.apply(ctx, aws.ToString(msg.Body))
			_, _ = s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(s.queueURL),
				ReceiptHandle: msg.ReceiptHandle,
			})
		}
	}
}

func (s *SQSResetter) apply(ctx context.Context, body string) {
	switch ParseAction(body) {
	case ActionReload:
		if err := s.target.Reload(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Falha no reload")
			return
		}
		s.logger.Info().Msg("Reload aplicado")
	default:
		s.target.Reset()
		s.logger.Info().Msg("Estado do mock restaurado")
	}
}

// ParseAction extrai a ação do corpo da mensagem.
func ParseAction(body string) string {
	body = strings.TrimSpace(body)
	var payload struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil && payload.Action != "" {
		body = payload.Action
	}
	if strings.EqualFold(body, ActionReload) {
		return ActionReload
	}
	return ActionReset
}
