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
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/raywall/fast-mock-toolkit/pkg/cloud"
	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/raywall/fast-mock-toolkit/pkg/engine"
	"github.com/raywall/fast-mock-toolkit/pkg/intercept"
	"github.com/raywall/fast-mock-toolkit/pkg/proxy"
	"github.com/raywall/fast-mock-toolkit/pkg/transport"
)

var (
	configPath string
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
	sqsFactory    = func(ctx context.Context) (cloud.SQSClient, error) { return cloud.NewSQS(ctx) }
)

func init() {
	// .env é opcional; variáveis já exportadas têm precedência
	_ = godotenv.Load()
	configPath = os.Getenv("CONFIG_FILE_PATH")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run contém a lógica principal testável. Sem CONFIG_FILE_PATH o mock sobe
// com a configuração padrão.
func run(ctx context.Context, cfgPath string) error {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(ctx, cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	eng, err := engine.NewMockEngine(ctx, cfg, cfgPath)
	if err != nil {
		return err
	}

	gw, err := newGateway(cfg, eng)
	if err != nil {
		return err
	}

	if queue := cfg.Mock.ResetQueue; queue != "" {
		client, err := sqsFactory(ctx)
		if err != nil {
			return fmt.Errorf("falha ao criar cliente SQS: %w", err)
		}
		go transport.NewSQSResetter(client, queue, eng, eng.Logger).Start(ctx)
	}

	switch cfg.Service.Runtime {
	case "local":
		handler := transport.NewServerHandler(gw, cfg.Mock.RateLimit, eng.Logger)
		return serverStarter(ctx, cfg.Service.Port, handler, eng.Logger)
	case "lambda":
		handler := transport.NewLambdaHandler(gw, eng.Logger)
		lambdaStarter(handler.Handle)
		return nil
	default:
		return fmt.Errorf("runtime desconhecido: %s", cfg.Service.Runtime)
	}
}

func newGateway(cfg *config.MockConfig, eng *engine.MockEngine) (*transport.Gateway, error) {
	policy, err := intercept.ParsePolicy(cfg.Mock.Policy())
	if err != nil {
		return nil, err
	}
	gw := &transport.Gateway{Engine: eng, Policy: policy, Logger: eng.Logger}
	if cfg.Mock.Upstream != "" {
		fwd, err := proxy.NewForwarder(cfg.Mock.Upstream, cfg.Mock.GetUpstreamTimeout())
		if err != nil {
			return nil, err
		}
		gw.Fallback = fwd.Forward
	}
	return gw, nil
}
