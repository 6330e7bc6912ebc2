// Package fastmock reúne um mock completo da API de usuários, posts, eventos
// e feriados, usado para desenvolver e testar clientes sem o backend real.
//
// Visão Geral:
// O mock intercepta requisições HTTP, encontra a rota correspondente,
// executa a regra de negócio sobre um estado em memória e devolve a resposta
// com uma latência simulada. Os mesmos handlers atendem três formas de uso:
// 1. Em processo (intercept): um http.RoundTripper instalado no *http.Client.
// 2. Servidor (transport + cmd/server): HTTP local ou AWS Lambda.
// 3. CLI (cmd/mockctl): validação de configuração, listagem de rotas e probes.
//
// Sub-Pacotes Principais:
//
// 1. fixtures:
//   - Store em memória com usuários, posts paginados, eventos e feriados.
//   - Detecção de conflito de horário entre eventos.
//
// 2. router, handlers, faults, responder:
//   - Roteamento com parâmetros de path (gorilla/mux).
//   - Regras de falha configuráveis em CEL (404, 409, 500, queda de rede).
//   - Envelope de resposta com latência simulada e cancelável.
//
// 3. engine:
//   - Monta tudo a partir do YAML (pkg/config) e da semente (pkg/seed:
//     arquivo, S3, DynamoDB, Redis ou Postgres).
//   - Reset e Reload do estado, inclusive via fila SQS.
//
// 4. client, panel:
//   - Cliente tipado dos endpoints e painel de probes que classifica cada
//     chamada como sucesso (houve resposta) ou falha (erro de transporte).
//
// DELETE de usuários:
// Por padrão (mock.delete_mutates ausente ou true) o DELETE remove o usuário,
// e a segunda chamada para o mesmo id responde 404. Para o comportamento
// legado, em que o DELETE apenas ecoa o id e repetir a chamada sempre
// devolve 200, configure mock.delete_mutates: false.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"log"
//		"net/http"
//
//		"github.com/raywall/fast-mock-toolkit/pkg/client"
//		"github.com/raywall/fast-mock-toolkit/pkg/engine"
//		"github.com/raywall/fast-mock-toolkit/pkg/intercept"
//		"github.com/rs/zerolog"
//	)
//
//	func main() {
//		ctx := context.Background()
//		eng, err := engine.NewMockEngine(ctx, nil, "")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		httpClient := &http.Client{}
//		restore := intercept.Install(httpClient, eng, intercept.PolicyWarn, zerolog.Nop())
//		defer restore()
//
//		api := client.New("http://localhost", httpClient)
//		user, err := api.GetUser(ctx, 1)
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("Usuário: %s", user.Name)
//	}
package fastmock
