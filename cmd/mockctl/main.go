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
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/raywall/fast-mock-toolkit/pkg/client"
	"github.com/raywall/fast-mock-toolkit/pkg/config"
	"github.com/raywall/fast-mock-toolkit/pkg/engine"
	"github.com/raywall/fast-mock-toolkit/pkg/intercept"
	"github.com/raywall/fast-mock-toolkit/pkg/observability"
	"github.com/raywall/fast-mock-toolkit/pkg/panel"
	"github.com/rs/zerolog"
)

const usage = "Comandos esperados: validate | routes | probe"

func main() {
	_ = godotenv.Load()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

// run devolve o código de saída do processo.
func run(ctx context.Context, args []string, out io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(out, usage)
		return 1
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(out)
		file := fs.String("file", "", "Caminho do arquivo YAML ou URI s3://")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *file == "" {
			fmt.Fprintln(out, "Erro: flag -file é obrigatória")
			return 1
		}
		return runValidate(ctx, *file, out)
	case "routes":
		fs := flag.NewFlagSet("routes", flag.ContinueOnError)
		fs.SetOutput(out)
		file := fs.String("file", "", "Configuração do mock (vazio usa a padrão)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		return runRoutes(ctx, *file, out)
	case "probe":
		fs := flag.NewFlagSet("probe", flag.ContinueOnError)
		fs.SetOutput(out)
		url := fs.String("url", "", "URL base do mock; vazio executa em processo")
		file := fs.String("file", "", "Configuração usada no modo em processo")
		suite := fs.String("suite", "all", "Suíte: basic, errors, crud, advanced, slow ou all")
		timeout := fs.Duration("timeout", 30*time.Second, "Timeout total das probes")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		return runProbe(ctx, *url, *file, *suite, *timeout, out)
	default:
		fmt.Fprintf(out, "Comando desconhecido: %s\n%s\n", args[0], usage)
		return 1
	}
}

func runValidate(ctx context.Context, path string, out io.Writer) int {
	cfg, err := config.Load(ctx, path)
	if err != nil {
		fmt.Fprintf(out, "Erro de carregamento/estrutura:\n%v\n", err)
		return 1
	}

	report, err := engine.Analyze(cfg)
	if err != nil {
		fmt.Fprintf(out, "Erro interno do analisador: %v\n", err)
		return 1
	}

	data, _ := json.MarshalIndent(report, "", "  ")
	fmt.Fprintln(out, string(data))
	if !report.Valid {
		return 1
	}
	return 0
}

// buildEngine monta um engine silencioso, sem métricas externas.
func buildEngine(ctx context.Context, path string) (*engine.MockEngine, error) {
	var cfg *config.MockConfig
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return engine.NewMockEngine(ctx, cfg, path,
		engine.WithLogger(zerolog.Nop()),
		engine.WithMetrics(&observability.NoopProvider{}),
	)
}

func runRoutes(ctx context.Context, path string, out io.Writer) int {
	eng, err := buildEngine(ctx, path)
	if err != nil {
		fmt.Fprintf(out, "Erro: %v\n", err)
		return 1
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMETHOD\tPATTERN")
	for _, r := range eng.Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Method, r.Pattern)
	}
	_ = tw.Flush()
	return 0
}

func runProbe(ctx context.Context, baseURL, path, suiteName string, timeout time.Duration, out io.Writer) int {
	suites, err := panel.ParseSuite(suiteName)
	if err != nil {
		fmt.Fprintf(out, "Erro: %v\n", err)
		return 1
	}

	httpClient := &http.Client{}
	if baseURL == "" {
		eng, err := buildEngine(ctx, path)
		if err != nil {
			fmt.Fprintf(out, "Erro: %v\n", err)
			return 1
		}
		defer intercept.Install(httpClient, eng, intercept.PolicyError, zerolog.Nop())()
		baseURL = "http://mock.local"
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p := panel.New(client.New(baseURL, httpClient), zerolog.Nop())
	for _, s := range suites {
		if _, err := p.Run(ctx, s); err != nil {
			fmt.Fprintf(out, "Erro na suíte %s: %v\n", s, err)
			return 1
		}
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUITE\tPROBE\tRESULT\tELAPSED")
	for _, r := range p.Results() {
		switch o := r.Outcome.(type) {
		case panel.Success:
			fmt.Fprintf(tw, "%s\t%s\t%d %s\t%s\n", r.Suite, r.Name, o.Status, o.StatusText, o.Elapsed.Round(time.Millisecond))
		case panel.Failure:
			fmt.Fprintf(tw, "%s\t%s\tFAILURE: %v\t-\n", r.Suite, r.Name, o.Err)
		}
	}
	_ = tw.Flush()
	return 0
}
