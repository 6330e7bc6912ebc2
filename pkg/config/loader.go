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
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/raywall/fast-mock-toolkit/pkg/cloud"
	"github.com/raywall/fast-mock-toolkit/pkg/config/injector"
	"gopkg.in/yaml.v3"
)

// Loader lê a configuração de um arquivo local ou do S3.
type Loader struct {
	validator *ConfigValidator
	injector  *injector.Injector
	// S3 é criado sob demanda quando nulo.
	S3 cloud.S3Getter
}

func NewLoader() *Loader {
	return &Loader{
		validator: NewValidator(),
		injector:  injector.New(),
	}
}

// Load é o atalho usado pelos binários.
func Load(ctx context.Context, source string) (*MockConfig, error) {
	return NewLoader().Load(ctx, source)
}

// Load detecta o esquema da fonte, interpola valores e valida.
func (l *Loader) Load(ctx context.Context, source string) (*MockConfig, error) {
	raw, err := l.read(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("falha leitura config (%s): %w", source, err)
	}
	return l.Parse(ctx, raw)
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "s3://") {
		client := l.S3
		if client == nil {
			c, err := cloud.NewS3(ctx)
			if err != nil {
				return nil, err
			}
			client = c
		}
		return cloud.FetchS3(ctx, client, source)
	}
	return os.ReadFile(strings.TrimPrefix(source, "file://"))
}

// Parse decodifica o YAML, aplica a injeção de variáveis e valida.
func (l *Loader) Parse(ctx context.Context, data []byte) (*MockConfig, error) {
	var cfg MockConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("YAML malformado: %w", err)
	}
	if err := l.injector.Inject(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("falha na injeção de variáveis: %w", err)
	}
	if err := l.validator.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validação da configuração falhou: %w", err)
	}
	return &cfg, nil
}
