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
package seed

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/raywall/fast-mock-toolkit/pkg/cloud"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Loader carrega a massa de dados do mock a partir de uma origem.
//
// Origens aceitas:
//
//	""                          semente embutida (fixtures.DefaultDataset)
//	./seed.yaml, file://...     arquivo local em YAML ou JSON
//	s3://bucket/chave           objeto no S3
//	dynamodb://tabela/chave     item único com o documento inteiro
//	dynamodb://tabela           scan de registros (kind, payload)
//	redis://host:6379/0?key=k   documento inteiro numa chave string
//	postgres://...?table=t      registros (kind, payload) de uma tabela
//
// Os clientes são criados sob demanda e podem ser trocados nos testes.
type Loader struct {
	S3       cloud.S3Getter
	Dynamo   cloud.DynamoReader
	OpenDB   func(driver, dsn string) (*sql.DB, error)
	NewRedis func(opts *redis.Options) RedisGetter
}

func NewLoader() *Loader {
	return &Loader{}
}

// Load resolve a origem e devolve o dataset decodificado.
func (l *Loader) Load(ctx context.Context, source string) (fixtures.Dataset, error) {
	switch {
	case source == "":
		return fixtures.DefaultDataset(), nil
	case strings.HasPrefix(source, "s3://"):
		return l.loadS3(ctx, source)
	case strings.HasPrefix(source, "dynamodb://"):
		return l.loadDynamo(ctx, source)
	case strings.HasPrefix(source, "redis://"), strings.HasPrefix(source, "rediss://"):
		return l.loadRedis(ctx, source)
	case strings.HasPrefix(source, "postgres://"), strings.HasPrefix(source, "postgresql://"):
		return l.loadSQL(ctx, source)
	default:
		data, err := os.ReadFile(strings.TrimPrefix(source, "file://"))
		if err != nil {
			return fixtures.Dataset{}, fmt.Errorf("erro ao ler seed: %w", err)
		}
		return Decode(data)
	}
}

func (l *Loader) loadS3(ctx context.Context, source string) (fixtures.Dataset, error) {
	if l.S3 == nil {
		client, err := cloud.NewS3(ctx)
		if err != nil {
			return fixtures.Dataset{}, err
		}
		l.S3 = client
	}
	data, err := cloud.FetchS3(ctx, l.S3, source)
	if err != nil {
		return fixtures.Dataset{}, err
	}
	return Decode(data)
}

// Decode interpreta um documento completo. JSON é detectado pelo primeiro
// caractere; qualquer outra coisa é tratada como YAML.
func Decode(data []byte) (fixtures.Dataset, error) {
	var ds fixtures.Dataset
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ds, fmt.Errorf("seed vazio")
	}

	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &ds); err != nil {
			return ds, fmt.Errorf("erro ao decodificar seed JSON: %w", err)
		}
		return ds, nil
	}
	if err := yaml.Unmarshal(trimmed, &ds); err != nil {
		return ds, fmt.Errorf("erro ao decodificar seed YAML: %w", err)
	}
	return ds, nil
}
