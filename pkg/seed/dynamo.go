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
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/fast-mock-toolkit/pkg/cloud"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
)

// Atributos padrão no modo item único; podem ser trocados por ?pk= e ?attr=.
const (
	defaultPartitionKey = "pk"
	defaultDataAttr     = "data"
)

func (l *Loader) loadDynamo(ctx context.Context, source string) (fixtures.Dataset, error) {
	u, err := url.Parse(source)
	if err != nil {
		return fixtures.Dataset{}, fmt.Errorf("URL DynamoDB inválida: %w", err)
	}
	table := u.Host
	if table == "" {
		return fixtures.Dataset{}, fmt.Errorf("URL DynamoDB sem tabela: %s", source)
	}

	if l.Dynamo == nil {
		client, err := cloud.NewDynamo(ctx)
		if err != nil {
			return fixtures.Dataset{}, err
		}
		l.Dynamo = client
	}

	if key := strings.TrimPrefix(u.Path, "/"); key != "" {
		return l.dynamoItem(ctx, table, key, u.Query())
	}
	return l.dynamoScan(ctx, table)
}

func (l *Loader) dynamoItem(ctx context.Context, table, key string, q url.Values) (fixtures.Dataset, error) {
	pk := q.Get("pk")
	if pk == "" {
		pk = defaultPartitionKey
	}
	attr := q.Get("attr")
	if attr == "" {
		attr = defaultDataAttr
	}

	out, err := l.Dynamo.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &table,
		Key: map[string]types.AttributeValue{
			pk: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fixtures.Dataset{}, fmt.Errorf("erro ao ler item do DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return fixtures.Dataset{}, fmt.Errorf("item %s não encontrado na tabela %s", key, table)
	}

	switch v := out.Item[attr].(type) {
	case *types.AttributeValueMemberB:
		return Decode(v.Value)
	case *types.AttributeValueMemberS:
		return Decode([]byte(v.Value))
	default:
		return fixtures.Dataset{}, fmt.Errorf("atributo %s ausente ou com tipo inválido", attr)
	}
}

// dynamoScan percorre a tabela inteira (paginando) lendo só kind e payload.
func (l *Loader) dynamoScan(ctx context.Context, table string) (fixtures.Dataset, error) {
	proj := expression.NamesList(expression.Name("kind"), expression.Name("payload"))
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return fixtures.Dataset{}, fmt.Errorf("erro ao montar projeção: %w", err)
	}

	var (
		records []Record
		lastKey map[string]types.AttributeValue
	)
	for {
		out, err := l.Dynamo.Scan(ctx, &dynamodb.ScanInput{
			TableName:                &table,
			ProjectionExpression:     expr.Projection(),
			ExpressionAttributeNames: expr.Names(),
			ExclusiveStartKey:        lastKey,
		})
		if err != nil {
			return fixtures.Dataset{}, fmt.Errorf("erro no scan do DynamoDB: %w", err)
		}

		var page []Record
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return fixtures.Dataset{}, fmt.Errorf("erro ao converter itens: %w", err)
		}
		records = append(records, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return Assemble(records)
}
