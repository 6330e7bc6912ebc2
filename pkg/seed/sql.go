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
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"time"

	_ "github.com/lib/pq" // Driver Postgres
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
)

const (
	defaultSeedTable = "mock_seed"
	sqlTimeout       = 5 * time.Second
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func (l *Loader) loadSQL(ctx context.Context, source string) (fixtures.Dataset, error) {
	u, err := url.Parse(source)
	if err != nil {
		return fixtures.Dataset{}, fmt.Errorf("DSN postgres inválido: %w", err)
	}
	q := u.Query()
	table := q.Get("table")
	if table == "" {
		table = defaultSeedTable
	}
	if !tableName.MatchString(table) {
		return fixtures.Dataset{}, fmt.Errorf("nome de tabela inválido: %q", table)
	}
	q.Del("table")
	u.RawQuery = q.Encode()

	open := l.OpenDB
	if open == nil {
		open = sql.Open
	}
	db, err := open("postgres", u.String())
	if err != nil {
		return fixtures.Dataset{}, fmt.Errorf("erro ao abrir conexão SQL: %w", err)
	}
	defer db.Close()

	ctxDb, cancel := context.WithTimeout(ctx, sqlTimeout)
	defer cancel()

	rows, err := db.QueryContext(ctxDb, fmt.Sprintf("SELECT kind, payload FROM %s ORDER BY seq", table))
	if err != nil {
		return fixtures.Dataset{}, fmt.Errorf("erro na query SQL: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Kind, &rec.Payload); err != nil {
			return fixtures.Dataset{}, fmt.Errorf("erro ao ler linha: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return fixtures.Dataset{}, fmt.Errorf("erro ao iterar linhas: %w", err)
	}
	return Assemble(records)
}
