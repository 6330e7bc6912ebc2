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
	"encoding/json"
	"fmt"

	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
)

// Tipos de registro aceitos pelas origens tabulares (DynamoDB scan e SQL).
const (
	KindUser     = "user"
	KindPost     = "post"
	KindPostPage = "post_page"
	KindEvent    = "event"
	KindHoliday  = "holiday"
)

// Record é uma linha de uma origem tabular: o tipo da entidade e o JSON dela.
type Record struct {
	Kind    string `dynamodbav:"kind"`
	Payload string `dynamodbav:"payload"`
}

type postPage struct {
	Page    int   `json:"page"`
	PostIDs []int `json:"postIds"`
}

// Assemble monta um dataset a partir de registros soltos. A ordem dos
// registros define a ordem de inserção no store.
func Assemble(records []Record) (fixtures.Dataset, error) {
	var ds fixtures.Dataset
	for i, rec := range records {
		raw := []byte(rec.Payload)
		var err error
		switch rec.Kind {
		case KindUser:
			var u fixtures.User
			if err = json.Unmarshal(raw, &u); err == nil {
				ds.Users = append(ds.Users, u)
			}
		case KindPost:
			var p fixtures.Post
			if err = json.Unmarshal(raw, &p); err == nil {
				ds.Posts = append(ds.Posts, p)
			}
		case KindPostPage:
			var pp postPage
			if err = json.Unmarshal(raw, &pp); err == nil {
				if ds.PostPages == nil {
					ds.PostPages = make(map[int][]int)
				}
				ds.PostPages[pp.Page] = pp.PostIDs
			}
		case KindEvent:
			var e fixtures.Event
			if err = json.Unmarshal(raw, &e); err == nil {
				ds.Events = append(ds.Events, e)
			}
		case KindHoliday:
			var h fixtures.Holiday
			if err = json.Unmarshal(raw, &h); err == nil {
				ds.Holidays = append(ds.Holidays, h)
			}
		default:
			return ds, fmt.Errorf("registro %d: tipo desconhecido %q", i, rec.Kind)
		}
		if err != nil {
			return ds, fmt.Errorf("registro %d (%s): %w", i, rec.Kind, err)
		}
	}
	return ds, nil
}
