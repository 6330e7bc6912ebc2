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
package handlers

import (
	"context"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
)

const defaultHolidayYear = "2024"

// listHolidays devolve todos os feriados, ou só os do mês pedido.
func (h *Handlers) listHolidays(_ context.Context, req *api.Request) api.Result {
	year := req.QueryValue("year")
	if year == "" {
		year = defaultHolidayYear
	}
	out := fixtures.HolidaysInMonth(h.store.Holidays(), year, req.QueryValue("month"))
	return api.OK(out, delayHolidays)
}
