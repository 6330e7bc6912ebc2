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
)

// Endpoints usados para exercitar o tratamento de erro e timeout do cliente.

func networkError(context.Context, *api.Request) api.Result {
	return api.NetworkError(0)
}

func serverError(context.Context, *api.Request) api.Result {
	return api.Fail(api.Internal("Internal server error"), 0)
}

type slowPayload struct {
	Message string `json:"message"`
	Delay   int64  `json:"delay"`
}

func slow(context.Context, *api.Request) api.Result {
	return api.OK(slowPayload{Message: "Slow response completed", Delay: delaySlow.Milliseconds()}, delaySlow)
}
