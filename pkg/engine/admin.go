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
package engine

import (
	"context"
	"net/http"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/router"
)

// Rotas administrativas, fora do namespace /api.
const (
	RouteAdminReset  = "admin.reset"
	RouteAdminRoutes = "admin.routes"
	AdminResetPath   = "/__mock/reset"
	AdminRoutesPath  = "/__mock/routes"
)

type routeInfo struct {
	Name    string `json:"name"`
	Method  string `json:"method"`
	Pattern string `json:"pattern"`
}

func registerAdmin(r *router.Router, rt *runtime) error {
	reset := func(_ context.Context, _ *api.Request) api.Result {
		rt.store.Reset()
		return api.OK(map[string]string{"message": "Mock state reset"}, 0)
	}
	list := func(_ context.Context, _ *api.Request) api.Result {
		routes := r.Routes()
		out := make([]routeInfo, 0, len(routes))
		for _, route := range routes {
			out = append(out, routeInfo{Name: route.Name, Method: route.Method, Pattern: route.Pattern})
		}
		return api.OK(out, 0)
	}

	if err := r.Handle(RouteAdminReset, http.MethodPost, AdminResetPath, reset); err != nil {
		return err
	}
	return r.Handle(RouteAdminRoutes, http.MethodGet, AdminRoutesPath, list)
}
