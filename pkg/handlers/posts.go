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
	"strconv"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
)

// listPosts devolve páginas fixas. Qualquer página além da primeira que
// exista na semente é servida com a latência maior; o resto cai na página 1.
func (h *Handlers) listPosts(_ context.Context, req *api.Request) api.Result {
	page, _ := strconv.Atoi(req.QueryValue("page"))
	posts, later := h.store.ServePage(page)
	if later {
		return api.OK(posts, delayPostsNextPage)
	}
	return api.OK(posts, delayPostsPage)
}

func (h *Handlers) searchPosts(_ context.Context, req *api.Request) api.Result {
	return api.OK(fixtures.SearchPosts(h.store.Posts(), req.QueryValue("q")), delayPostsSearch)
}
