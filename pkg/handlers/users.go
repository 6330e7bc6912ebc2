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
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
)

type deletedUser struct {
	Message       string `json:"message"`
	DeletedUserID int    `json:"deletedUserId"`
}

type userSearchResult struct {
	Users []fixtures.User `json:"users"`
}

func (h *Handlers) listUsers(_ context.Context, _ *api.Request) api.Result {
	users := h.store.Users()
	out := make([]fixtures.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return api.OK(out, delayUsersList)
}

func (h *Handlers) searchUsers(_ context.Context, req *api.Request) api.Result {
	found := fixtures.SearchUsers(h.store.Users(), req.QueryValue("q"))
	for i := range found {
		found[i] = found[i].Summary()
	}
	return api.OK(userSearchResult{Users: found}, delayUsersSearch)
}

func (h *Handlers) getUser(_ context.Context, req *api.Request) api.Result {
	id, err := strconv.Atoi(req.Param("id"))
	if err != nil {
		return api.Fail(api.UserNotFound(), delayUserNotFound)
	}
	u, err := h.store.User(id)
	if err != nil {
		return api.Fail(api.UserNotFound(), delayUserNotFound)
	}
	return api.OK(u, delayUserFound)
}

func (h *Handlers) createUser(_ context.Context, req *api.Request) api.Result {
	if _, apiErr := decodeObject(req); apiErr != nil {
		return api.Fail(apiErr, 0)
	}
	var u fixtures.User
	if err := json.Unmarshal(req.Body, &u); err != nil {
		return api.Fail(api.InvalidJSON(), 0)
	}
	if u.Role == "" {
		u.Role = "user"
	}
	if apiErr := h.check(u); apiErr != nil {
		return api.Fail(apiErr, 0)
	}
	u.CreatedAt = h.now()
	u.UpdatedAt = ""

	created, err := h.store.AddUser(u, h.opts.UserID)
	if err != nil {
		return api.Fail(api.Internal(err.Error()), 0)
	}
	return api.JSON(http.StatusCreated, created, delayUserCreate)
}

// updateUser mescla os campos enviados no usuário gravado.
func (h *Handlers) updateUser(_ context.Context, req *api.Request) api.Result {
	if _, apiErr := decodeObject(req); apiErr != nil {
		return api.Fail(apiErr, 0)
	}
	id, err := strconv.Atoi(req.Param("id"))
	if err != nil {
		return api.Fail(api.UserNotFound(), delayUserNotFound)
	}

	var failure *api.Error
	updated, err := h.store.UpdateUser(id, func(u *fixtures.User) error {
		if err := json.Unmarshal(req.Body, u); err != nil {
			failure = api.InvalidJSON()
			return failure
		}
		if failure = h.check(*u); failure != nil {
			return failure
		}
		u.UpdatedAt = h.now()
		return nil
	})
	switch {
	case errors.Is(err, fixtures.ErrNotFound):
		return api.Fail(api.UserNotFound(), delayUserNotFound)
	case failure != nil:
		return api.Fail(failure, 0)
	case err != nil:
		return api.Fail(api.Internal(err.Error()), 0)
	}
	return api.OK(updated, delayUserUpdate)
}

func (h *Handlers) deleteUser(_ context.Context, req *api.Request) api.Result {
	raw := req.Param("id")
	id, convErr := strconv.Atoi(raw)

	if !h.opts.DeleteMutates {
		// modo legado: nada é removido e a resposta é sempre 200
		return api.OK(deletedUser{Message: "User deleted successfully", DeletedUserID: id}, delayUserDelete)
	}

	if convErr != nil {
		return api.Fail(api.UserNotFound(), delayUserNotFound)
	}
	if _, err := h.store.DeleteUser(id); err != nil {
		return api.Fail(api.UserNotFound(), delayUserNotFound)
	}
	return api.OK(deletedUser{Message: "User deleted successfully", DeletedUserID: id}, delayUserDelete)
}
