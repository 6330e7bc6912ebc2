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

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
)

type deletedEvent struct {
	Message      string         `json:"message"`
	DeletedEvent fixtures.Event `json:"deletedEvent"`
}

func (h *Handlers) listEvents(_ context.Context, req *api.Request) api.Result {
	out := fixtures.FilterEvents(h.store.Events(), req.QueryValue("search"),
		req.QueryValue("startDate"), req.QueryValue("endDate"))
	return api.OK(out, delayEventsList)
}

func (h *Handlers) getEvent(_ context.Context, req *api.Request) api.Result {
	ev, err := h.store.Event(req.Param("id"))
	if err != nil {
		return api.Fail(api.EventNotFound(), delayEventGet)
	}
	return api.OK(ev, delayEventGet)
}

func (h *Handlers) createEvent(_ context.Context, req *api.Request) api.Result {
	if _, apiErr := decodeObject(req); apiErr != nil {
		return api.Fail(apiErr, 0)
	}
	var ev fixtures.Event
	if err := json.Unmarshal(req.Body, &ev); err != nil {
		return api.Fail(api.InvalidJSON(), 0)
	}
	if ev.Priority == "" {
		ev.Priority = "medium"
	}
	if apiErr := h.check(ev); apiErr != nil {
		return api.Fail(apiErr, 0)
	}

	ev.ID = h.opts.EventID()
	ev.CreatedAt = h.now()
	ev.UpdatedAt = ev.CreatedAt

	created, err := h.store.AddEvent(ev)
	switch {
	case errors.Is(err, fixtures.ErrTimeConflict):
		return api.Fail(api.TimeConflict(), 0)
	case err != nil:
		return api.Fail(api.Internal(err.Error()), 0)
	}
	return api.JSON(http.StatusCreated, created, delayEventCreate)
}

// updateEvent mescla o corpo no evento gravado; o candidato resultante é
// validado e verificado contra conflitos, excluindo ele mesmo.
func (h *Handlers) updateEvent(_ context.Context, req *api.Request) api.Result {
	if _, apiErr := decodeObject(req); apiErr != nil {
		return api.Fail(apiErr, 0)
	}

	var failure *api.Error
	updated, err := h.store.UpdateEvent(req.Param("id"), func(ev *fixtures.Event) error {
		if err := json.Unmarshal(req.Body, ev); err != nil {
			failure = api.InvalidJSON()
			return failure
		}
		if failure = h.check(*ev); failure != nil {
			return failure
		}
		ev.UpdatedAt = h.now()
		return nil
	})
	switch {
	case errors.Is(err, fixtures.ErrNotFound):
		return api.Fail(api.EventNotFound(), 0)
	case errors.Is(err, fixtures.ErrTimeConflict):
		return api.Fail(api.TimeConflict(), 0)
	case failure != nil:
		return api.Fail(failure, 0)
	case err != nil:
		return api.Fail(api.Internal(err.Error()), 0)
	}
	return api.OK(updated, delayEventUpdate)
}

func (h *Handlers) deleteEvent(_ context.Context, req *api.Request) api.Result {
	ev, err := h.store.DeleteEvent(req.Param("id"))
	if err != nil {
		return api.Fail(api.EventNotFound(), delayEventDelete)
	}
	return api.OK(deletedEvent{Message: "Event deleted successfully", DeletedEvent: ev}, delayEventDelete)
}
