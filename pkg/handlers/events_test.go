package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventIDs(res api.Result) []string {
	var out []string
	for _, ev := range res.Body.([]fixtures.Event) {
		out = append(out, ev.ID)
	}
	return out
}

func TestListEvents(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	res := h.listEvents(ctx, get(nil, ""))
	assert.Equal(t, []string{"1", "2", "3"}, eventIDs(res))
	assert.Equal(t, 300*time.Millisecond, res.Delay)

	res = h.listEvents(ctx, get(nil, "search=Q1"))
	assert.Equal(t, []string{"2"}, eventIDs(res))

	res = h.listEvents(ctx, get(nil, "startDate=2024-01-10&endDate=2024-01-31"))
	assert.Equal(t, []string{"1", "2"}, eventIDs(res))

	res = h.listEvents(ctx, get(nil, "startDate=2024-01-10"))
	assert.Len(t, eventIDs(res), 3, "uma data só não filtra")
}

func TestGetEvent(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	res := h.getEvent(ctx, get(map[string]string{"id": "2"}, ""))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "프로젝트 마감", res.Body.(fixtures.Event).Title)

	res = h.getEvent(ctx, get(map[string]string{"id": "nope"}, ""))
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, api.CodeEventNotFound, apiErr(t, res).Code)
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("cria evento", func(t *testing.T) {
		h, store := newTestHandlers(t)
		res := h.createEvent(ctx, withBody(nil, `{"title":"점심","startDate":"2024-01-15","endDate":"2024-01-15","startTime":"12:00","endTime":"13:00","category":"개인"}`))
		require.Equal(t, http.StatusCreated, res.Status)
		assert.Equal(t, 500*time.Millisecond, res.Delay)

		ev := res.Body.(fixtures.Event)
		assert.Equal(t, "ev-new", ev.ID)
		assert.Equal(t, "medium", ev.Priority)
		assert.Equal(t, ev.CreatedAt, ev.UpdatedAt)

		_, err := store.Event("ev-new")
		assert.NoError(t, err)
	})

	t.Run("conflito de horário", func(t *testing.T) {
		h, store := newTestHandlers(t)
		res := h.createEvent(ctx, withBody(nil, `{"title":"겹침","startDate":"2024-01-15","endDate":"2024-01-15","startTime":"09:30","endTime":"10:30"}`))
		assert.Equal(t, http.StatusConflict, res.Status)
		assert.Equal(t, api.CodeTimeConflict, apiErr(t, res).Code)
		assert.Len(t, store.Events(), 3)
	})

	t.Run("outro dia não conflita", func(t *testing.T) {
		h, _ := newTestHandlers(t)
		res := h.createEvent(ctx, withBody(nil, `{"title":"x","startDate":"2024-01-16","endDate":"2024-01-16","startTime":"09:30","endTime":"10:30"}`))
		assert.Equal(t, http.StatusCreated, res.Status)
	})

	t.Run("validação", func(t *testing.T) {
		h, _ := newTestHandlers(t)
		bodies := []string{
			`{"startDate":"2024-01-16","endDate":"2024-01-16"}`,
			`{"title":"x","endDate":"2024-01-16"}`,
			`{"title":"x","startDate":"2024-01-16","endDate":"2024-01-16","startTime":"9h"}`,
			`{"title":"x","startDate":"2024-01-16","endDate":"2024-01-16","priority":"urgent"}`,
			`{"title":"x","startDate":"2024-01-16","endDate":"2024-01-16","notificationTime":-5}`,
		}
		for _, body := range bodies {
			res := h.createEvent(ctx, withBody(nil, body))
			assert.Equal(t, http.StatusBadRequest, res.Status, body)
			assert.Equal(t, api.CodeValidation, apiErr(t, res).Code, body)
		}
	})

	t.Run("json malformado", func(t *testing.T) {
		h, _ := newTestHandlers(t)
		res := h.createEvent(ctx, withBody(nil, `{"title"`))
		assert.Equal(t, api.CodeInvalidJSON, apiErr(t, res).Code)
	})
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()
	h, store := newTestHandlers(t)

	t.Run("mesmo horário não conflita consigo", func(t *testing.T) {
		res := h.updateEvent(ctx, withBody(map[string]string{"id": "1"}, `{"startDate":"2024-01-15","startTime":"09:00","endTime":"10:00","title":"팀 회의 v2"}`))
		require.Equal(t, http.StatusOK, res.Status)
		assert.Equal(t, 400*time.Millisecond, res.Delay)
		ev := res.Body.(fixtures.Event)
		assert.Equal(t, "팀 회의 v2", ev.Title)
		assert.Equal(t, "회의실 A", ev.Location, "campos não enviados são mantidos")
	})

	t.Run("mover para horário ocupado", func(t *testing.T) {
		res := h.updateEvent(ctx, withBody(map[string]string{"id": "2"}, `{"startDate":"2024-01-15","startTime":"09:30","endTime":"11:00"}`))
		assert.Equal(t, http.StatusConflict, res.Status)
		ev, _ := store.Event("2")
		assert.Equal(t, "2024-01-20", ev.StartDate)
	})

	t.Run("evento inexistente", func(t *testing.T) {
		res := h.updateEvent(ctx, withBody(map[string]string{"id": "x"}, `{"title":"x"}`))
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, api.CodeEventNotFound, apiErr(t, res).Code)
	})

	t.Run("resultado inválido", func(t *testing.T) {
		res := h.updateEvent(ctx, withBody(map[string]string{"id": "1"}, `{"title":""}`))
		assert.Equal(t, api.CodeValidation, apiErr(t, res).Code)
	})
}

func TestDeleteEvent(t *testing.T) {
	h, store := newTestHandlers(t)
	ctx := context.Background()

	res := h.deleteEvent(ctx, get(map[string]string{"id": "3"}, ""))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, 300*time.Millisecond, res.Delay)
	body := res.Body.(deletedEvent)
	assert.Equal(t, "Event deleted successfully", body.Message)
	assert.Equal(t, "신정", body.DeletedEvent.Title)
	assert.Len(t, store.Events(), 2)

	res = h.deleteEvent(ctx, get(map[string]string{"id": "3"}, ""))
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestListHolidays(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	count := func(query string) int {
		res := h.listHolidays(ctx, get(nil, query))
		return len(res.Body.([]fixtures.Holiday))
	}

	assert.Equal(t, 3, count(""))
	assert.Equal(t, 1, count("month=2"))
	assert.Equal(t, 1, count("year=2024&month=03"))
	assert.Equal(t, 0, count("year=2025&month=1"))
	assert.Equal(t, 0, count("month=12"))
}
