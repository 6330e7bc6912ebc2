package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raywall/fast-mock-toolkit/pkg/engine"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/raywall/fast-mock-toolkit/pkg/graphql"
	"github.com/raywall/fast-mock-toolkit/pkg/handlers"
	"github.com/raywall/fast-mock-toolkit/pkg/intercept"
	"github.com/raywall/fast-mock-toolkit/pkg/metrics"
	"github.com/raywall/fast-mock-toolkit/pkg/responder"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	e, err := engine.NewMockEngine(context.Background(), nil, "",
		engine.WithSleeper(&responder.RecordingSleeper{}),
		engine.WithMetrics(&metrics.MemoryProvider{}),
		engine.WithLogger(zerolog.Nop()),
		engine.WithHandlerOptions(handlers.Options{UserID: func() int { return 42 }}),
	)
	require.NoError(t, err)

	httpClient := &http.Client{}
	t.Cleanup(intercept.Install(httpClient, e, intercept.PolicyError, zerolog.Nop()))
	return New("http://app.local/", httpClient)
}

func asAPIError(t *testing.T, err error) *APIError {
	t.Helper()
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "esperava *APIError, recebido %v", err)
	return apiErr
}

func TestClient_Users(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 5)
	assert.Nil(t, users[0].Profile)

	found, err := c.SearchUsers(ctx, "아이유")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	none, err := c.SearchUsers(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	u, err := c.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "김철수", u.Name)
	require.NotNil(t, u.Profile)

	_, err = c.GetUser(ctx, 999)
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "USER_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "User not found", apiErr.Message)
}

func TestClient_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	created, err := c.CreateUser(ctx, UserInput{Name: "테스트 사용자", Email: "test@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "user", created.Role)
	assert.NotEmpty(t, created.CreatedAt)

	_, err = c.CreateUser(ctx, UserInput{Email: "invalid@example.com"})
	assert.Equal(t, "VALIDATION_ERROR", asAPIError(t, err).Code)

	_, err = c.CreateUser(ctx, UserInput{Name: "김철수", Email: "kim@example.com"})
	assert.Equal(t, http.StatusConflict, asAPIError(t, err).Status)

	updated, err := c.UpdateUser(ctx, created.ID, UserInput{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)
	assert.Equal(t, "테스트 사용자", updated.Name)

	deleted, err := c.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.DeletedUserID)

	_, err = c.GetUser(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, asAPIError(t, err).Status)

	require.NoError(t, c.Reset(ctx))
	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)
}

func TestClient_Posts(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	first, err := c.ListPosts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := c.ListPosts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 3, second[0].ID)

	found, err := c.SearchPosts(ctx, "msw")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].ID)

	empty, err := c.SearchPosts(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestClient_Events(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	all, err := c.ListEvents(ctx, EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ranged, err := c.ListEvents(ctx, EventFilter{StartDate: "2024-01-10", EndDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	ev, err := c.GetEvent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "팀 회의", ev.Title)

	input := fixtures.Event{
		Title: "코드 리뷰", StartDate: "2024-02-05", EndDate: "2024-02-05",
		StartTime: "10:00", EndTime: "11:00", Category: "work",
	}
	created, err := c.CreateEvent(ctx, input)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "medium", created.Priority)

	clash := input
	clash.StartTime, clash.EndTime = "10:30", "11:30"
	_, err = c.CreateEvent(ctx, clash)
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "TIME_CONFLICT", apiErr.Code)

	moved, err := c.UpdateEvent(ctx, created.ID, map[string]string{"location": "회의실 B"})
	require.NoError(t, err)
	assert.Equal(t, "회의실 B", moved.Location)

	removed, err := c.DeleteEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.DeletedEvent.ID)

	_, err = c.GetEvent(ctx, created.ID)
	assert.Equal(t, "EVENT_NOT_FOUND", asAPIError(t, err).Code)
}

func TestClient_Holidays(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	all, err := c.ListHolidays(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	feb, err := c.ListHolidays(ctx, "2024", "2")
	require.NoError(t, err)
	require.Len(t, feb, 1)
	assert.Equal(t, "설날", feb[0].Title)
}

func TestClient_Synthetic(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	err := c.ServerError(ctx)
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "INTERNAL_ERROR", apiErr.Code)

	err = c.NetworkError(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, responder.ErrNetworkFailure)
	var apiErr2 *APIError
	assert.False(t, errors.As(err, &apiErr2))

	slow, err := c.Slow(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), slow.Delay)
}

func TestClient_GraphQL(t *testing.T) {
	c := newClient(t)

	resp, err := c.GraphQL(context.Background(), "", graphql.Request{Query: `{ user(id: 2) { name profile { location } } }`})
	require.NoError(t, err)
	assert.Empty(t, resp.Errors)

	var data struct {
		User struct {
			Name    string `json:"name"`
			Profile struct {
				Location string `json:"location"`
			} `json:"profile"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "이영희", data.User.Name)
	assert.Equal(t, "부산", data.User.Profile.Location)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	err := New(srv.URL, srv.Client()).ServerError(context.Background())
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Code)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
