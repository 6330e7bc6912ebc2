package handlers

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/raywall/fast-mock-toolkit/pkg/api"
	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	h, _ := newTestHandlers(t)

	res := h.listUsers(context.Background(), get(nil, ""))
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, 500*time.Millisecond, res.Delay)

	users := res.Body.([]fixtures.User)
	require.Len(t, users, 5)
	for _, u := range users {
		assert.Nil(t, u.Profile, "listagem não inclui perfil")
	}
}

func TestSearchUsers(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	names := func(res api.Result) []string {
		var out []string
		for _, u := range res.Body.(userSearchResult).Users {
			out = append(out, u.Name)
		}
		return out
	}

	t.Run("substring em qualquer posição", func(t *testing.T) {
		res := h.searchUsers(ctx, get(nil, "q=김"))
		assert.Equal(t, []string{"김철수", "김아이유"}, names(res))
		assert.Equal(t, 300*time.Millisecond, res.Delay)
	})

	t.Run("não diferencia maiúsculas", func(t *testing.T) {
		h.store.AddUser(fixtures.User{Name: "Alice", Email: "a@example.com", Role: "user"}, func() int { return 77 })
		res := h.searchUsers(ctx, get(nil, "q=ALI"))
		assert.Equal(t, []string{"Alice"}, names(res))
	})

	t.Run("query vazia", func(t *testing.T) {
		res := h.searchUsers(ctx, get(nil, "q="))
		assert.Empty(t, res.Body.(userSearchResult).Users)
		assert.NotNil(t, res.Body.(userSearchResult).Users, "deve serializar como []")
	})
}

func TestGetUser(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	for id := 1; id <= 5; id++ {
		res := h.getUser(ctx, get(map[string]string{"id": strconv.Itoa(id)}, ""))
		require.Equal(t, http.StatusOK, res.Status)
		u := res.Body.(fixtures.User)
		assert.NotNil(t, u.Profile)
		assert.Equal(t, 200*time.Millisecond, res.Delay)
	}

	for _, id := range []string{"404", "abc"} {
		res := h.getUser(ctx, get(map[string]string{"id": id}, ""))
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, api.CodeUserNotFound, apiErr(t, res).Code)
		assert.Equal(t, 300*time.Millisecond, res.Delay)
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("cria com role padrão", func(t *testing.T) {
		h, store := newTestHandlers(t)
		res := h.createUser(ctx, withBody(nil, `{"name":"홍길동","email":"hong@example.com"}`))
		require.Equal(t, http.StatusCreated, res.Status)
		assert.Equal(t, 800*time.Millisecond, res.Delay)

		u := res.Body.(fixtures.User)
		assert.Equal(t, 500, u.ID)
		assert.Equal(t, "user", u.Role)
		assert.Equal(t, "2024-01-16T12:00:00.000Z", u.CreatedAt)

		stored, err := store.User(500)
		require.NoError(t, err)
		assert.Equal(t, "홍길동", stored.Name)
	})

	t.Run("campos obrigatórios", func(t *testing.T) {
		h, _ := newTestHandlers(t)
		for _, body := range []string{`{"name":"x"}`, `{"email":"x@example.com"}`, `{}`, `{"name":"","email":""}`} {
			res := h.createUser(ctx, withBody(nil, body))
			assert.Equal(t, http.StatusBadRequest, res.Status, body)
			assert.Equal(t, api.CodeValidation, apiErr(t, res).Code, body)
		}
	})

	t.Run("role inválida", func(t *testing.T) {
		h, _ := newTestHandlers(t)
		res := h.createUser(ctx, withBody(nil, `{"name":"x","email":"x@example.com","role":"root"}`))
		assert.Equal(t, api.CodeValidation, apiErr(t, res).Code)
	})

	t.Run("json malformado", func(t *testing.T) {
		h, _ := newTestHandlers(t)
		for _, body := range []string{`{"name":`, ``, `[1,2]`, `{"name":5}`} {
			res := h.createUser(ctx, withBody(nil, body))
			assert.Equal(t, http.StatusBadRequest, res.Status, body)
			assert.Equal(t, api.CodeInvalidJSON, apiErr(t, res).Code, body)
		}
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	h, store := newTestHandlers(t)

	t.Run("mescla campos", func(t *testing.T) {
		res := h.updateUser(ctx, withBody(map[string]string{"id": "2"}, `{"name":"이영희(수정)"}`))
		require.Equal(t, http.StatusOK, res.Status)
		assert.Equal(t, 600*time.Millisecond, res.Delay)

		u := res.Body.(fixtures.User)
		assert.Equal(t, 2, u.ID)
		assert.Equal(t, "이영희(수정)", u.Name)
		assert.Equal(t, "lee@example.com", u.Email)
		assert.Equal(t, "2024-01-16T12:00:00.000Z", u.UpdatedAt)

		stored, _ := store.User(2)
		assert.Equal(t, "이영희(수정)", stored.Name)
	})

	t.Run("id no corpo é ignorado", func(t *testing.T) {
		res := h.updateUser(ctx, withBody(map[string]string{"id": "3"}, `{"id":99}`))
		require.Equal(t, http.StatusOK, res.Status)
		assert.Equal(t, 3, res.Body.(fixtures.User).ID)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		res := h.updateUser(ctx, withBody(map[string]string{"id": "404"}, `{"name":"x"}`))
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, api.CodeUserNotFound, apiErr(t, res).Code)
	})

	t.Run("validação do resultado", func(t *testing.T) {
		res := h.updateUser(ctx, withBody(map[string]string{"id": "1"}, `{"role":"root"}`))
		assert.Equal(t, api.CodeValidation, apiErr(t, res).Code)
		stored, _ := store.User(1)
		assert.Equal(t, "admin", stored.Role)
	})

	t.Run("json malformado", func(t *testing.T) {
		res := h.updateUser(ctx, withBody(map[string]string{"id": "1"}, `nope`))
		assert.Equal(t, api.CodeInvalidJSON, apiErr(t, res).Code)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("remove o usuário", func(t *testing.T) {
		h, store := newTestHandlers(t)
		res := h.deleteUser(ctx, get(map[string]string{"id": "3"}, ""))
		require.Equal(t, http.StatusOK, res.Status)
		assert.Equal(t, 400*time.Millisecond, res.Delay)
		assert.Equal(t, deletedUser{Message: "User deleted successfully", DeletedUserID: 3}, res.Body)

		_, err := store.User(3)
		assert.ErrorIs(t, err, fixtures.ErrNotFound)

		again := h.deleteUser(ctx, get(map[string]string{"id": "3"}, ""))
		assert.Equal(t, http.StatusNotFound, again.Status)
		assert.Equal(t, 300*time.Millisecond, again.Delay)
	})

	t.Run("modo legado é idempotente", func(t *testing.T) {
		h, store := newTestHandlers(t)
		h.opts.DeleteMutates = false
		for i := 0; i < 3; i++ {
			res := h.deleteUser(ctx, get(map[string]string{"id": "42"}, ""))
			assert.Equal(t, http.StatusOK, res.Status)
			assert.Equal(t, 42, res.Body.(deletedUser).DeletedUserID)
		}
		res := h.deleteUser(ctx, get(map[string]string{"id": "1"}, ""))
		assert.Equal(t, http.StatusOK, res.Status)
		_, err := store.User(1)
		assert.NoError(t, err, "modo legado não remove")
	})
}
