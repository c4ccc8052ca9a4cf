package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createHabit(t *testing.T, env *testEnv, token, name string) habitResponse {
	t.Helper()

	var habit habitResponse
	resp := env.do(t, http.MethodPost, "/habits/", token,
		habitRequest{Name: name, Description: "daily"}, &habit)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return habit
}

func TestCreateHabit(t *testing.T) {
	t.Parallel()

	t.Run("creates habit for caller", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		tokens := env.register(t, "alice", "s3cret")

		habit := createHabit(t, env, tokens.AccessToken, "run")
		assert.Equal(t, "run", habit.Name)
		assert.Equal(t, "daily", habit.Description)
		assert.False(t, habit.Completed)
		assert.NotEmpty(t, habit.ID)
	})

	t.Run("name is required", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		tokens := env.register(t, "alice", "s3cret")

		resp := env.do(t, http.MethodPost, "/habits/", tokens.AccessToken,
			habitRequest{Description: "no name"}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		resp := env.do(t, http.MethodPost, "/habits/", "", habitRequest{Name: "run"}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListHabits(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	alice := env.register(t, "alice", "s3cret")
	bob := env.register(t, "bob", "s3cret")

	createHabit(t, env, alice.AccessToken, "run")
	createHabit(t, env, alice.AccessToken, "read")
	createHabit(t, env, bob.AccessToken, "swim")

	var habits []habitResponse
	resp := env.do(t, http.MethodGet, "/habits/", alice.AccessToken, nil, &habits)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Only the caller's habits come back.
	require.Len(t, habits, 2)
	for _, h := range habits {
		assert.NotEqual(t, "swim", h.Name)
	}
}

func TestGetHabit(t *testing.T) {
	t.Parallel()

	t.Run("owner reads own habit", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		tokens := env.register(t, "alice", "s3cret")
		created := createHabit(t, env, tokens.AccessToken, "run")

		var habit habitResponse
		resp := env.do(t, http.MethodGet, "/habits/"+created.ID, tokens.AccessToken, nil, &habit)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, created.ID, habit.ID)
	})

	t.Run("someone else's habit reads as missing", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		alice := env.register(t, "alice", "s3cret")
		bob := env.register(t, "bob", "s3cret")
		created := createHabit(t, env, alice.AccessToken, "run")

		resp := env.do(t, http.MethodGet, "/habits/"+created.ID, bob.AccessToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		tokens := env.register(t, "alice", "s3cret")

		resp := env.do(t, http.MethodGet, "/habits/not-a-uuid", tokens.AccessToken, nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateHabit(t *testing.T) {
	t.Parallel()

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		tokens := env.register(t, "alice", "s3cret")
		created := createHabit(t, env, tokens.AccessToken, "run")

		completed := true
		var updated habitResponse
		resp := env.do(t, http.MethodPut, "/habits/"+created.ID, tokens.AccessToken,
			map[string]any{"completed": completed}, &updated)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		assert.True(t, updated.Completed)
		assert.Equal(t, "run", updated.Name)
		assert.Equal(t, "daily", updated.Description)
	})

	t.Run("rename", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		tokens := env.register(t, "alice", "s3cret")
		created := createHabit(t, env, tokens.AccessToken, "run")

		var updated habitResponse
		resp := env.do(t, http.MethodPut, "/habits/"+created.ID, tokens.AccessToken,
			map[string]any{"name": "sprint"}, &updated)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "sprint", updated.Name)
	})

	t.Run("cannot update someone else's habit", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		alice := env.register(t, "alice", "s3cret")
		bob := env.register(t, "bob", "s3cret")
		created := createHabit(t, env, alice.AccessToken, "run")

		resp := env.do(t, http.MethodPut, "/habits/"+created.ID, bob.AccessToken,
			map[string]any{"name": "stolen"}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteHabit(t *testing.T) {
	t.Parallel()

	t.Run("owner deletes own habit", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		tokens := env.register(t, "alice", "s3cret")
		created := createHabit(t, env, tokens.AccessToken, "run")

		resp := env.do(t, http.MethodDelete, "/habits/"+created.ID, tokens.AccessToken, nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = env.do(t, http.MethodGet, "/habits/"+created.ID, tokens.AccessToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("cannot delete someone else's habit", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		alice := env.register(t, "alice", "s3cret")
		bob := env.register(t, "bob", "s3cret")
		created := createHabit(t, env, alice.AccessToken, "run")

		resp := env.do(t, http.MethodDelete, "/habits/"+created.ID, bob.AccessToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		// Still there for the owner.
		resp = env.do(t, http.MethodGet, "/habits/"+created.ID, alice.AccessToken, nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
