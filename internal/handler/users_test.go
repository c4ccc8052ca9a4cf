package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	t.Parallel()

	t.Run("admin sees all users", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.register(t, "alice", "s3cret")
		_, adminToken := env.seedAdmin(t, "admin")

		var users []userResponse
		resp := env.do(t, http.MethodGet, "/users/", adminToken, nil, &users)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, users, 2)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		tokens := env.register(t, "alice", "s3cret")

		resp := env.do(t, http.MethodGet, "/users/", tokens.AccessToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		resp := env.do(t, http.MethodGet, "/users/", "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	t.Run("admin deletes another user", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.register(t, "alice", "s3cret")
		_, adminToken := env.seedAdmin(t, "admin")

		alice, err := env.users.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)

		resp := env.do(t, http.MethodDelete, "/users/"+alice.ID.String(), adminToken, nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		_, err = env.users.GetByID(context.Background(), alice.ID)
		assert.Error(t, err)
	})

	t.Run("self delete is a bad request not forbidden", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		admin, adminToken := env.seedAdmin(t, "admin")

		resp := env.do(t, http.MethodDelete, "/users/"+admin.ID.String(), adminToken, nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		// The account survives.
		_, err := env.users.GetByID(context.Background(), admin.ID)
		assert.NoError(t, err)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		tokens := env.register(t, "alice", "s3cret")

		resp := env.do(t, http.MethodDelete, "/users/"+uuid.NewString(), tokens.AccessToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, adminToken := env.seedAdmin(t, "admin")

		resp := env.do(t, http.MethodDelete, "/users/not-a-uuid", adminToken, nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, adminToken := env.seedAdmin(t, "admin")

		resp := env.do(t, http.MethodDelete, "/users/"+uuid.NewString(), adminToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
