package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListUsers handles GET /users (admin only).
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, newUserResponse(&users[i]))
	}

	respondJSON(w, http.StatusOK, resp)
}

// DeleteUser handles DELETE /users/{id} (admin only). Deleting the caller's
// own account is rejected with 400.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid user id"})
		return
	}

	if err := h.guard.AuthorizeUserDelete(userFrom(r.Context()), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
