package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/habittrack/habittrack/internal/storage"
)

type habitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   *bool  `json:"completed,omitempty"`
}

type habitResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

func newHabitResponse(habit *storage.Habit) habitResponse {
	return habitResponse{
		ID:          habit.ID.String(),
		Name:        habit.Name,
		Description: habit.Description,
		Completed:   habit.Completed,
		CreatedAt:   habit.CreatedAt.Format(time.RFC3339),
	}
}

// CreateHabit handles POST /habits.
func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	if req.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "name is required"})
		return
	}

	habit := &storage.Habit{
		ID:          uuid.New(),
		UserID:      userFrom(r.Context()).ID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := h.habits.Create(r.Context(), habit); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, newHabitResponse(habit))
}

// ListHabits handles GET /habits.
func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := h.habits.ListByUser(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := make([]habitResponse, 0, len(habits))
	for i := range habits {
		resp = append(resp, newHabitResponse(&habits[i]))
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetHabit handles GET /habits/{id}. A habit owned by someone else is
// indistinguishable from a missing one.
func (h *Handler) GetHabit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid habit id"})
		return
	}

	habit, err := h.habits.GetForUser(r.Context(), userFrom(r.Context()).ID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newHabitResponse(habit))
}

// UpdateHabit handles PUT /habits/{id}. Absent fields keep their current
// values.
func (h *Handler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid habit id"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	habit, err := h.habits.GetForUser(r.Context(), userFrom(r.Context()).ID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if req.Name != nil {
		habit.Name = *req.Name
	}
	if req.Description != nil {
		habit.Description = *req.Description
	}
	if req.Completed != nil {
		habit.Completed = *req.Completed
	}

	if err := h.habits.Update(r.Context(), habit); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newHabitResponse(habit))
}

// DeleteHabit handles DELETE /habits/{id}.
func (h *Handler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid habit id"})
		return
	}

	if err := h.habits.DeleteForUser(r.Context(), userFrom(r.Context()).ID, id); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "habit deleted"})
}
