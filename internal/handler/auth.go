package handler

import (
	"encoding/json"
	"net/http"

	"github.com/habittrack/habittrack/internal/auth"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func newUserResponse(user *auth.User) userResponse {
	return userResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     string(user.Role),
	}
}

// tokenPair issues an access+refresh pair for a resolved user.
func (h *Handler) tokenPair(user *auth.User) (tokenResponse, error) {
	access, err := h.tokens.IssueAccess(user.Username, user.Role)
	if err != nil {
		return tokenResponse{}, err
	}
	refresh, err := h.tokens.IssueRefresh(user.Username)
	if err != nil {
		return tokenResponse{}, err
	}
	return tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	user, err := h.passwords.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	tokens, err := h.tokenPair(user)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, tokens)
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	user, err := h.passwords.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	tokens, err := h.tokenPair(user)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh. A valid refresh token yields a fresh
// pair; the old refresh token stays valid until its expiry (stateless
// verification, no revocation tracking).
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	user, err := h.guard.RequireAuthenticated(r.Context(), req.RefreshToken)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	tokens, err := h.tokenPair(user)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tokens)
}

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newUserResponse(userFrom(r.Context())))
}
