package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/habittrack/habittrack/internal/auth"
	"github.com/habittrack/habittrack/internal/logger"
)

// sessionCookieTTL bounds how long an abandoned login attempt keeps its
// session cookie around; the state nonce itself expires sooner.
const sessionCookieTTL = 1800

// OAuthBegin handles GET /auth/{provider}/login. It binds a state nonce to
// the caller's session cookie and redirects to the provider.
func (h *Handler) OAuthBegin(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.oauth[chi.URLParam(r, "provider")]
	if !ok {
		h.respondError(w, r, auth.ErrUnknownProvider)
		return
	}

	sessionKey := h.sessionKey(r)
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    sessionKey,
		Path:     "/",
		MaxAge:   sessionCookieTTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	authURL, err := svc.Begin(r.Context(), sessionKey)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// OAuthCallback handles GET /auth/{provider}/callback. On success it
// redirects to the frontend with a token pair in the query string.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	svc, ok := h.oauth[provider]
	if !ok {
		h.respondError(w, r, auth.ErrUnknownProvider)
		return
	}

	cookie, err := r.Cookie(h.cfg.SessionCookieName)
	if err != nil {
		h.respondError(w, r, auth.ErrStateMismatch)
		return
	}

	query := r.URL.Query()
	user, err := svc.Callback(r.Context(), cookie.Value, query.Get("code"), query.Get("state"))
	if err != nil {
		h.log.ErrorContext(r.Context(), "oauth callback failed",
			logger.Error(err),
			logger.Provider(provider),
			logger.Component("handler"),
		)
		h.respondError(w, r, err)
		return
	}

	tokens, err := h.tokenPair(user)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	redirect := h.cfg.FrontendURL + "/oauth-success?" + url.Values{
		"token":   {tokens.AccessToken},
		"refresh": {tokens.RefreshToken},
	}.Encode()

	http.Redirect(w, r, redirect, http.StatusFound)
}

// sessionKey returns the caller's existing session identifier or mints a new
// one. The identifier only keys the state nonce; it carries no claims.
func (h *Handler) sessionKey(r *http.Request) string {
	if cookie, err := r.Cookie(h.cfg.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return uuid.NewString()
}
