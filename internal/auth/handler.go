package auth

import (
	"errors"
	"net/http"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/httpjson"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

// Handler holds admin auth HTTP handlers.
type Handler struct {
	gate         *Gate
	secureCookie bool
}

func NewHandler(gate *Gate, secureCookie bool) *Handler {
	return &Handler{gate: gate, secureCookie: secureCookie}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sid, err := h.gate.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrMissingCredentials):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrAccessDenied):
		httpjson.Error(w, http.StatusUnauthorized, "access denied")
		return
	case err != nil:
		httpjson.Error(w, http.StatusServiceUnavailable, "login failed, please try again")
		return
	}

	// No MaxAge or Expires: the browser drops the cookie with the session.
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httpjson.Write(w, http.StatusOK, map[string]bool{"authenticated": true})
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		// Gate.Logout logs failures; the cookie is cleared either way.
		_ = h.gate.Logout(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		MaxAge:   -1,
	})
	httpjson.Write(w, http.StatusOK, map[string]bool{"authenticated": false})
}

// Session handles GET /api/auth/session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]bool{
		"authenticated": h.gate.State(r.Context(), SessionID(r)) == LoggedIn,
	})
}

// SessionID returns the admin session cookie value, or "".
func SessionID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
