package middleware

import (
	"net/http"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/auth"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/httpjson"
)

// RequireAdmin lets a request through only when its session cookie maps
// to a live admin session. The check runs on every request.
func RequireAdmin(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate.State(r.Context(), auth.SessionID(r)) != auth.LoggedIn {
				httpjson.Error(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
