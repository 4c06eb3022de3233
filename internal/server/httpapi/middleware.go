package httpapi

import (
	"context"
	"net/http"
	"strings"

	"insightboard/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// requireAccessToken validates the bearer access token and stores the acting
// user id in the request context. Handlers behind it can rely on UserID.
func (s *Server) requireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing access token")
			return
		}

		claims, err := auth.ParseAccessToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid access token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the acting user id placed in ctx by requireAccessToken.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
