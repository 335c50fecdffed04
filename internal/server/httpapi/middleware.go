package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/avolkov/passvault/internal/server/auth"
	"github.com/avolkov/passvault/internal/vaulterr"
)

type ctxKey int

const principalKey ctxKey = 1

func withPrincipal(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, principalKey, userID)
}

// principalFromContext returns the authenticated user id placed on the
// context by requireAuth.
func principalFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalKey).(string)
	return id, ok && id != ""
}

// requireAuth checks the Bearer token and adds the principal to the request
// context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			sendError(w, vaulterr.Unauthorized("missing bearer token"), "unauthorized")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			sendError(w, err, "unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), userID)))
	}
}

// postOnly rejects anything but POST before the handler runs.
func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			sendJSON(w, http.StatusMethodNotAllowed, errorResponse{
				StatusCode:   http.StatusMethodNotAllowed,
				ErrorMessage: "method not allowed",
				ErrorDetails: errorDetails{Type: "ValidationError", Cause: "only POST is supported"},
			})
			return
		}
		next.ServeHTTP(w, r)
	}
}
