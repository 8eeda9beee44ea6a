package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tanchoice/livestock/backend/internal/auth"
)

// TokenVerifier validates a bearer token and returns the user it carries.
// *auth.Service satisfies it; handler tests inject a stub.
type TokenVerifier interface {
	Verify(token string) (auth.User, error)
}

// NewBearerAuth returns a middleware that requires a valid "Authorization:
// Bearer <token>" header on every request it wraps. On success the
// authenticated user is placed in the request context for services and
// repos to read; on failure the request is rejected with 401 and the
// standard error envelope.
func NewBearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "authentication required")
				return
			}

			user, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// unauthorized writes the 401 error envelope shared with the handler package.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck — nothing to do if the client is gone.
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
