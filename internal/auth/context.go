package auth

import (
	"context"
	"net/http"
	"strings"

	"chatbot-service/internal/domain"
)

// This package moves the caller's bearer credential from the request headers
// into the request context, where handlers pick it up.

// contextKey is a private type to avoid key collisions in the context.
type contextKey string

// CredentialKey is the context key the credential is stored under.
const CredentialKey = contextKey("credential")

// SetCredential returns a new request with the credential added to its context.
func SetCredential(r *http.Request, c domain.Credential) *http.Request {
	ctx := context.WithValue(r.Context(), CredentialKey, c)
	return r.WithContext(ctx)
}

// GetCredential retrieves the credential from the context.
// A missing credential is not an error here; the remote backend asks the user
// to sign in instead.
func GetCredential(ctx context.Context) domain.Credential {
	c, _ := ctx.Value(CredentialKey).(domain.Credential)
	return c
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) domain.Credential {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return domain.Credential(strings.TrimSpace(header[7:]))
}

// Credentials is middleware that stores the request's bearer token in the
// context. When the request has none, the server's own token is used, which
// may also be empty.
func Credentials(fallback domain.Credential) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := BearerToken(r)
			if c.IsZero() {
				c = fallback
			}
			next.ServeHTTP(w, SetCredential(r, c))
		})
	}
}
