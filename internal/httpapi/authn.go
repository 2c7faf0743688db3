package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"boardhub.org/internal/identity"
	"boardhub.org/internal/token"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// withAuth verifies the bearer token and attaches the subject's identity id
// to the request context. Failures short-circuit before any route logic.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing or invalid Authorization header")
			return
		}

		identityID, err := a.tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				writeError(w, http.StatusUnauthorized, "token expired")
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := identity.ContextWithIdentity(r.Context(), identityID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireIdentity returns the authenticated identity id or renders a 401.
func (a *API) requireIdentity(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := identity.IdentityFromContext(r.Context())
	if !ok || id == "" {
		writeError(w, http.StatusUnauthorized, "missing or invalid Authorization header")
		return "", false
	}
	return id, true
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(header, bearer) {
		return "", errors.New("invalid authorization scheme")
	}
	raw := strings.TrimSpace(header[len(bearer):])
	if raw == "" {
		return "", errors.New("missing bearer token")
	}
	return raw, nil
}
