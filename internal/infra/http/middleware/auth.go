package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/response"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type TokenVerifier interface {
	Parse(token string) (entity.Identity, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, id entity.Identity) (bool, error)
}

// Authenticate accepts a bearer token or the session cookie and attaches the
// caller identity to the request context. denylist may be nil.
func Authenticate(verifier TokenVerifier, denylist RevocationChecker, cookieName string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cookieName)
			if token == "" {
				RecordAuthFailure("missing_token")
				response.Fail(w, http.StatusUnauthorized, usecase.CodeUnauthorized, "authentication required", "")
				return
			}

			id, err := verifier.Parse(token)
			if err != nil {
				RecordAuthFailure("invalid_token")
				response.Fail(w, http.StatusUnauthorized, usecase.CodeUnauthorized, "invalid or expired token", "")
				return
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(r.Context(), id)
				if err != nil {
					log.Error("token denylist unavailable", map[string]interface{}{"error": err})
					response.Fail(w, http.StatusServiceUnavailable, usecase.CodeInternal, "authentication temporarily unavailable", "")
					return
				}
				if revoked {
					RecordAuthFailure("revoked_token")
					response.Fail(w, http.StatusUnauthorized, usecase.CodeUnauthorized, "token has been revoked", "")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(entity.WithIdentity(r.Context(), id)))
		})
	}
}

func RequirePermission(p entity.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := entity.IdentityFrom(r.Context())
			if !ok {
				response.Fail(w, http.StatusUnauthorized, usecase.CodeUnauthorized, "authentication required", "")
				return
			}
			if !id.Can(p) {
				RecordAuthFailure("forbidden")
				response.Fail(w, http.StatusForbidden, usecase.CodeForbidden, "insufficient permissions", string(p))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			return c.Value
		}
	}
	return ""
}
