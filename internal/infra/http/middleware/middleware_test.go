package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

type stubVerifier struct {
	id  entity.Identity
	err error
}

func (s stubVerifier) Parse(string) (entity.Identity, error) { return s.id, s.err }

type stubDenylist struct {
	revoked bool
	err     error
}

func (s stubDenylist) IsRevoked(context.Context, entity.Identity) (bool, error) {
	return s.revoked, s.err
}

var rep = entity.Identity{UserID: "user-1", Role: entity.RoleSalesRep, TokenID: "jti-1"}

func echoIdentity(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := entity.IdentityFrom(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(id.UserID))
	})
}

func TestAuthenticate(t *testing.T) {
	log := logger.NewNoOpLogger()

	t.Run("bearer header", func(t *testing.T) {
		h := Authenticate(stubVerifier{id: rep}, stubDenylist{}, "token", log)(echoIdentity(t))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		h := Authenticate(stubVerifier{id: rep}, nil, "token", log)(echoIdentity(t))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	tests := []struct {
		name     string
		verifier stubVerifier
		deny     stubDenylist
		header   string
		status   int
	}{
		{"missing token", stubVerifier{id: rep}, stubDenylist{}, "", http.StatusUnauthorized},
		{"wrong scheme", stubVerifier{id: rep}, stubDenylist{}, "Basic abc", http.StatusUnauthorized},
		{"invalid token", stubVerifier{err: errors.New("bad")}, stubDenylist{}, "Bearer abc", http.StatusUnauthorized},
		{"revoked", stubVerifier{id: rep}, stubDenylist{revoked: true}, "Bearer abc", http.StatusUnauthorized},
		{"denylist down", stubVerifier{id: rep}, stubDenylist{err: errors.New("redis")}, "Bearer abc", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { t.Fatal("next must not run") })
			h := Authenticate(tt.verifier, tt.deny, "token", log)(next)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	guard := RequirePermission(entity.PermLeadsDelete)(ok)

	serve := func(ctx context.Context) int {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil).WithContext(ctx))
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
	assert.Equal(t, http.StatusForbidden, serve(entity.WithIdentity(context.Background(), rep)))
	manager := entity.Identity{UserID: "m", Role: entity.RoleManager}
	assert.Equal(t, http.StatusNoContent, serve(entity.WithIdentity(context.Background(), manager)))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Now()
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.Allow("1.1.1.1"))

	now = now.Add(5 * time.Minute)
	rl.sweep()
	assert.Empty(t, rl.visitors)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", ClientIP(req))

	req.Header.Set("X-Real-IP", "9.9.9.9")
	assert.Equal(t, "9.9.9.9", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "8.8.8.8, 10.0.0.2")
	assert.Equal(t, "8.8.8.8", ClientIP(req))
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/leads/{leadId}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/leads/{leadId}", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/leads/abc", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/leads/{leadId}", "418"))

	assert.Equal(t, before+1, after)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(scoreRecalculations.WithLabelValues("interaction"))
	RecordScoreRecalculation("interaction")
	assert.Equal(t, before+1, testutil.ToFloat64(scoreRecalculations.WithLabelValues("interaction")))

	o := testutil.ToFloat64(scoreOverrides)
	RecordScoreOverride()
	assert.Equal(t, o+1, testutil.ToFloat64(scoreOverrides))
}

func TestAccessLog(t *testing.T) {
	h := AccessLog(logger.NewTestLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
