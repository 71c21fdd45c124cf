package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sports-program/backend/config"
	"sports-program/backend/internal/api/handler"
	"sports-program/backend/internal/repository"
	"sports-program/backend/internal/service"
	"sports-program/backend/pkg/jwt"
)

func newTestEngine(t *testing.T, checkErr error) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 3000, BodyLimitBytes: 1 << 20},
		Auth: config.AuthConfig{
			JWTSecret:       "router-test-secret-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: time.Hour,
			BcryptCost:      4,
		},
		RateLimit: config.RateLimitConfig{LoginLimit: 10, LoginWindow: time.Minute},
		Class:     config.ClassConfig{DefaultDuration: 60, DefaultMaxCapacity: 20, MaxCapacityLimit: 50},
	}
	logger := zap.NewNop()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, repository.NewRepository(nil), jwtMgr, nil, logger)
	h := handler.NewHandler(svc, func(ctx context.Context) error { return checkErr })

	return Setup(cfg, h, jwtMgr, nil, logger)
}

func do(engine http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSetup_Health(t *testing.T) {
	require.Equal(t, http.StatusOK, do(newTestEngine(t, nil), http.MethodGet, "/health", "").Code)
	require.Equal(t, http.StatusServiceUnavailable,
		do(newTestEngine(t, errors.New("db down")), http.MethodGet, "/health", "").Code)
}

func TestSetup_Metrics(t *testing.T) {
	w := do(newTestEngine(t, nil), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSetup_ProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestEngine(t, nil)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/applications/my"},
		{http.MethodGet, "/api/v1/applications/class/c-1"},
		{http.MethodGet, "/api/v1/applications/classes/available-for-trainers"},
		{http.MethodPatch, "/api/v1/applications/a-1/status"},
		{http.MethodGet, "/api/v1/classes/schedules/s-1"},
		{http.MethodGet, "/api/v1/classes/c-1/schedules"},
		{http.MethodGet, "/api/v1/classes/c-1/roster.xlsx"},
	}
	for _, p := range paths {
		w := do(engine, p.method, p.path, "")
		require.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestSetup_RoleGate(t *testing.T) {
	cfgAuth := &config.AuthConfig{JWTSecret: "router-test-secret-2026", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour}
	token, err := jwt.NewManager(cfgAuth).GenerateAccessToken("u-1", "s@example.com", "student")
	require.NoError(t, err)

	engine := newTestEngine(t, nil)
	for _, path := range []string{"/api/v1/applications", "/api/v1/users", "/api/v1/applications/class/c-1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equalf(t, http.StatusForbidden, w.Code, path)
	}
}

func TestSetup_LoginValidation(t *testing.T) {
	w := do(newTestEngine(t, nil), http.MethodPost, "/api/v1/auth/login", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "10001")
}
