//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/journeys-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/journeys-backend/internal/app"
	authpkg "github.com/heartmarshall/journeys-backend/internal/auth"
	"github.com/heartmarshall/journeys-backend/internal/config"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/transport/middleware"
	"github.com/heartmarshall/journeys-backend/pkg/ctxutil"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Core   *app.Core
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-at-least-32-chars-long!!",
			JWTIssuer:      "test-issuer",
			AccessTokenTTL: 15 * time.Minute,
		},
		CORS: config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,OPTIONS", AllowedHeaders: "Authorization,Content-Type"},
		Moderation: config.ModerationConfig{
			BulkBatchSize:      5,
			BulkJobTimeout:     time.Minute,
			JobRetention:       time.Hour,
			ExportMaxRows:      1000,
			AuditRetentionDays: 365,
			WorkloadWindow:     30 * 24 * time.Hour,
			ResetsPerMinute:    100,
		},
	}
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg := testConfig()

	core := app.NewCore(cfg, pool, logger)
	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(app.NewHandler(cfg, pool, core, limiter, logger))
	t.Cleanup(func() {
		srv.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = core.Jobs.Wait(ctx)
	})

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Core:   core,
		jwt:    authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
	}
}

// token mints an access token for a fresh user with role.
func (ts *testServer) token(t *testing.T, role domain.Role) (string, domain.UserAccount) {
	t.Helper()
	u := testhelper.SeedUser(t, ts.Pool)
	return ts.tokenFor(t, u.ID, u.Email, role), u
}

// tokenFor mints an access token for an existing user.
func (ts *testServer) tokenFor(t *testing.T, id uuid.UUID, email string, role domain.Role) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(ctxutil.Identity{UserID: id, Email: email, Role: string(role)})
	require.NoError(t, err)
	return tok
}

// request sends a JSON request. body may be nil; token may be empty.
func (ts *testServer) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
