package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/agenthq/internal/config"
	"github.com/deppfellow/agenthq/internal/server"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

type healthBody struct {
	Status      string                    `json:"status"`
	Environment string                    `json:"environment"`
	Checks      map[string]map[string]any `json:"checks"`
}

func runHealth(t *testing.T, h *HealthHandler) (int, healthBody) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	if err := h.CheckHealth(c); err != nil {
		t.Fatalf("check health: %v", err)
	}

	var body healthBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func checkResult(err error) func(context.Context) error {
	return func(context.Context) error { return err }
}

func TestHealthWithoutDependencies(t *testing.T) {
	code, body := runHealth(t, NewHealthHandler(newTestServer()))

	if code != http.StatusOK || body.Status != "healthy" {
		t.Fatalf("expected healthy 200, got %d %q", code, body.Status)
	}
	if body.Environment != "test" {
		t.Fatalf("unexpected environment %q", body.Environment)
	}
}

func TestHealthRequiredCheckFails(t *testing.T) {
	h := NewHealthHandler(newTestServer())
	h.checks = []healthCheck{
		{name: "database", required: true, run: checkResult(errors.New("connection refused"))},
	}

	code, body := runHealth(t, h)
	if code != http.StatusServiceUnavailable || body.Status != "unhealthy" {
		t.Fatalf("expected unhealthy 503, got %d %q", code, body.Status)
	}
	if body.Checks["database"]["error"] != "connection refused" {
		t.Fatalf("unexpected database check %v", body.Checks["database"])
	}
}

func TestHealthOptionalCheckFailureIsReported(t *testing.T) {
	h := NewHealthHandler(newTestServer())
	h.checks = []healthCheck{
		{name: "database", required: true, run: checkResult(nil)},
		{name: "redis", run: checkResult(errors.New("i/o timeout"))},
	}

	code, body := runHealth(t, h)
	if code != http.StatusOK || body.Status != "healthy" {
		t.Fatalf("optional failures must not fail health, got %d %q", code, body.Status)
	}
	if body.Checks["database"]["status"] != "healthy" {
		t.Fatalf("unexpected database check %v", body.Checks["database"])
	}
	if body.Checks["redis"]["status"] != "unhealthy" {
		t.Fatalf("unexpected redis check %v", body.Checks["redis"])
	}
}

func TestHealthCheckHonorsTimeout(t *testing.T) {
	h := NewHealthHandler(newTestServer())
	h.timeout = 20 * time.Millisecond
	h.checks = []healthCheck{
		{name: "database", required: true, run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}},
	}

	code, _ := runHealth(t, h)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on timeout, got %d", code)
	}
}

func TestHealthRedisCheck(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	s := newTestServer()
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = s.Redis.Close() })

	h := NewHealthHandler(s)

	code, body := runHealth(t, h)
	if code != http.StatusOK || body.Checks["redis"]["status"] != "healthy" {
		t.Fatalf("expected healthy redis, got %d %v", code, body.Checks)
	}

	mr.Close()

	code, body = runHealth(t, h)
	if code != http.StatusOK {
		t.Fatalf("redis is optional, got %d", code)
	}
	if body.Checks["redis"]["status"] != "unhealthy" {
		t.Fatalf("expected unhealthy redis, got %v", body.Checks["redis"])
	}
}

func TestHealthChecksDisabled(t *testing.T) {
	s := newTestServer()
	s.Config.Observability.HealthChecks.Enabled = false
	s.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = s.Redis.Close() })

	if checks := NewHealthHandler(s).checks; len(checks) != 0 {
		t.Fatalf("expected no checks, got %d", len(checks))
	}
}
