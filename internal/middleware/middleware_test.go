package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/agenthq/internal/config"
	"github.com/deppfellow/agenthq/internal/errs"
	"github.com/deppfellow/agenthq/internal/server"
	"github.com/deppfellow/agenthq/internal/sqlerr"
)

func newTestServer(rateLimit float64) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          rateLimit,
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newTestEcho(s *server.Server) *echo.Echo {
	m := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.Use(
		RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		m.RateLimit.Limit(),
	)
	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	e := newTestEcho(newTestServer(0))
	var seen string
	e.GET("/ping", func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	got := rec.Header().Get(RequestIDHeader)
	if got == "" || got != seen {
		t.Fatalf("expected generated id to be echoed, header %q, context %q", got, seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("incoming id should be reused, got %q", got)
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing row",
			err:        sqlerr.WithTable("items", fmt.Errorf("get: %w", pgx.ErrNoRows)),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Item not found",
		},
		{
			name:       "http error",
			err:        errs.NewUnprocessableEntityError("Validation failed", true, nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Validation failed",
		},
		{
			name:       "echo error",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			wantStatus: http.StatusMethodNotAllowed,
			wantMsg:    "Method Not Allowed",
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(newTestServer(0))
			e.GET("/fail", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			body := decodeError(t, rec)
			if body.Message != tt.wantMsg || body.Status != tt.wantStatus {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestGlobalErrorHandlerUnknownRoute(t *testing.T) {
	e := newTestEcho(newTestServer(0))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Message != "Route not found" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestGlobalErrorHandlerHead(t *testing.T) {
	e := newTestEcho(newTestServer(0))
	e.HEAD("/fail", func(c echo.Context) error { return errs.NewNotFoundError("Item not found", true, nil) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/fail", nil))

	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Fatalf("expected bodiless 404, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	e := newTestEcho(newTestServer(1))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/items", ok)
	e.GET("/health", ok)

	serve := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve("/items"); code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", code)
	}
	if code := serve("/items"); code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", code)
	}
	for i := 0; i < 3; i++ {
		if code := serve("/health"); code != http.StatusOK {
			t.Fatalf("health must never be limited, got %d", code)
		}
	}
}

func TestRateLimitDisabled(t *testing.T) {
	e := newTestEcho(newTestServer(0))
	e.GET("/items", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d limited with rate limiting off: %d", i, rec.Code)
		}
	}
}

func TestStatusFromError(t *testing.T) {
	if got := statusFromError(errs.NewNotFoundError("x", false, nil)); got != http.StatusNotFound {
		t.Fatalf("got %d", got)
	}
	if got := statusFromError(echo.ErrMethodNotAllowed); got != http.StatusMethodNotAllowed {
		t.Fatalf("got %d", got)
	}
	if got := statusFromError(errors.New("x")); got != http.StatusInternalServerError {
		t.Fatalf("got %d", got)
	}
}

func TestEnhanceContextCarriesLoggerInRequestContext(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(0)
	logger := zerolog.New(&buf)
	s.Logger = &logger

	e := newTestEcho(s)
	e.GET("/ping", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from context")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "ctx-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	out := buf.String()
	if !strings.Contains(out, `"message":"from context"`) || !strings.Contains(out, `"request_id":"ctx-42"`) {
		t.Fatalf("expected request-scoped fields on the context logger, got %q", out)
	}
}
