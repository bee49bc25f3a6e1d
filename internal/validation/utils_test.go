package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/agenthq/internal/errs"
)

type notePayload struct {
	ID   int64  `param:"id" json:"-"`
	Name string `json:"name" validate:"required,max=5"`
}

func (p *notePayload) Validate() error {
	return validator.New().Struct(p)
}

type rulePayload struct {
	Name string `json:"name"`
}

func (p *rulePayload) Validate() error {
	if p.Name == "reserved" {
		return CustomValidationErrors{{Field: "name", Message: "is reserved"}}
	}
	return nil
}

func newContext(method, body string, params map[string]string) echo.Context {
	req := httptest.NewRequest(method, "/notes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	c := echo.New().NewContext(req, httptest.NewRecorder())
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	return c
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T: %v", err, err)
	}
	if httpErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", httpErr.Status)
	}
	return httpErr
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newContext(http.MethodPut, `{"name":"ok"}`, map[string]string{"id": "12"})

	var p notePayload
	if err := BindAndValidate(c, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 12 || p.Name != "ok" {
		t.Fatalf("unexpected payload: %#v", p)
	}
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantError string
	}{
		{name: "required", body: `{}`, wantField: "name", wantError: "is required"},
		{name: "max", body: `{"name":"toolong"}`, wantField: "name", wantError: "must not exceed 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodPost, tt.body, nil)

			httpErr := requireHTTPError(t, BindAndValidate(c, &notePayload{}))
			if len(httpErr.Errors) != 1 {
				t.Fatalf("expected one field error, got %#v", httpErr.Errors)
			}
			if got := httpErr.Errors[0]; got.Field != tt.wantField || got.Error != tt.wantError {
				t.Fatalf("got %#v, want %s %q", got, tt.wantField, tt.wantError)
			}
		})
	}
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":`, nil)

	httpErr := requireHTTPError(t, BindAndValidate(c, &notePayload{}))
	if httpErr.Message == "" {
		t.Fatal("expected a message for malformed JSON")
	}
}

func TestBindAndValidateWrongBodyType(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":42}`, nil)

	requireHTTPError(t, BindAndValidate(c, &notePayload{}))
}

func TestBindAndValidateInvalidPathParam(t *testing.T) {
	c := newContext(http.MethodGet, "", map[string]string{"id": "abc"})

	httpErr := requireHTTPError(t, BindAndValidate(c, &notePayload{}))
	if len(httpErr.Errors) != 1 {
		t.Fatalf("expected one field error, got %#v", httpErr.Errors)
	}
	if got := httpErr.Errors[0]; got.Field != "id" || got.Error != "must be a valid integer" {
		t.Fatalf("unexpected field error: %#v", got)
	}
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":"reserved"}`, nil)

	httpErr := requireHTTPError(t, BindAndValidate(c, &rulePayload{}))
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Error != "is reserved" {
		t.Fatalf("unexpected field errors: %#v", httpErr.Errors)
	}
	if !httpErr.Override {
		t.Fatal("validation messages should be shown to the client")
	}
}
