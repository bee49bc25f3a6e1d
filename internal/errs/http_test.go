package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	tests := map[string]string{
		"Not Found":            "NOT_FOUND",
		"Unprocessable Entity": "UNPROCESSABLE_ENTITY",
		"":                     "",
	}
	for in, want := range tests {
		if got := MakeUpperCaseWithUnderscores(in); got != want {
			t.Fatalf("MakeUpperCaseWithUnderscores(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHTTPErrorIs(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewNotFoundError("Item not found", true, nil))
	if !errors.Is(err, &HTTPError{}) {
		t.Fatal("wrapped HTTPError should match any *HTTPError")
	}
	if errors.Is(errors.New("plain"), &HTTPError{}) {
		t.Fatal("plain errors must not match")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{NewNotFoundError("missing", true, nil), http.StatusNotFound, "NOT_FOUND"},
		{NewUnprocessableEntityError("invalid", true, nil), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		if tt.err.Status != tt.wantStatus || tt.err.Code != tt.wantCode {
			t.Fatalf("got %d %s, want %d %s", tt.err.Status, tt.err.Code, tt.wantStatus, tt.wantCode)
		}
	}

	code := "ITEM_INVALID"
	if got := NewBadRequestError("bad", false, &code, nil, nil).Code; got != code {
		t.Fatalf("explicit code ignored: %q", got)
	}
}

func TestWithMessageCopies(t *testing.T) {
	original := NewNotFoundError("Item not found", true, nil)
	changed := original.WithMessage("gone")

	if original.Message != "Item not found" {
		t.Fatal("WithMessage must not modify the receiver")
	}
	if changed.Message != "gone" || changed.Status != http.StatusNotFound {
		t.Fatalf("unexpected copy: %#v", changed)
	}
}
