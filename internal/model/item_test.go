package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/agenthq/internal/validation"
)

func TestNullableStringUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want NullableString
	}{
		{name: "absent", body: `{}`, want: NullableString{}},
		{name: "null", body: `{"description":null}`, want: NullableString{Set: true}},
		{name: "value", body: `{"description":"text"}`, want: NullableString{Set: true, Valid: true, Value: "text"}},
		{name: "empty string", body: `{"description":""}`, want: NullableString{Set: true, Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateItemRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.Description != tt.want {
				t.Fatalf("got %#v, want %#v", req.Description, tt.want)
			}
		})
	}
}

func TestNullableStringRejectsNonString(t *testing.T) {
	var req UpdateItemRequest
	if err := json.Unmarshal([]byte(`{"title":5}`), &req); err == nil {
		t.Fatal("expected an error for a numeric title")
	}
}

func TestCreateItemRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateItemRequest
		wantTag string
	}{
		{name: "valid", req: CreateItemRequest{Title: "Buy milk"}},
		{name: "missing title", req: CreateItemRequest{}, wantTag: "required"},
		{name: "title at limit", req: CreateItemRequest{Title: strings.Repeat("a", TitleMaxLength)}},
		{name: "title too long", req: CreateItemRequest{Title: strings.Repeat("a", TitleMaxLength+1)}, wantTag: "max"},
		{
			name:    "description too long",
			req:     CreateItemRequest{Title: "ok", Description: ptr(strings.Repeat("d", DescriptionMaxLength+1))},
			wantTag: "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if verrs[0].Tag() != tt.wantTag {
				t.Fatalf("expected tag %q, got %q", tt.wantTag, verrs[0].Tag())
			}
		})
	}
}

func TestUpdateItemRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateItemRequest
		wantErr bool
	}{
		{name: "no fields", req: UpdateItemRequest{ID: 1}},
		{name: "clear description", req: UpdateItemRequest{ID: 1, Description: Null()}},
		{name: "new title", req: UpdateItemRequest{ID: 1, Title: NewNullableString("Renamed")}},
		{name: "null title", req: UpdateItemRequest{ID: 1, Title: Null()}, wantErr: true},
		{name: "empty title", req: UpdateItemRequest{ID: 1, Title: NewNullableString("")}, wantErr: true},
		{
			name:    "title too long",
			req:     UpdateItemRequest{ID: 1, Title: NewNullableString(strings.Repeat("a", TitleMaxLength+1))},
			wantErr: true,
		},
		{
			name:    "description too long",
			req:     UpdateItemRequest{ID: 1, Description: NewNullableString(strings.Repeat("d", DescriptionMaxLength+1))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateItemRequestNullTitleReportsField(t *testing.T) {
	req := UpdateItemRequest{ID: 1, Title: Null()}

	var custom validation.CustomValidationErrors
	if !errors.As(req.Validate(), &custom) {
		t.Fatal("expected custom validation errors")
	}
	if custom[0].Field != "title" {
		t.Fatalf("expected title field, got %q", custom[0].Field)
	}
}

func TestUpdateItemRequestChanges(t *testing.T) {
	req := UpdateItemRequest{ID: 3, Description: Null()}
	changes := req.Changes()
	if changes.Title != nil {
		t.Fatalf("absent title must not change, got %q", *changes.Title)
	}
	if !changes.Description.Set || changes.Description.Valid {
		t.Fatalf("expected description to be cleared, got %#v", changes.Description)
	}

	req = UpdateItemRequest{ID: 3, Title: NewNullableString("New")}
	changes = req.Changes()
	if changes.Title == nil || *changes.Title != "New" {
		t.Fatalf("expected title change, got %v", changes.Title)
	}
	if changes.Description.Set {
		t.Fatal("absent description must not change")
	}
}

func TestItemJSONShape(t *testing.T) {
	data, err := json.Marshal(Item{ID: 1, Title: "t"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "title", "description", "created_at"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("missing key %q in %s", key, data)
		}
	}
	if fields["description"] != nil {
		t.Fatalf("expected null description, got %v", fields["description"])
	}
}

func ptr(s string) *string { return &s }
