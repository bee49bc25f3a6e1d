package model

import (
	"time"

	"github.com/deppfellow/agenthq/internal/validation"
)

const (
	TitleMaxLength       = 255
	DescriptionMaxLength = 1000
)

// Item is a titled note with an optional description.
type Item struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ItemChanges is a partial update. Nil or unset fields are left alone.
type ItemChanges struct {
	Title       *string
	Description NullableString
}

// Empty reports whether the update would change nothing.
func (c ItemChanges) Empty() bool {
	return c.Title == nil && !c.Description.Set
}

// ----------------------------------------------------------------------------
// Request payloads

// ListItemsRequest carries no input.
type ListItemsRequest struct{}

func (r *ListItemsRequest) Validate() error {
	return nil
}

// ItemIDRequest addresses a single item by path parameter.
type ItemIDRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *ItemIDRequest) Validate() error {
	return validate.Struct(r)
}

// CreateItemRequest is the POST /items body.
type CreateItemRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (r *CreateItemRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateItemRequest is the PUT /items/{id} body. Only keys present in the
// body are applied; "description": null clears the description.
type UpdateItemRequest struct {
	ID          int64          `param:"id" json:"-"`
	Title       NullableString `json:"title" validate:"omitempty,max=255"`
	Description NullableString `json:"description" validate:"omitempty,max=1000"`
}

func (r *UpdateItemRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	// The title column is NOT NULL and titles are never blank.
	if r.Title.Set && (!r.Title.Valid || r.Title.Value == "") {
		return validation.CustomValidationErrors{
			{Field: "title", Message: "must not be null or empty"},
		}
	}

	return nil
}

// Changes converts the request into a repository update.
func (r *UpdateItemRequest) Changes() ItemChanges {
	changes := ItemChanges{Description: r.Description}
	if r.Title.Set {
		changes.Title = r.Title.Ptr()
	}
	return changes
}
