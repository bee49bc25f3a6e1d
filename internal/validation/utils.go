package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/agenthq/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate returns validator.ValidationErrors, CustomValidationErrors or nil.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a validation issue that cannot be expressed via tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds path parameters and the JSON body into payload
// and validates it. Both malformed input and rule violations are
// reported as 422 Unprocessable Entity.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(c, err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewUnprocessableEntityError(msg, true, fieldErrors)
	}

	return nil
}

func bindError(c echo.Context, err error) *errs.HTTPError {
	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) {
		return errs.NewUnprocessableEntityError("Validation failed", true, []errs.FieldError{
			{Field: bindingErr.Field, Error: "has an invalid value"},
		})
	}

	// The default binder reports path parameter conversion failures as a
	// plain 400 wrapping the strconv error; recover the parameter name.
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		field := "path"
		for i, name := range c.ParamNames() {
			if i < len(c.ParamValues()) && c.ParamValues()[i] == numErr.Num {
				field = name
				break
			}
		}
		return errs.NewUnprocessableEntityError("Validation failed", true, []errs.FieldError{
			{Field: field, Error: "must be a valid integer"},
		})
	}

	message := "Invalid request body"
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}
	}
	return errs.NewUnprocessableEntityError(message, false, nil)
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())

		// Request models only use required and max, both on strings.
		msg := "is invalid"
		switch err.Tag() {
		case "required":
			msg = "is required"
		case "max":
			msg = fmt.Sprintf("must not exceed %s characters", err.Param())
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
