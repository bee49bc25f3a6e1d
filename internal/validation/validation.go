// Package validation binds request data and validates it.
//
// Payload types carry `validate` struct tags checked by
// go-playground/validator; failures are converted into field-level
// errors the client can act on.
package validation
