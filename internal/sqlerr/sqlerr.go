// Package sqlerr handles database driver errors.
//
// It classifies PostgreSQL errors by SQLSTATE and converts them into
// client-facing *errs.HTTPError values (for example a not-null
// violation becomes a 400 with a field error, a missing row a 404).
package sqlerr

import (
	"fmt"
	"strings"
)

// Code is the application-level category of a database error.
type Code string

const (
	Other            Code = "other"
	NotNullViolation Code = "not_null_violation"
	StringTooLong    Code = "string_data_right_truncation"
	InvalidText      Code = "invalid_text_representation"
)

// MapCode maps a PostgreSQL SQLSTATE onto a Code. Only the errors the
// items schema can raise are classified; everything else is Other.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "22001":
		return StringTooLong
	case "22P02":
		return InvalidText
	default:
		return Other
	}
}

// Severity mirrors the PostgreSQL message severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the raw severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch s := Severity(strings.ToUpper(severity)); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a classified database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// TableError attaches the table a failed statement targeted, so that
// errors carrying no server metadata (such as pgx.ErrNoRows) can still
// be reported in terms of the entity.
type TableError struct {
	Table string
	Err   error
}

// WithTable wraps err with the table it relates to. A nil err stays nil.
func WithTable(table string, err error) error {
	if err == nil {
		return nil
	}
	return &TableError{Table: table, Err: err}
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %s: %v", e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}
