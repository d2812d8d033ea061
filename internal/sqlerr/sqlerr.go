// Package sqlerr normalises lead store failures.
//
// Postgres driver errors and PostgREST error bodies are both mapped onto
// a single Error type keyed by SQLSTATE, so the service can log one shape
// no matter which store driver is configured.
package sqlerr

import "fmt"

// Code is a coarse category of SQLSTATE.
type Code int

const (
	Other Code = iota
	NotNullViolation
	ForeignKeyViolation
	UniqueViolation
	CheckViolation
	UndefinedTable
	UndefinedColumn
	InsufficientPrivilege
	ConnectionFailure
)

func (c Code) String() string {
	switch c {
	case NotNullViolation:
		return "not_null_violation"
	case ForeignKeyViolation:
		return "foreign_key_violation"
	case UniqueViolation:
		return "unique_violation"
	case CheckViolation:
		return "check_violation"
	case UndefinedTable:
		return "undefined_table"
	case UndefinedColumn:
		return "undefined_column"
	case InsufficientPrivilege:
		return "insufficient_privilege"
	case ConnectionFailure:
		return "connection_failure"
	default:
		return "other"
	}
}

// MapCode maps a SQLSTATE onto a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "42501":
		return InsufficientPrivilege
	}
	if len(sqlstate) == 5 && sqlstate[:2] == "08" {
		return ConnectionFailure
	}
	return Other
}

// Severity of a server error.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
	SeverityWarning
	SeverityNotice
	SeverityDebug
	SeverityInfo
	SeverityLog
)

// MapSeverity maps the severity string reported by Postgres onto a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}

// Error is a store failure with its SQLSTATE metadata.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	Details        string
	Hint           string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	// HTTPStatus is set when the error came back from PostgREST.
	HTTPStatus int

	driverErr error
}

func (e *Error) Error() string {
	if e.DatabaseCode == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (SQLSTATE %s)", e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
