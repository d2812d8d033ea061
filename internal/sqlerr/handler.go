package sqlerr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/janmalik2800/Antigravity-web/internal/errs"
)

// ErrCode reports the Code of err, or Other when err carries no *Error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		Details:        src.Detail,
		Hint:           src.Hint,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// postgrestError is the body PostgREST returns for a failed request.
type postgrestError struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details"`
	Hint    *string `json:"hint"`
}

var constraintRe = regexp.MustCompile(`constraint "([^"]+)"`)

// FromPostgREST builds an *Error from a non-2xx PostgREST response against table.
// Bodies that are not PostgREST JSON are kept verbatim in Message.
func FromPostgREST(table string, status int, body []byte) *Error {
	out := &Error{
		Code:       Other,
		TableName:  table,
		HTTPStatus: status,
	}

	var pe postgrestError
	if err := json.Unmarshal(body, &pe); err != nil || (pe.Code == "" && pe.Message == "") {
		out.Message = strings.TrimSpace(string(body))
		if out.Message == "" {
			out.Message = fmt.Sprintf("lead store returned status %d", status)
		}
		return out
	}

	out.Code = MapCode(pe.Code)
	out.DatabaseCode = pe.Code
	out.Message = pe.Message
	if pe.Details != nil {
		out.Details = *pe.Details
	}
	if pe.Hint != nil {
		out.Hint = *pe.Hint
	}
	if m := constraintRe.FindStringSubmatch(pe.Message); len(m) > 1 {
		out.ConstraintName = m[1]
	}
	return out
}

// generateErrorCode derives a code like LEAD_ALREADY_EXISTS from a table and Code.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	case UndefinedTable, UndefinedColumn:
		action = "SCHEMA_MISMATCH"
	case InsufficientPrivilege:
		action = "FORBIDDEN"
	case ConnectionFailure:
		action = "UNAVAILABLE"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// Describe renders a one-line summary for operator logs.
func Describe(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName)

	switch sqlErr.Code {
	case UniqueViolation:
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			return fmt.Sprintf("A %s with this %s already exists", entityName, humanizeText(column))
		}
		return fmt.Sprintf("A %s with this identifier already exists", entityName)
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation:
		return fmt.Sprintf("A %s value does not meet required conditions", entityName)
	case UndefinedTable, UndefinedColumn:
		return fmt.Sprintf("The %s schema does not match the application", entityName)
	case InsufficientPrivilege:
		return fmt.Sprintf("The store key may not write %s rows", entityName)
	case ConnectionFailure:
		return "The lead store is unreachable"
	default:
		return sqlErr.Message
	}
}

func getEntityName(tableName string) string {
	if tableName == "" {
		return "record"
	}
	entity := tableName
	if strings.HasSuffix(entity, "s") && len(entity) > 1 {
		entity = entity[:len(entity)-1]
	}
	return humanizeText(entity)
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from names like
// unique_leads_email or leads_email_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	re := regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	matches := re.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts any lead store failure into a persistence error for table.
//
// The caller only ever sees the generic persistence message. The derived sub-code
// (LEAD_ALREADY_EXISTS, LEAD_UNAVAILABLE...) and an *Error wrapping the original
// failure travel along for logs.
func HandleError(table string, err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) && errors.Is(httpErr, errs.ErrPersistence) {
		return httpErr
	}

	var sqlErr *Error
	if !errors.As(err, &sqlErr) {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			sqlErr = ConvertPgError(pgErr)
			if sqlErr.TableName == "" {
				sqlErr.TableName = table
			}
		case pgconn.SafeToRetry(err), errors.Is(err, context.DeadlineExceeded):
			sqlErr = &Error{Code: ConnectionFailure, TableName: table, Message: err.Error(), driverErr: err}
		default:
			sqlErr = &Error{Code: Other, TableName: table, Message: err.Error(), driverErr: err}
		}
		err = sqlErr
	}

	return errs.NewPersistenceError(generateErrorCode(sqlErr.TableName, sqlErr.Code)).WithCause(err)
}
