package errs

import (
	"fmt"
	"strings"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// SchemaError reports an upload missing required columns. No dataset is
// loaded when it is returned.
type SchemaError struct {
	ErrorMessage
	Missing  []string
	Expected []string
}

// CoercionError reports a column that cannot be converted to its required type.
type CoercionError struct {
	ErrorMessage
	Column string
	Err    error
}

func (e *CoercionError) Unwrap() error { return e.Err }

// EmptyResultError reports that cleaning or filtering left no rows.
type EmptyResultError struct {
	ErrorMessage
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewSchemaError(missing, expected []string) *SchemaError {
	return &SchemaError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf(
			"missing required columns: %s (expected: %s)",
			strings.Join(missing, ", "), strings.Join(expected, ", "))},
		Missing:  missing,
		Expected: expected,
	}
}

func NewCoercionError(column string, err error) *CoercionError {
	return &CoercionError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("column %q could not be converted: %v", column, err)},
		Column:       column,
		Err:          err,
	}
}

func NewEmptyResultError(message string) *EmptyResultError {
	return &EmptyResultError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}
