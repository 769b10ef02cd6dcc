/*
Package errs provides custom error types and application-level error id constants.

This file defines the CustomError struct, which implements the standard Go error interface
and carries the error id, a human-readable message and an HTTP status code for unified
error reporting.
*/
package errs

import (
	"errors"
	"fmt"
	"strings"

	"roomchat/internal/pkg/logx"
)

// CustomError is the custom error structure used throughout the application.
// Its JSON form is the stable error body of the REST API.
type CustomError struct {
	// ID is the stable error id (see constants definition).
	ID string `json:"error_id"`

	// Message is the human-readable error description.
	Message string `json:"error_message"`

	// Status is the standard HTTP status code corresponding to this error.
	Status int `json:"-"`
}

// Error implements the standard Go error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("%s (HTTP %d): %s", e.ID, e.Status, e.Message)
}

// NewError constructs and returns a new *CustomError instance based on a predefined error id.
// The optional details fill the printf verbs of the message template.
// If an unknown id is provided, it defaults to returning ErrUnknown.
func NewError(id string, details ...any) *CustomError {
	templateErr, ok := errorMap[id]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown id in errorMap"),
			"Unknown error id requested",
			"requested_id", id,
		)

		unknownErr := errorMap[ErrUnknown]
		return &unknownErr
	}

	customErr := templateErr

	if id == ErrUnknown && len(details) > 0 {
		if originalErr, ok := details[0].(error); ok {
			logx.Error(
				originalErr,
				"Handling ErrUnknown with underlying error",
			)
		}
	} else if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn(
				"Details provided for error, but message template has no formatting placeholders. Details ignored.",
				"error_id", id,
			)
		}
	}

	return &customErr
}

// Is reports whether err is, or wraps, a *CustomError with the given id.
func Is(err error, id string) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.ID == id
	}
	return false
}
