// Package apperr carries domain errors as tagged values with an HTTP
// status and a short machine category, so handlers and the central
// error handler never have to inspect message strings.
package apperr

import "net/http"

type Error struct {
	Status  int
	Code    string // short category, goes into the "error" field
	Message string // human-readable detail, goes into the "message" field
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation_error", Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "auth_error", Message: message}
}

// Forbidden covers well-formed but unusable credentials: expired or
// revoked tokens and tokens whose subject no longer exists.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "auth_error", Message: message}
}

func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Code: "conflict", Message: message}
}

// RoleConflict is reported as 400 rather than 409 to keep the admin UI
// contract of the previous backend.
func RoleConflict(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "role_conflict", Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Message: message}
}

func Upload(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "upload_error", Message: message}
}

func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "internal_error", Message: message}
}
