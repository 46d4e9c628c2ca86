package apperrors

import (
	"errors"
	"net/http"
)

// AppError is the error type domain logic throws. The transport layer maps
// its code to an HTTP status and renders the response envelope from it.
type AppError struct {
	Code    string
	Message string
	Origin  error // original error that caused this one, if any
}

func (e *AppError) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Origin
}

// Standard error codes for the application
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeDuplicate       = "DUPLICATE"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeDatabase        = "DATABASE_ERROR"
)

func New(code, message string, origin error) *AppError {
	return &AppError{Code: code, Message: message, Origin: origin}
}

func InvalidInput(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message}
}

func Unauthorized(reason string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: "Unauthorized: " + reason}
}

func InvalidToken(reason string) *AppError {
	return &AppError{Code: CodeInvalidToken, Message: reason}
}

func Forbidden(reason string) *AppError {
	return &AppError{Code: CodeForbidden, Message: reason}
}

func NotFound(what string) *AppError {
	return &AppError{Code: CodeNotFound, Message: what + " not found"}
}

func Duplicate(message string) *AppError {
	return &AppError{Code: CodeDuplicate, Message: message}
}

func TooManyRequests(message string) *AppError {
	return &AppError{Code: CodeTooManyRequests, Message: message}
}

func Database(origin error) *AppError {
	return &AppError{Code: CodeDatabase, Message: "database error", Origin: origin}
}

// CodeOf returns the application error code of err, or CodeDatabase for
// errors that did not originate from domain logic.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeDatabase
}

// IsCode reports whether err carries the given application error code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// HTTPStatus maps an error to the HTTP status it should be served with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidToken:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicate:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
