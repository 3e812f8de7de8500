package serverutils

import "net/http"

// AppError carries the HTTP status a domain error should be reported with
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NotFound(message string) *AppError     { return NewAppError(http.StatusNotFound, message) }
func BadRequest(message string) *AppError   { return NewAppError(http.StatusBadRequest, message) }
func Conflict(message string) *AppError     { return NewAppError(http.StatusConflict, message) }
func Unauthorized(message string) *AppError { return NewAppError(http.StatusUnauthorized, message) }
func Forbidden(message string) *AppError    { return NewAppError(http.StatusForbidden, message) }
