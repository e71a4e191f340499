// Package errors gives diagvor failures a machine-readable [Code].
//
// The CLI prints [UserMessage] for coded errors and the HTTP server turns the
// code into a status with [HTTPStatus] and a {code, message} body. Sentinel
// errors from the rasterizer (unsupported metric, worker failure) are wrapped
// so that both the code and the sentinel survive:
//
//	err := errors.Wrap(errors.ErrCodeGeneration, voronoi.ErrWorkerFailed, "parallel generation failed")
//	errors.Is(err, errors.ErrCodeGeneration)  // true
//	stderrors.Is(err, voronoi.ErrWorkerFailed) // true
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure. Codes are stable strings; clients of
// the HTTP API match on them.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidMetric     Code = "INVALID_METRIC"
	ErrCodeInvalidMode       Code = "INVALID_MODE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidSites      Code = "INVALID_SITES"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"
	ErrCodeGeneration        Code = "GENERATION_FAILED"
	ErrCodeUnsupported       Code = "UNSUPPORTED"
	ErrCodeInternal          Code = "INTERNAL_ERROR"
)

// statusByCode maps codes to HTTP statuses. Codes not listed are 500.
var statusByCode = map[Code]int{
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidMetric:     http.StatusBadRequest,
	ErrCodeInvalidMode:       http.StatusBadRequest,
	ErrCodeInvalidFormat:     http.StatusBadRequest,
	ErrCodeInvalidDimensions: http.StatusBadRequest,
	ErrCodeInvalidSites:      http.StatusBadRequest,
	ErrCodeInvalidPath:       http.StatusBadRequest,
	ErrCodeFileNotFound:      http.StatusNotFound,
	ErrCodeUnsupported:       http.StatusNotImplemented,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause, which stays reachable through errors.Is and
// errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// asError finds the outermost *Error in err's chain.
func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without its code prefix or
// cause, and err.Error() for anything else.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus returns the response status for code.
func HTTPStatus(code Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
