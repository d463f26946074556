package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Layer identifies where in the stack an error was produced.
type Layer string

const (
	LayerHandler        Layer = "handler"
	LayerDomain         Layer = "domain"
	LayerRepository     Layer = "repository"
	LayerInfrastructure Layer = "infrastructure"
)

// ErrorType is the stable error code carried across layers. Handlers map
// these to HTTP statuses; services and repositories only ever classify.
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeConflict        ErrorType = "conflict"
	ErrorTypeDatabaseError   ErrorType = "database_error"
	ErrorTypeNoToolMatched   ErrorType = "no_tool_matched"
	ErrorTypeToolExecution   ErrorType = "tool_execution_error"
	ErrorTypeUnauthorized    ErrorType = "unauthorized"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeTooManyRequests ErrorType = "too_many_requests"
	ErrorTypeExternal        ErrorType = "external_error"
	ErrorTypeInternal        ErrorType = "internal_error"
	ErrorTypeNotImplemented  ErrorType = "not_implemented"
)

// PlatformError is the uniform error shape used across the service.
type PlatformError struct {
	Code      ErrorType
	Layer     Layer
	Message   string
	Err       error
	Timestamp time.Time
}

func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.Layer, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Layer, e.Code, e.Message)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewError creates a classified error with no underlying cause.
func NewError(_ context.Context, layer Layer, errType ErrorType, msg string) *PlatformError {
	return &PlatformError{
		Code:      errType,
		Layer:     layer,
		Message:   msg,
		Timestamp: time.Now(),
	}
}

// NewErrorWithCause creates a classified error wrapping an underlying cause.
func NewErrorWithCause(_ context.Context, layer Layer, errType ErrorType, msg string, err error) *PlatformError {
	return &PlatformError{
		Code:      errType,
		Layer:     layer,
		Message:   msg,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// AsError wraps err at the given layer, preserving the error type of an
// inner PlatformError so classification survives re-wrapping. Errors with
// no classification become internal errors.
func AsError(ctx context.Context, layer Layer, err error, msg string) *PlatformError {
	if err == nil {
		return nil
	}
	var pe *PlatformError
	if errors.As(err, &pe) {
		return NewErrorWithCause(ctx, layer, pe.Code, msg, err)
	}
	return NewErrorWithCause(ctx, layer, ErrorTypeInternal, msg, err)
}

// IsErrorType reports whether err (or anything it wraps) carries the given
// error type.
func IsErrorType(err error, errType ErrorType) bool {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Code == errType
	}
	return false
}

// IsValidationError is a shorthand used by handlers.
func IsValidationError(err error) bool {
	return IsErrorType(err, ErrorTypeValidation)
}

// TypeOf returns the carried error type, or ErrorTypeInternal for
// unclassified errors.
func TypeOf(err error) ErrorType {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrorTypeInternal
}

// ErrorTypeToHTTPStatus maps error types to HTTP status codes.
func ErrorTypeToHTTPStatus(errType ErrorType) int {
	switch errType {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeNoToolMatched:
		return http.StatusUnprocessableEntity
	case ErrorTypeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrorTypeNotImplemented:
		return http.StatusNotImplemented
	case ErrorTypeExternal:
		return http.StatusBadGateway
	case ErrorTypeDatabaseError, ErrorTypeToolExecution, ErrorTypeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}
