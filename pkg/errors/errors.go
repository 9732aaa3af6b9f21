package errors

import (
	"errors"
	"fmt"
	"net/http"

	"streamgrid/internal/core/domain"
)

// ErrorCode classifies application errors for API responses.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeRateLimit    ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// AppError carries an error code, a user-facing message and an HTTP status
// alongside the underlying cause.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
	Context    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value detail carried into the error response.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func Wrap(err error, code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Cause: err}
}

func NewInvalidInput(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

func NewNotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewUnauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func NewConflict(message string) *AppError {
	return New(ErrCodeConflict, message, http.StatusConflict)
}

func NewRateLimit() *AppError {
	return New(ErrCodeRateLimit, "rate limit exceeded", http.StatusTooManyRequests)
}

func NewUpstream(message string) *AppError {
	return New(ErrCodeUpstream, message, http.StatusBadGateway)
}

func NewInternal(message string) *AppError {
	return New(ErrCodeInternal, message, http.StatusInternalServerError)
}

// Get extracts an AppError from anywhere in the error chain.
func Get(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// FromDomain maps domain sentinel errors onto API error responses. Unknown
// errors become internal errors so nothing leaks raw to clients.
func FromDomain(err error) *AppError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSessionNotFound):
		return Wrap(err, ErrCodeNotFound, "session not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrSlotNotFound):
		return Wrap(err, ErrCodeNotFound, "slot not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrPreferenceNotFound):
		return Wrap(err, ErrCodeNotFound, "preference not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrChannelNotFound):
		return Wrap(err, ErrCodeNotFound, "channel not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrSlotEmpty):
		return Wrap(err, ErrCodeInvalidInput, "slot is empty", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidStreamURL):
		return Wrap(err, ErrCodeInvalidInput, "stream url could not be parsed", http.StatusBadRequest)
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		return Wrap(err, ErrCodeInvalidInput, "platform is not supported", http.StatusBadRequest)
	case errors.Is(err, domain.ErrLayoutCapacity):
		return Wrap(err, ErrCodeInvalidInput, "layout capacity exceeded", http.StatusBadRequest)
	case errors.Is(err, domain.ErrManualModeRequired):
		return Wrap(err, ErrCodeConflict, "per-slot mute requires manual audio mode", http.StatusConflict)
	case errors.Is(err, domain.ErrRetriesExhausted):
		return Wrap(err, ErrCodeConflict, "slot retries exhausted", http.StatusConflict)
	default:
		return Wrap(err, ErrCodeInternal, "internal error", http.StatusInternalServerError)
	}
}
