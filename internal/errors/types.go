package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeLocale     ErrorType = "locale"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeLoad       ErrorType = "load"
	ErrorTypeSecurity   ErrorType = "security"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeNotFound          = "ERR_NOT_FOUND"
	ErrCodeUnsupportedLocale = "ERR_UNSUPPORTED_LOCALE"
	ErrCodeContentLoad       = "ERR_CONTENT_LOAD"
	ErrCodeValidationFailed  = "ERR_VALIDATION_FAILED"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodePathTraversal     = "ERR_PATH_TRAVERSAL"
	ErrCodeInternalError     = "ERR_INTERNAL"
	ErrCodeWatch             = "ERR_WATCH"
)

// Sentinels for errors.Is. They match any ContentError of the same type and
// code regardless of message or context.
var (
	ErrNotFound          = &ContentError{Type: ErrorTypeNotFound, Code: ErrCodeNotFound}
	ErrUnsupportedLocale = &ContentError{Type: ErrorTypeLocale, Code: ErrCodeUnsupportedLocale}
	ErrContentLoad       = &ContentError{Type: ErrorTypeLoad, Code: ErrCodeContentLoad}
	ErrValidationFailed  = &ContentError{Type: ErrorTypeValidation, Code: ErrCodeValidationFailed}
	ErrConfigInvalid     = &ContentError{Type: ErrorTypeConfig, Code: ErrCodeConfigInvalid}
)

// ContentError is a structured error type with context.
type ContentError struct {
	Type      ErrorType
	Code      string
	Message   string
	Cause     error
	Context   map[string]interface{}
	Component string
	FilePath  string
}

// Error implements the error interface.
func (e *ContentError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ContentError) Unwrap() error {
	return e.Cause
}

// Is matches on type, and on code when the target carries one.
func (e *ContentError) Is(target error) bool {
	var t *ContentError
	if errors.As(target, &t) {
		if e.Type != t.Type {
			return false
		}
		return t.Code == "" || e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ContentError) WithContext(key string, value interface{}) *ContentError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithComponent adds component context.
func (e *ContentError) WithComponent(component string) *ContentError {
	e.Component = component

	return e
}

// WithFile records the catalog file the error relates to.
func (e *ContentError) WithFile(path string) *ContentError {
	e.FilePath = path

	return e
}

// NewNotFoundError creates an error for an unknown content id.
func NewNotFoundError(resource, id string) *ContentError {
	return (&ContentError{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}).WithContext("resource", resource).WithContext("id", id)
}

// NewUnsupportedLocaleError creates an error for a locale outside the
// supported set.
func NewUnsupportedLocaleError(raw string) *ContentError {
	return (&ContentError{
		Type:    ErrorTypeLocale,
		Code:    ErrCodeUnsupportedLocale,
		Message: "unsupported locale: " + raw,
	}).WithContext("locale", raw)
}

// NewContentLoadError creates an error for an unreadable or undecodable
// catalog file.
func NewContentLoadError(path string, cause error) *ContentError {
	return &ContentError{
		Type:     ErrorTypeLoad,
		Code:     ErrCodeContentLoad,
		Message:  "failed to load content",
		Cause:    cause,
		FilePath: path,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ContentError {
	return &ContentError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewSecurityError creates a security error.
func NewSecurityError(code, message string) *ContentError {
	return &ContentError{
		Type:    ErrorTypeSecurity,
		Code:    code,
		Message: message,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ContentError {
	return &ContentError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ContentError {
	return &ContentError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrPathTraversal creates a path traversal security error.
func ErrPathTraversal(path string) *ContentError {
	return NewSecurityError(ErrCodePathTraversal, "path traversal attempt: "+path)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnsupportedLocale reports whether err rejects a locale.
func IsUnsupportedLocale(err error) bool {
	return errors.Is(err, ErrUnsupportedLocale)
}

// TypeOf returns the type of the first ContentError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var ce *ContentError
	if errors.As(err, &ce) {
		return ce.Type, true
	}

	return "", false
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger Logger
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err at a level chosen by its type. Not-found, locale and
// validation errors are caller mistakes and are logged as warnings.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var ce *ContentError
	if !errors.As(err, &ce) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	switch ce.Type {
	case ErrorTypeNotFound, ErrorTypeLocale, ErrorTypeValidation:
		h.logger.Warn(ctx, err, "Request error",
			"type", ce.Type,
			"code", ce.Code,
			"component", ce.Component)
	case ErrorTypeLoad:
		h.logger.Error(ctx, err, "Content load failed",
			"code", ce.Code,
			"file", ce.FilePath)
	default:
		h.logger.Error(ctx, err, "Error occurred",
			"type", ce.Type,
			"code", ce.Code,
			"component", ce.Component)
	}
}
