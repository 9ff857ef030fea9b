package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context, creating a ContentError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *ContentError {
	if err == nil {
		return nil
	}

	// Preserve the location of an inner ContentError
	var ce *ContentError
	if errors.As(err, &ce) {
		return &ContentError{
			Type:      errType,
			Code:      code,
			Message:   message,
			Cause:     ce,
			Context:   ce.Context,
			Component: ce.Component,
			FilePath:  ce.FilePath,
		}
	}

	return &ContentError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, message string) *ContentError {
	return Wrap(err, ErrorTypeConfig, ErrCodeConfigInvalid, message)
}

// WrapWatch wraps a file watching failure
func WrapWatch(err error, message string) *ContentError {
	wrapped := Wrap(err, ErrorTypeInternal, ErrCodeWatch, message)
	if wrapped != nil {
		wrapped.Component = "watcher"
	}
	return wrapped
}

// FormatError formats an error for user display
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var ve ValidationError
	if errors.As(err, &ve) {
		result := ve.Error()
		suggestions := ve.Suggestions()
		if len(suggestions) > 0 {
			result += "\n  Suggestions:"
			for _, suggestion := range suggestions {
				result += fmt.Sprintf("\n    • %s", suggestion)
			}
		}
		return result
	}

	return err.Error()
}

// GetErrorContext extracts context information from a ContentError
func GetErrorContext(err error) map[string]interface{} {
	var ce *ContentError
	if errors.As(err, &ce) {
		context := make(map[string]interface{})
		for k, v := range ce.Context {
			context[k] = v
		}
		if ce.Component != "" {
			context["component"] = ce.Component
		}
		if ce.FilePath != "" {
			context["file"] = ce.FilePath
		}
		context["type"] = string(ce.Type)
		context["code"] = ce.Code
		return context
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}
