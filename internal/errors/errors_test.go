package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentError_Error(t *testing.T) {
	err := NewContentLoadError("docs/basics.yaml", fmt.Errorf("yaml: line 3"))
	err.WithComponent("loader")

	msg := err.Error()
	assert.Contains(t, msg, "[ERR_CONTENT_LOAD]")
	assert.Contains(t, msg, "component:loader")
	assert.Contains(t, msg, "docs/basics.yaml")
	assert.Contains(t, msg, "yaml: line 3")
}

func TestContentError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"not found matches sentinel", NewNotFoundError("document", "x"), ErrNotFound, true},
		{"wrapped not found", fmt.Errorf("get: %w", NewNotFoundError("lesson", "y")), ErrNotFound, true},
		{"locale is not not-found", NewUnsupportedLocaleError("fr"), ErrNotFound, false},
		{"locale sentinel", NewUnsupportedLocaleError("fr"), ErrUnsupportedLocale, true},
		{"type only target", NewValidationError("ERR_X", "x"), &ContentError{Type: ErrorTypeValidation}, true},
		{"code mismatch", NewValidationError("ERR_X", "x"), ErrValidationFailed, false},
		{"plain error", errors.New("boom"), ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestNewNotFoundError_Context(t *testing.T) {
	err := NewNotFoundError("document", "does-not-exist")
	assert.Equal(t, "document", err.Context["resource"])
	assert.Equal(t, "does-not-exist", err.Context["id"])
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnsupportedLocale(err))

	typ, ok := TypeOf(fmt.Errorf("wrapped: %w", err))
	require.True(t, ok)
	assert.Equal(t, ErrorTypeNotFound, typ)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeConfig, ErrCodeConfigInvalid, "x"))

	inner := NewContentLoadError("kotlin.yaml", errors.New("eof"))
	wrapped := Wrap(inner, ErrorTypeValidation, ErrCodeValidationFailed, "reload rejected")
	assert.Equal(t, "kotlin.yaml", wrapped.FilePath)
	assert.True(t, errors.Is(wrapped, ErrContentLoad))
	assert.True(t, errors.Is(wrapped, ErrValidationFailed))

	cfg := WrapConfig(errors.New("bad port"), "invalid configuration")
	assert.True(t, errors.Is(cfg, ErrConfigInvalid))
}

func TestValidationErrorCollection(t *testing.T) {
	vec := &ValidationErrorCollection{}
	assert.False(t, vec.HasErrors())
	assert.Nil(t, vec.ToContentError())
	assert.Equal(t, "no validation errors", vec.Error())

	vec.AddField("docs.a.es.blocks.9", 9, "index out of range", "canonical has 5 blocks")
	assert.Contains(t, vec.Error(), "docs.a.es.blocks.9")

	vec.AddField("docs.a.toc", "intro", "duplicate id")
	assert.Equal(t, "validation failed with 2 errors", vec.Error())
	assert.Equal(t, []string{"docs.a.es.blocks.9", "docs.a.toc"}, vec.Fields())

	ce := vec.ToContentError()
	require.NotNil(t, ce)
	assert.True(t, errors.Is(ce, ErrValidationFailed))
	assert.Contains(t, ce.Context, "docs.a.toc")
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "", FormatError(nil))

	fve := NewFieldValidationError("server.port", 70000, "port out of range", "use 1-65535")
	out := FormatError(fve)
	assert.Contains(t, out, "server.port")
	assert.Contains(t, out, "use 1-65535")

	assert.Equal(t, "plain", FormatError(errors.New("plain")))
}

func TestGetErrorContext(t *testing.T) {
	ctx := GetErrorContext(NewNotFoundError("category", "go").WithComponent("catalog"))
	assert.Equal(t, "not_found", ctx["type"])
	assert.Equal(t, ErrCodeNotFound, ctx["code"])
	assert.Equal(t, "catalog", ctx["component"])
	assert.Equal(t, "go", ctx["id"])

	plain := GetErrorContext(errors.New("x"))
	assert.Equal(t, "unknown", plain["type"])
}

type recordingLogger struct {
	errors []string
	warns  []string
}

func (r *recordingLogger) Error(_ context.Context, _ error, msg string, _ ...interface{}) {
	r.errors = append(r.errors, msg)
}

func (r *recordingLogger) Warn(_ context.Context, _ error, msg string, _ ...interface{}) {
	r.warns = append(r.warns, msg)
}

func TestErrorHandler_Handle(t *testing.T) {
	logger := &recordingLogger{}
	h := NewErrorHandler(logger)
	ctx := context.Background()

	h.Handle(ctx, nil)
	h.Handle(ctx, NewNotFoundError("document", "x"))
	h.Handle(ctx, NewContentLoadError("a.yaml", errors.New("eof")))
	h.Handle(ctx, errors.New("generic"))

	assert.Equal(t, []string{"Request error"}, logger.warns)
	assert.Equal(t, []string{"Content load failed", "Unhandled error occurred"}, logger.errors)
}
