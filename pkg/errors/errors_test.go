package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	// Test without cause
	err := New(CodeSourceDownload, "Test error")
	assert.Equal(t, "[1102] Test error", err.Error())

	// Test with cause
	cause := errors.New("underlying error")
	errWithCause := Wrap(CodeSourceDownload, "Test error", cause)
	assert.Contains(t, errWithCause.Error(), "underlying error")
	assert.Contains(t, errWithCause.Error(), "1102")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(CodeTranscribeFailed, "Transcription failed", cause)

	// Test Unwrap
	assert.Equal(t, cause, err.Unwrap())

	// Test errors.Is
	assert.True(t, errors.Is(err, cause))
}

func TestIs(t *testing.T) {
	err := New(CodeGenerationFailed, "Generation failed")

	assert.True(t, Is(err, CodeGenerationFailed))
	assert.False(t, Is(err, CodeSourceDownload))

	// Test with regular error
	regularErr := errors.New("regular error")
	assert.False(t, Is(regularErr, CodeGenerationFailed))
}

func TestGetCode(t *testing.T) {
	// AppError
	appErr := New(CodeClipCutFailed, "Clip cut failed")
	assert.Equal(t, CodeClipCutFailed, GetCode(appErr))

	// Regular error returns CodeUnknown
	regularErr := errors.New("regular error")
	assert.Equal(t, CodeUnknown, GetCode(regularErr))
}

func TestGetMessage(t *testing.T) {
	// AppError
	appErr := New(CodeFileNotFound, "File not found")
	assert.Equal(t, "File not found", GetMessage(appErr))

	// Regular error returns error message
	regularErr := errors.New("regular error message")
	assert.Equal(t, "regular error message", GetMessage(regularErr))
}

func TestWrapWithDetail(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapWithDetail(CodeSourceDownload, "Download failed", "URL: https://example.com", cause)

	assert.Equal(t, CodeSourceDownload, err.Code)
	assert.Equal(t, "Download failed", err.Message)
	assert.Equal(t, "URL: https://example.com", err.Detail)
	assert.Equal(t, cause, err.Cause)
}

func TestPredefinedErrors(t *testing.T) {
	// Verify predefined errors have correct codes
	assert.Equal(t, CodeInvalidParams, ErrInvalidParams.Code)
	assert.Equal(t, CodeSourceDownload, ErrSourceDownload.Code)
	assert.Equal(t, CodeTranscribeFailed, ErrTranscribeFailed.Code)
	assert.Equal(t, CodeGenerationFailed, ErrGenerationFailed.Code)
	assert.Equal(t, CodeDBError, ErrDBError.Code)
	assert.Equal(t, CodePipelineFailed, ErrPipelineFailed.Code)
}

func TestWrappedErrorsAs(t *testing.T) {
	cause := New(CodeClipCutFailed, "ffmpeg exited 1")
	wrapped := Wrap(CodePipelineFailed, "clips stage failed", cause)

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, CodePipelineFailed, appErr.Code)
	assert.True(t, Is(wrapped, CodePipelineFailed))
}
