// Package errors provides structured error handling for the application.
// It defines AppError type with error codes for consistent API responses.
package errors

import (
	"errors"
	"fmt"
)

// Error codes organized by category
const (
	// General errors (1000-1099)
	CodeSuccess       = 0
	CodeUnknown       = 1000
	CodeInvalidParams = 1001
	CodeNotFound      = 1002

	// Upload/source errors (1100-1199)
	CodeUnsupportedFormat = 1100
	CodeFileTooLarge      = 1101
	CodeSourceDownload    = 1102
	CodeAudioExtract      = 1103

	// Transcription errors (1200-1299)
	CodeTranscribeFailed  = 1200
	CodeTranscribeTimeout = 1201

	// Generation errors (1300-1399)
	CodeGenerationFailed = 1300
	CodeGenerationQuota  = 1301

	// Media tool errors (1400-1499)
	CodeMediaToolFailed = 1400
	CodeClipCutFailed   = 1401
	CodeProbeFailed     = 1402

	// Storage errors (1500-1599)
	CodeDBError        = 1500
	CodeFileNotFound   = 1501
	CodeFileWriteError = 1502
	CodeUploadFailed   = 1503

	// Pipeline/packaging errors (1600-1699)
	CodePipelineFailed  = 1600
	CodePackagingFailed = 1601
)

// AppError represents a structured application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetail wraps an error with additional detail
func WrapWithDetail(code int, message string, detail string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

// Is checks if the target error is an AppError with the specified code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts error code from error, returns CodeUnknown if not AppError
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMessage extracts message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Predefined common errors
var (
	ErrInvalidParams = New(CodeInvalidParams, "Invalid parameters")
	ErrNotFound      = New(CodeNotFound, "Resource not found")

	// Upload/source
	ErrUnsupportedFormat = New(CodeUnsupportedFormat, "Unsupported video format")
	ErrFileTooLarge      = New(CodeFileTooLarge, "Video file too large")
	ErrSourceDownload    = New(CodeSourceDownload, "Source download failed")
	ErrAudioExtract      = New(CodeAudioExtract, "Audio extraction failed")

	// Transcription
	ErrTranscribeFailed = New(CodeTranscribeFailed, "Transcription failed")

	// Generation
	ErrGenerationFailed = New(CodeGenerationFailed, "Content generation failed")

	// Media tool
	ErrClipCutFailed = New(CodeClipCutFailed, "Clip extraction failed")

	// Storage
	ErrDBError      = New(CodeDBError, "Database error")
	ErrFileNotFound = New(CodeFileNotFound, "File not found")
	ErrUploadFailed = New(CodeUploadFailed, "Object upload failed")

	// Pipeline
	ErrPipelineFailed  = New(CodePipelineFailed, "Pipeline processing failed")
	ErrPackagingFailed = New(CodePackagingFailed, "Result packaging failed")
)
