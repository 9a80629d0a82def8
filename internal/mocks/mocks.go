// Package mocks provides mock implementations of core interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stackslice/internal/types"
)

// MockTranscriber is a mock implementation of types.Transcriber
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (*types.Transcript, error) {
	args := m.Called(ctx, audioPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Transcript), args.Error(1)
}

// MockChatCompleter is a mock implementation of types.ChatCompleter
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) ChatCompletion(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, maxTokens, temperature)
	return args.String(0), args.Error(1)
}

// MockMediaToolkit is a mock implementation of types.MediaToolkit
type MockMediaToolkit struct {
	mock.Mock
}

func (m *MockMediaToolkit) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	args := m.Called(ctx, videoPath)
	return args.String(0), args.Error(1)
}

func (m *MockMediaToolkit) CutClip(ctx context.Context, source string, startSec, durationSec float64, outputPath string) error {
	args := m.Called(ctx, source, startSec, durationSec, outputPath)
	return args.Error(0)
}

func (m *MockMediaToolkit) ProbeDuration(ctx context.Context, source string) float64 {
	args := m.Called(ctx, source)
	return args.Get(0).(float64)
}

// MockObjectUploader is a mock implementation of types.ObjectUploader
type MockObjectUploader struct {
	mock.Mock
}

func (m *MockObjectUploader) Upload(ctx context.Context, key, filePath, contentType string) (string, error) {
	args := m.Called(ctx, key, filePath, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectUploader) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectUploader) IsConflict(err error) bool {
	args := m.Called(err)
	return args.Bool(0)
}

// MockJobStore is a mock implementation of types.JobStore
type MockJobStore struct {
	mock.Mock
}

func (m *MockJobStore) UpdateJobStatus(jobId, status, message string) error {
	args := m.Called(jobId, status, message)
	return args.Error(0)
}

func (m *MockJobStore) UpdateJobResults(jobId string, results *types.JobResults) error {
	args := m.Called(jobId, results)
	return args.Error(0)
}
