package types

import "context"

// Transcriber turns an audio file into a transcript with timed segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Transcript, error)
}

// ChatCompleter is the generative-text capability. Every call site must have
// a defined fallback; failures never propagate past the calling extractor.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// MediaToolkit wraps the external media tool (ffmpeg/ffprobe).
type MediaToolkit interface {
	ExtractAudio(ctx context.Context, videoPath string) (string, error)
	CutClip(ctx context.Context, source string, startSec, durationSec float64, outputPath string) error
	// ProbeDuration is best-effort and returns 0 on failure rather than
	// erroring.
	ProbeDuration(ctx context.Context, source string) float64
}

// ObjectUploader publishes files to an addressable object store.
type ObjectUploader interface {
	Upload(ctx context.Context, key, filePath, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// IsConflict reports whether err means the key already exists, which
	// callers resolve with a single delete-then-reupload.
	IsConflict(err error) bool
}

// JobStore persists externally-visible job state. The pipeline treats both
// methods as fire-and-forget beyond logging their errors.
type JobStore interface {
	UpdateJobStatus(jobId, status, message string) error
	UpdateJobResults(jobId string, results *JobResults) error
}
