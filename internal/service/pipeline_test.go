package service

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stackslice/internal/mocks"
	"stackslice/internal/types"
)

// recorderStore captures status transitions and results in memory; pipeline
// stages update status concurrently, hence the mutex.
type recorderStore struct {
	mu         sync.Mutex
	statuses   []string
	messages   []string
	results    *types.JobResults
	resultsErr error
}

func (r *recorderStore) UpdateJobStatus(jobId, status, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
	r.messages = append(r.messages, message)
	return nil
}

func (r *recorderStore) UpdateJobResults(jobId string, results *types.JobResults) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resultsErr != nil {
		return r.resultsErr
	}
	r.results = results
	return nil
}

func (r *recorderStore) last() (string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return "", ""
	}
	return r.statuses[len(r.statuses)-1], r.messages[len(r.messages)-1]
}

func TestProcessVideoJobCompletesOnAllGeneratorFailures(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generate.TargetClips = 2

	videoDir := t.TempDir()
	videoPath := filepath.Join(videoDir, "talk.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("video"), 0644))

	media := &mocks.MockMediaToolkit{}
	media.On("ExtractAudio", mock.Anything, videoPath).Return(videoPath+"_audio.mp3", nil)
	media.On("CutClip", mock.Anything, videoPath, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, os.WriteFile(args.String(4), []byte("clip"), 0644))
		}).Return(nil)

	transcriber := &mocks.MockTranscriber{}
	transcriber.On("Transcribe", mock.Anything, videoPath+"_audio.mp3").
		Return(&types.Transcript{Text: "full transcript text", Duration: 120}, nil)

	chat := &mocks.MockChatCompleter{}
	chat.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("provider down"))

	store := &recorderStore{}

	svc := newTestService(cfg)
	svc.Media = media
	svc.Transcriber = transcriber
	svc.ChatCompleter = chat
	svc.Store = store

	svc.ProcessVideoJob("job-e2e", videoPath)

	status, msg := store.last()
	assert.Equal(t, types.JobStatusCompleted, status)
	assert.Equal(t, "Completed", msg)

	require.NotNil(t, store.results)
	assert.Equal(t, fallbackHooks(), store.results.ViralHooks)
	require.Len(t, store.results.Captions, 1)
	require.Len(t, store.results.Clips, 2)
	assert.Equal(t, 0.0, store.results.Clips[0].StartTime)
	assert.Equal(t, 30.0, store.results.Clips[1].StartTime)

	assert.FileExists(t, store.results.ArchivePath)
	members := archiveMembers(t, store.results.ArchivePath)
	assert.Contains(t, members, "transcript.txt")
	assert.Contains(t, members, "viral_hooks.txt")
	assert.Contains(t, members, "clips/talk_clip_01.mp4")
	assert.Contains(t, members, "clips/talk_clip_02.mp4")

	// Stage messages show up in order around the concurrent section.
	assert.Contains(t, store.messages, "Transcribing audio...")
	assert.Contains(t, store.messages, "Generating viral hooks...")
	assert.Contains(t, store.messages, "Creating captions...")
	assert.Contains(t, store.messages, "Extracting viral clips...")
	assert.Contains(t, store.messages, "Packaging results...")

	// The job work directory is cleaned up after success.
	assert.NoDirExists(t, filepath.Join(cfg.App.WorkDir, "job-e2e"))
}

func TestProcessVideoJobFailsOnTranscriptionError(t *testing.T) {
	cfg := testConfig(t)
	videoPath := filepath.Join(t.TempDir(), "talk.mp4")

	media := &mocks.MockMediaToolkit{}
	media.On("ExtractAudio", mock.Anything, videoPath).Return(videoPath+"_audio.mp3", nil)

	transcriber := &mocks.MockTranscriber{}
	transcriber.On("Transcribe", mock.Anything, mock.Anything).
		Return(nil, errors.New("whisper unavailable"))

	store := &recorderStore{}
	svc := newTestService(cfg)
	svc.Media = media
	svc.Transcriber = transcriber
	svc.Store = store

	svc.ProcessVideoJob("job-fail", videoPath)

	status, msg := store.last()
	assert.Equal(t, types.JobStatusFailed, status)
	assert.Contains(t, msg, "Processing failed:")
	assert.Nil(t, store.results)
}

func TestProcessVideoJobFailsOnAudioExtractionError(t *testing.T) {
	cfg := testConfig(t)
	videoPath := filepath.Join(t.TempDir(), "talk.mp4")

	media := &mocks.MockMediaToolkit{}
	media.On("ExtractAudio", mock.Anything, videoPath).Return("", errors.New("no such file"))

	store := &recorderStore{}
	svc := newTestService(cfg)
	svc.Media = media
	svc.Store = store

	svc.ProcessVideoJob("job-noaudio", videoPath)

	status, _ := store.last()
	assert.Equal(t, types.JobStatusFailed, status)
}

func TestProcessVideoJobFailsWhenResultsCannotBePersisted(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generate.TargetClips = 1
	videoPath := filepath.Join(t.TempDir(), "talk.mp4")

	media := &mocks.MockMediaToolkit{}
	media.On("ExtractAudio", mock.Anything, videoPath).Return(videoPath+"_audio.mp3", nil)
	media.On("CutClip", mock.Anything, videoPath, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, os.WriteFile(args.String(4), []byte("clip"), 0644))
		}).Return(nil)

	transcriber := &mocks.MockTranscriber{}
	transcriber.On("Transcribe", mock.Anything, mock.Anything).
		Return(&types.Transcript{Text: "text", Duration: 60}, nil)

	chat := &mocks.MockChatCompleter{}
	chat.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("down"))

	store := &recorderStore{resultsErr: errors.New("database is locked")}
	svc := newTestService(cfg)
	svc.Media = media
	svc.Transcriber = transcriber
	svc.ChatCompleter = chat
	svc.Store = store

	svc.ProcessVideoJob("job-noresults", videoPath)

	// The record never claims completed without its results.
	status, msg := store.last()
	assert.Equal(t, types.JobStatusFailed, status)
	assert.Contains(t, msg, "Processing failed:")
	assert.NotContains(t, store.statuses, types.JobStatusCompleted)
}

func TestProcessVideoJobProbesDurationWhenMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generate.TargetClips = 1
	videoPath := filepath.Join(t.TempDir(), "talk.mp4")

	media := &mocks.MockMediaToolkit{}
	media.On("ExtractAudio", mock.Anything, videoPath).Return(videoPath+"_audio.mp3", nil)
	media.On("ProbeDuration", mock.Anything, videoPath).Return(90.0).Once()
	media.On("CutClip", mock.Anything, videoPath, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, os.WriteFile(args.String(4), []byte("clip"), 0644))
		}).Return(nil)

	transcriber := &mocks.MockTranscriber{}
	transcriber.On("Transcribe", mock.Anything, mock.Anything).
		Return(&types.Transcript{Text: "text"}, nil)

	chat := &mocks.MockChatCompleter{}
	chat.On("ChatCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("down"))

	store := &recorderStore{}
	svc := newTestService(cfg)
	svc.Media = media
	svc.Transcriber = transcriber
	svc.ChatCompleter = chat
	svc.Store = store

	svc.ProcessVideoJob("job-probe", videoPath)

	status, _ := store.last()
	assert.Equal(t, types.JobStatusCompleted, status)
	media.AssertExpectations(t)
}
