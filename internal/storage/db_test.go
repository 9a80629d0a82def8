package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackslice/internal/types"
	"stackslice/log"
)

func initTestDB(t *testing.T) {
	t.Helper()
	log.SetLogDir(t.TempDir())
	log.InitLogger()

	dbPath := filepath.Join(t.TempDir(), "data", "stackslice.db")
	require.NoError(t, InitDB(dbPath))
	t.Cleanup(func() { DB = nil })
}

func TestSaveJobUpsertsByJobId(t *testing.T) {
	initTestDB(t)

	job := &types.VideoJob{
		JobId:    "job-1",
		VideoSrc: "video.mp4",
		Status:   types.JobStatusPending,
	}
	require.NoError(t, SaveJob(job))

	// Second save with the same JobId updates in place.
	update := &types.VideoJob{
		JobId:     "job-1",
		VideoSrc:  "video.mp4",
		Status:    types.JobStatusProcessing,
		StatusMsg: "Transcribing audio...",
	}
	require.NoError(t, SaveJob(update))

	got, err := GetJob("job-1")
	require.NoError(t, err)
	assert.Equal(t, types.JobStatusProcessing, got.Status)
	assert.Equal(t, "Transcribing audio...", got.StatusMsg)

	jobs, err := ListJobs(10)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestStoreUpdateJobStatusAndResults(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveJob(&types.VideoJob{
		JobId:  "job-2",
		Status: types.JobStatusPending,
	}))

	store := NewStore()
	require.NoError(t, store.UpdateJobStatus("job-2", types.JobStatusFailed, "Processing failed: boom"))

	got, err := GetJob("job-2")
	require.NoError(t, err)
	assert.Equal(t, types.JobStatusFailed, got.Status)
	assert.Equal(t, "Processing failed: boom", got.FailReason)

	results := &types.JobResults{
		Transcript: "hello world",
		ViralHooks: []string{"Wait until you hear this..."},
	}
	require.NoError(t, store.UpdateJobResults("job-2", results))

	got, err = GetJob("job-2")
	require.NoError(t, err)
	require.NotNil(t, got.Results)
	assert.Equal(t, "hello world", got.Results.Transcript)
	assert.Len(t, got.Results.ViralHooks, 1)
}

func TestMarkStaleJobs(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveJob(&types.VideoJob{JobId: "stale", Status: types.JobStatusProcessing}))
	require.NoError(t, SaveJob(&types.VideoJob{JobId: "done", Status: types.JobStatusCompleted}))

	count, err := MarkStaleJobs()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := GetJob("stale")
	require.NoError(t, err)
	assert.Equal(t, types.JobStatusFailed, got.Status)

	done, err := GetJob("done")
	require.NoError(t, err)
	assert.Equal(t, types.JobStatusCompleted, done.Status)
}

func TestGetJobNotFound(t *testing.T) {
	initTestDB(t)

	_, err := GetJob("missing")
	assert.Error(t, err)
}
