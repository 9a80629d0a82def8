package service

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stackslice/internal/mocks"
	"stackslice/internal/types"
)

func writeFakeClip(t *testing.T, dir, name string) types.Clip {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("clip-bytes"), 0644))
	return types.Clip{Sequence: 1, FilePath: path, StartTime: 0, EndTime: 20, Duration: 20, Description: "clip"}
}

func archiveMembers(t *testing.T, archivePath string) []string {
	t.Helper()
	r, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestPackageResultsArtifactLayout(t *testing.T) {
	cfg := testConfig(t)
	svc := newTestService(cfg)

	clipDir := t.TempDir()
	clip := writeFakeClip(t, clipDir, "talk_clip_01.mp4")

	hooks := []string{"First hook", "Second hook"}
	captions := []types.Caption{
		{Caption: "Body one", Hashtags: []string{"#a", "#b"}},
		{Caption: "Body two", Hashtags: []string{"#c"}},
	}

	result, err := svc.packageResults(context.Background(), "job-1", "full transcript", hooks, captions, []types.Clip{clip})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.App.OutputDir, "job-1_results.zip"), result.ArchivePath)

	members := archiveMembers(t, result.ArchivePath)
	assert.ElementsMatch(t, []string{
		"README.txt",
		"transcript.txt",
		"viral_hooks.txt",
		"captions/caption_01.txt",
		"captions/caption_02.txt",
		"clips/talk_clip_01.mp4",
	}, members)

	// Without an uploader nothing is published, so no locators.
	assert.Empty(t, result.ClipLocators)

	hooksContent, err := os.ReadFile(filepath.Join(cfg.App.WorkDir, "job-1", "results", "viral_hooks.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1. First hook\n\n2. Second hook", string(hooksContent))

	captionContent, err := os.ReadFile(filepath.Join(cfg.App.WorkDir, "job-1", "results", "captions", "caption_01.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Body one\n\n#a #b", string(captionContent))
}

func TestPackageResultsIsRepeatable(t *testing.T) {
	cfg := testConfig(t)
	svc := newTestService(cfg)
	clip := writeFakeClip(t, t.TempDir(), "talk_clip_01.mp4")

	first, err := svc.packageResults(context.Background(), "job-2", "t", []string{"h"}, nil, []types.Clip{clip})
	require.NoError(t, err)
	second, err := svc.packageResults(context.Background(), "job-2", "t", []string{"h"}, nil, []types.Clip{clip})
	require.NoError(t, err)

	assert.Equal(t, first.ArchivePath, second.ArchivePath)
	assert.ElementsMatch(t, archiveMembers(t, first.ArchivePath), archiveMembers(t, second.ArchivePath))
}

func TestPublishClipsConflictRetriesOnce(t *testing.T) {
	svc := newTestService(testConfig(t))

	clip := writeFakeClip(t, t.TempDir(), "talk_clip_01.mp4")
	key := "jobs/job-3/clips/talk_clip_01.mp4"
	conflict := errors.New("FileAlreadyExists")

	uploader := &mocks.MockObjectUploader{}
	uploader.On("Upload", mock.Anything, key, clip.FilePath, "video/mp4").Return("", conflict).Once()
	uploader.On("IsConflict", conflict).Return(true)
	uploader.On("Delete", mock.Anything, key).Return(nil).Once()
	uploader.On("Upload", mock.Anything, key, clip.FilePath, "video/mp4").
		Return("https://bucket.example.com/"+key, nil).Once()
	svc.Uploader = uploader

	locators := svc.publishClips(context.Background(), "job-3", []types.Clip{clip})
	require.Len(t, locators, 1)
	assert.Equal(t, "https://bucket.example.com/"+key, locators[0].Url)
	uploader.AssertExpectations(t)
}

func TestPublishClipsOmitsFailedUploads(t *testing.T) {
	svc := newTestService(testConfig(t))
	clipDir := t.TempDir()
	failing := writeFakeClip(t, clipDir, "talk_clip_01.mp4")
	ok := writeFakeClip(t, clipDir, "talk_clip_02.mp4")
	ok.Sequence = 2

	hardErr := errors.New("access denied")
	uploader := &mocks.MockObjectUploader{}
	uploader.On("Upload", mock.Anything, mock.Anything, failing.FilePath, "video/mp4").Return("", hardErr)
	uploader.On("IsConflict", hardErr).Return(false)
	uploader.On("Upload", mock.Anything, mock.Anything, ok.FilePath, "video/mp4").
		Return("https://bucket.example.com/ok", nil)
	svc.Uploader = uploader

	// Only the published clip appears; the failed one is omitted entirely
	// rather than carried with an empty url.
	locators := svc.publishClips(context.Background(), "job-4", []types.Clip{failing, ok})
	require.Len(t, locators, 1)
	assert.Equal(t, 2, locators[0].Sequence)
	assert.Equal(t, "https://bucket.example.com/ok", locators[0].Url)
}

func TestPublishClipsEmptyWhenEveryUploadFails(t *testing.T) {
	svc := newTestService(testConfig(t))
	clip := writeFakeClip(t, t.TempDir(), "talk_clip_01.mp4")

	hardErr := errors.New("access denied")
	uploader := &mocks.MockObjectUploader{}
	uploader.On("Upload", mock.Anything, mock.Anything, clip.FilePath, "video/mp4").Return("", hardErr)
	uploader.On("IsConflict", hardErr).Return(false)
	svc.Uploader = uploader

	assert.Empty(t, svc.publishClips(context.Background(), "job-5", []types.Clip{clip}))
}
