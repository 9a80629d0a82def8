package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"stackslice/internal/types"
	"stackslice/log"
	apperrors "stackslice/pkg/errors"
)

// PackageResult is what the packaging stage hands back to the pipeline.
type PackageResult struct {
	ArchivePath  string
	ClipLocators []types.ClipLocator
}

// packageResults lays out all artifacts in a results directory, zips it into
// the output directory, and publishes clips to object storage when an
// uploader is configured. Only the archive itself is load-bearing; a failed
// clip copy or upload is logged and skipped.
func (s *Service) packageResults(ctx context.Context, jobId, transcript string, hooks []string, captions []types.Caption, clips []types.Clip) (*PackageResult, error) {
	resultsDir := filepath.Join(s.cfg.App.WorkDir, jobId, "results")
	if err := os.MkdirAll(filepath.Join(resultsDir, "captions"), 0755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create results directory", err)
	}
	if err := os.MkdirAll(filepath.Join(resultsDir, "clips"), 0755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create results directory", err)
	}

	if err := os.WriteFile(filepath.Join(resultsDir, "transcript.txt"), []byte(transcript), 0644); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to write transcript", err)
	}

	numbered := make([]string, 0, len(hooks))
	for i, hook := range hooks {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, hook))
	}
	if err := os.WriteFile(filepath.Join(resultsDir, "viral_hooks.txt"), []byte(strings.Join(numbered, "\n\n")), 0644); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to write hooks", err)
	}

	for i, caption := range captions {
		content := caption.Caption + "\n\n" + strings.Join(caption.Hashtags, " ")
		name := filepath.Join(resultsDir, "captions", fmt.Sprintf("caption_%02d.txt", i+1))
		if err := os.WriteFile(name, []byte(content), 0644); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to write caption", err)
		}
	}

	for _, clip := range clips {
		dst := filepath.Join(resultsDir, "clips", filepath.Base(clip.FilePath))
		if err := copyFile(clip.FilePath, dst); err != nil {
			log.GetLogger().Error("failed to copy clip into results, skipping",
				zap.Int("sequence", clip.Sequence), zap.Error(err))
		}
	}

	readme := buildReadme(jobId, len(hooks), len(captions), len(clips))
	if err := os.WriteFile(filepath.Join(resultsDir, "README.txt"), []byte(readme), 0644); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to write readme", err)
	}

	if err := os.MkdirAll(s.cfg.App.OutputDir, 0755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create output directory", err)
	}
	archivePath := filepath.Join(s.cfg.App.OutputDir, jobId+"_results.zip")
	if err := zipDirectory(resultsDir, archivePath); err != nil {
		return nil, apperrors.Wrap(apperrors.CodePackagingFailed, "Result packaging failed", err)
	}
	log.GetLogger().Info("packaged results", zap.String("jobId", jobId), zap.String("archive", archivePath))

	return &PackageResult{
		ArchivePath:  archivePath,
		ClipLocators: s.publishClips(ctx, jobId, clips),
	}, nil
}

// publishClips uploads each clip to object storage and returns locators for
// the clips that published. Every returned locator carries a public url;
// clips that failed to upload are left out, and without an uploader the list
// is empty. A key conflict gets one delete-then-reupload attempt.
func (s *Service) publishClips(ctx context.Context, jobId string, clips []types.Clip) []types.ClipLocator {
	if s.Uploader == nil {
		return nil
	}
	locators := make([]types.ClipLocator, 0, len(clips))
	for _, clip := range clips {
		key := fmt.Sprintf("jobs/%s/clips/%s", jobId, filepath.Base(clip.FilePath))
		url, err := s.Uploader.Upload(ctx, key, clip.FilePath, "video/mp4")
		if err != nil && s.Uploader.IsConflict(err) {
			if delErr := s.Uploader.Delete(ctx, key); delErr == nil {
				url, err = s.Uploader.Upload(ctx, key, clip.FilePath, "video/mp4")
			}
		}
		if err != nil {
			log.GetLogger().Error("clip upload failed, omitting from published clips",
				zap.String("key", key), zap.Error(err))
			continue
		}
		locators = append(locators, types.ClipLocator{
			Sequence:    clip.Sequence,
			StartTime:   clip.StartTime,
			EndTime:     clip.EndTime,
			Description: clip.Description,
			Url:         url,
		})
	}
	return locators
}

func buildReadme(jobId string, hookCount, captionCount, clipCount int) string {
	var b strings.Builder
	b.WriteString("StackSlice AI - Viral Content Results\n")
	b.WriteString("=====================================\n\n")
	b.WriteString(fmt.Sprintf("Job ID: %s\n", jobId))
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	b.WriteString("Contents:\n")
	b.WriteString("- transcript.txt: Full transcript of your video\n")
	b.WriteString(fmt.Sprintf("- viral_hooks.txt: %d attention-grabbing hooks\n", hookCount))
	b.WriteString(fmt.Sprintf("- captions/: %d ready-to-post caption variations with hashtags\n", captionCount))
	b.WriteString(fmt.Sprintf("- clips/: %d viral-ready clips cut from your video\n\n", clipCount))
	b.WriteString("Questions? Contact support@stacksliceai.com\n")
	return b.String()
}

// zipDirectory archives dir into a zip at archivePath. Entries are added in
// sorted path order with forward slashes so the same tree always yields the
// same member list.
func zipDirectory(dir, archivePath string) error {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(files)

	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := zip.NewWriter(out)
	defer w.Close()

	for _, path := range files {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		entry, err := w.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(entry, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
