package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"stackslice/log"
	apperrors "stackslice/pkg/errors"
)

// fetchRemoteSource downloads a video URL into the job's working directory
// and returns the local path.
func (s *Service) fetchRemoteSource(jobId, url string) (string, error) {
	workDir := filepath.Join(s.cfg.App.WorkDir, jobId)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create job directory", err)
	}

	name := filepath.Base(strings.Split(url, "?")[0])
	if filepath.Ext(name) == "" {
		name = "source.mp4"
	}
	localPath := filepath.Join(workDir, name)

	log.GetLogger().Info("downloading source video", zap.String("jobId", jobId), zap.String("url", url))
	resp, err := s.httpClient.R().SetOutput(localPath).Get(url)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeSourceDownload, "Source download failed", err)
	}
	if resp.StatusCode() >= 400 {
		return "", apperrors.WrapWithDetail(apperrors.CodeSourceDownload, "Source download failed",
			fmt.Sprintf("server returned %d", resp.StatusCode()), nil)
	}
	return localPath, nil
}
