package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stackslice/internal/types"
	"stackslice/log"
)

// ProcessVideoJob runs the full pipeline for one job: audio extraction,
// transcription, hook/caption/moment generation, clip cutting and packaging.
// Only transcription and packaging failures fail the job; the generation
// stages always degrade to fallbacks. Status is updated before each stage so
// pollers see progress.
func (s *Service) ProcessVideoJob(jobId, videoPath string) {
	defer func() {
		if r := recover(); r != nil {
			log.GetLogger().Error("pipeline panic", zap.String("jobId", jobId), zap.Any("panic", r))
			s.failJob(jobId, fmt.Sprintf("Processing failed: %v", r))
		}
	}()

	ctx := context.Background()
	log.GetLogger().Info("starting video job", zap.String("jobId", jobId), zap.String("video", videoPath))

	s.updateStatus(jobId, types.JobStatusProcessing, "Transcribing audio...")
	audioPath, err := s.Media.ExtractAudio(ctx, videoPath)
	if err != nil {
		log.GetLogger().Error("audio extraction failed", zap.String("jobId", jobId), zap.Error(err))
		s.failJob(jobId, fmt.Sprintf("Processing failed: %v", err))
		return
	}
	transcript, err := s.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		log.GetLogger().Error("transcription failed", zap.String("jobId", jobId), zap.Error(err))
		s.failJob(jobId, fmt.Sprintf("Processing failed: %v", err))
		return
	}
	if transcript.Duration == 0 {
		transcript.Duration = s.Media.ProbeDuration(ctx, videoPath)
	}

	// Hooks and moments only share the read-only transcript, so they run
	// concurrently.
	var hooks []string
	var moments []types.Moment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.updateStatus(jobId, types.JobStatusProcessing, "Generating viral hooks...")
		hooks = s.generateHooks(gctx, transcript.Text)
		return nil
	})
	g.Go(func() error {
		moments = s.identifyViralMoments(gctx, transcript, s.cfg.Generate.TargetClips)
		return nil
	})
	_ = g.Wait()

	s.updateStatus(jobId, types.JobStatusProcessing, "Creating captions...")
	captions := s.generateCaptions(ctx, transcript.Text, hooks)

	s.updateStatus(jobId, types.JobStatusProcessing, "Extracting viral clips...")
	clips := s.materializeClips(ctx, videoPath, moments)

	s.updateStatus(jobId, types.JobStatusProcessing, "Packaging results...")
	packaged, err := s.packageResults(ctx, jobId, transcript.Text, hooks, captions, clips)
	if err != nil {
		log.GetLogger().Error("packaging failed", zap.String("jobId", jobId), zap.Error(err))
		s.failJob(jobId, fmt.Sprintf("Processing failed: %v", err))
		return
	}

	results := &types.JobResults{
		Transcript:  transcript.Text,
		ViralHooks:  hooks,
		Captions:    captions,
		Clips:       summarizeClips(clips),
		ClipUrls:    packaged.ClipLocators,
		ArchivePath: packaged.ArchivePath,
	}
	// A completed job must carry its results; if they cannot be persisted the
	// job is failed rather than left completed with an empty record.
	if err = s.Store.UpdateJobResults(jobId, results); err != nil {
		log.GetLogger().Error("failed to persist job results", zap.String("jobId", jobId), zap.Error(err))
		s.failJob(jobId, fmt.Sprintf("Processing failed: %v", err))
		return
	}
	s.updateStatus(jobId, types.JobStatusCompleted, "Completed")
	log.GetLogger().Info("video job completed",
		zap.String("jobId", jobId),
		zap.Int("hooks", len(hooks)),
		zap.Int("captions", len(captions)),
		zap.Int("clips", len(clips)))

	s.cleanupWorkDir(jobId)
}

func (s *Service) updateStatus(jobId, status, message string) {
	if err := s.Store.UpdateJobStatus(jobId, status, message); err != nil {
		log.GetLogger().Error("failed to update job status",
			zap.String("jobId", jobId), zap.String("status", status), zap.Error(err))
	}
}

func (s *Service) failJob(jobId, reason string) {
	s.updateStatus(jobId, types.JobStatusFailed, reason)
}

func summarizeClips(clips []types.Clip) []types.ClipSummary {
	summaries := make([]types.ClipSummary, 0, len(clips))
	for _, clip := range clips {
		summaries = append(summaries, types.ClipSummary{
			Sequence:    clip.Sequence,
			StartTime:   clip.StartTime,
			EndTime:     clip.EndTime,
			Duration:    clip.Duration,
			Description: clip.Description,
		})
	}
	return summaries
}

// cleanupWorkDir removes the job's working directory after a successful run.
// The archive already lives in the output directory.
func (s *Service) cleanupWorkDir(jobId string) {
	workDir := filepath.Join(s.cfg.App.WorkDir, jobId)
	if err := os.RemoveAll(workDir); err != nil {
		log.GetLogger().Warn("failed to clean job work directory",
			zap.String("jobId", jobId), zap.Error(err))
	}
}
