// Package media wraps the external ffmpeg/ffprobe binaries behind the
// toolkit seam the pipeline consumes.
package media

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"stackslice/log"
)

type Toolkit struct {
	ffmpeg  string
	ffprobe string
}

func NewToolkit(ffmpegPath, ffprobePath string) *Toolkit {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Toolkit{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// ExtractAudio writes a mono 16k mp3 next to the video and returns its path.
func (t *Toolkit) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	dest := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "_audio.mp3"
	cmd := exec.CommandContext(ctx, t.ffmpeg,
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-b:a", "192k",
		dest,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("ffmpeg audio extraction failed",
			zap.String("video", videoPath),
			zap.String("output", string(output)),
			zap.Error(err))
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	return dest, nil
}

// CutClip re-encodes a time range of source into outputPath. The encode
// parameters are fixed, not derived from the input.
func (t *Toolkit) CutClip(ctx context.Context, source string, startSec, durationSec float64, outputPath string) error {
	cmd := exec.CommandContext(ctx, t.ffmpeg,
		"-y",
		"-ss", formatSeconds(startSec),
		"-t", formatSeconds(durationSec),
		"-i", source,
		"-c:v", "libx264",
		"-b:v", "2M",
		"-c:a", "aac",
		"-b:a", "128k",
		"-avoid_negative_ts", "1",
		outputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("ffmpeg clip cut failed",
			zap.String("source", source),
			zap.Float64("start", startSec),
			zap.Float64("duration", durationSec),
			zap.String("output", string(output)),
			zap.Error(err))
		return fmt.Errorf("ffmpeg cut clip: %w", err)
	}
	return nil
}

// ProbeDuration returns the container duration in seconds, or 0 when the
// probe fails. Callers treat 0 as "unknown, proceed best-effort".
func (t *Toolkit) ProbeDuration(ctx context.Context, source string) float64 {
	cmd := exec.CommandContext(ctx, t.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		source,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Warn("ffprobe duration failed",
			zap.String("source", source),
			zap.String("output", string(output)),
			zap.Error(err))
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		log.GetLogger().Warn("ffprobe produced unparseable duration",
			zap.String("source", source),
			zap.String("output", string(output)))
		return 0
	}
	return seconds
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
