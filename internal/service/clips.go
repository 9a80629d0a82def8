package service

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"stackslice/internal/types"
	"stackslice/log"
	"stackslice/pkg/util"
)

// materializeClips cuts one file per moment next to the source video.
// Sequence numbers follow the moments' ranked order and are assigned before
// cutting, so a failed cut leaves a gap in the filenames rather than
// renumbering later clips. Cut failures are logged and skipped.
func (s *Service) materializeClips(ctx context.Context, videoPath string, moments []types.Moment) []types.Clip {
	dir := filepath.Dir(videoPath)
	stem := util.FileStem(videoPath)
	ext := filepath.Ext(videoPath)

	clips := make([]types.Clip, 0, len(moments))
	for i, moment := range moments {
		seq := i + 1
		outputPath := filepath.Join(dir, fmt.Sprintf("%s_clip_%02d%s", stem, seq, ext))

		if err := s.Media.CutClip(ctx, videoPath, moment.StartTime, moment.Duration, outputPath); err != nil {
			log.GetLogger().Error("clip cut failed, skipping moment",
				zap.Int("sequence", seq),
				zap.Float64("start", moment.StartTime),
				zap.Float64("duration", moment.Duration),
				zap.Error(err))
			continue
		}

		clips = append(clips, types.Clip{
			Sequence:    seq,
			FilePath:    outputPath,
			StartTime:   moment.StartTime,
			EndTime:     moment.EndTime,
			Duration:    moment.Duration,
			Description: moment.Description,
			Score:       moment.Score,
		})
	}

	log.GetLogger().Info("materialized clips",
		zap.Int("requested", len(moments)),
		zap.Int("produced", len(clips)))
	return clips
}
