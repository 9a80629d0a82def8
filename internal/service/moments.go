package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"stackslice/internal/types"
	"stackslice/log"
	"stackslice/pkg/util"
)

// maxMoments caps the extractor output after score sorting.
const maxMoments = 20

// identifyViralMoments asks the model for time-ranged moments and parses the
// reply. Generation failure or an unusable reply degrades to the synthetic
// fallback sequence; this method never returns an empty list for count > 0.
func (s *Service) identifyViralMoments(ctx context.Context, transcript *types.Transcript, targetCount int) []types.Moment {
	prompt := fmt.Sprintf(types.MomentPrompt, transcript.Text, targetCount, targetCount)

	respText, err := s.ChatCompleter.ChatCompletion(ctx, prompt, 4000, s.cfg.Generate.MomentTemp)
	if err != nil {
		log.GetLogger().Error("moment identification failed, using fallback moments", zap.Error(err))
		return fallbackMoments(targetCount)
	}

	moments := parseViralMoments(respText)
	if len(moments) == 0 {
		log.GetLogger().Warn("no complete moments parsed from model reply, using fallback moments",
			zap.Int("reply_len", len(respText)))
		return fallbackMoments(targetCount)
	}

	return refineMoments(moments, transcript.Segments)
}

// momentAccumulator holds the record currently being assembled. A field key
// is only present once its value parsed cleanly.
type momentAccumulator struct {
	start, end  float64
	description string
	score       int

	hasStart, hasEnd, hasDescription, hasScore bool
}

func (a *momentAccumulator) complete() bool {
	return a.hasStart && a.hasEnd && a.hasDescription && a.hasScore
}

// parseViralMoments scans model output line by line, recognizing the
// START/END/DESCRIPTION/SCORE markers case-insensitively in any order. A
// record is emitted when a SCORE line lands with all four fields present;
// the accumulator then resets. A field that fails to parse never enters the
// accumulator, so a malformed START quietly kills its whole record. Output
// is stably sorted by score descending and capped at maxMoments.
func parseViralMoments(text string) []types.Moment {
	var moments []types.Moment
	var acc momentAccumulator

	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		value := valueAfterColon(line)

		switch {
		case strings.Contains(upper, "START:"):
			seconds, err := util.ParseTimestamp(value)
			if err != nil {
				log.GetLogger().Debug("unparseable START field", zap.String("line", line), zap.Error(err))
				continue
			}
			acc.start, acc.hasStart = seconds, true
		case strings.Contains(upper, "END:"):
			seconds, err := util.ParseTimestamp(value)
			if err != nil {
				log.GetLogger().Debug("unparseable END field", zap.String("line", line), zap.Error(err))
				continue
			}
			acc.end, acc.hasEnd = seconds, true
		case strings.Contains(upper, "DESCRIPTION:"):
			if value == "" {
				continue
			}
			acc.description, acc.hasDescription = value, true
		case strings.Contains(upper, "SCORE:"):
			score, err := strconv.Atoi(value)
			if err != nil {
				log.GetLogger().Debug("unparseable SCORE field", zap.String("line", line), zap.Error(err))
				continue
			}
			acc.score, acc.hasScore = score, true
			if !acc.complete() {
				continue
			}
			if acc.end > acc.start {
				moments = append(moments, types.Moment{
					StartTime:   acc.start,
					EndTime:     acc.end,
					Duration:    acc.end - acc.start,
					Description: acc.description,
					Score:       acc.score,
				})
			} else {
				log.GetLogger().Debug("dropping moment with non-positive duration",
					zap.Float64("start", acc.start),
					zap.Float64("end", acc.end))
			}
			acc = momentAccumulator{}
		}
	}

	sort.SliceStable(moments, func(i, j int) bool {
		return moments[i].Score > moments[j].Score
	})
	if len(moments) > maxMoments {
		moments = moments[:maxMoments]
	}
	return moments
}

// valueAfterColon returns the trimmed remainder of a marker line after its
// first colon.
func valueAfterColon(line string) string {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

// fallbackMoments produces count synthetic 20-second moments spaced 30
// seconds apart with a neutral score, trading quality for availability so
// the pipeline always has something to cut.
func fallbackMoments(count int) []types.Moment {
	moments := make([]types.Moment, 0, count)
	for i := 0; i < count; i++ {
		start := float64(30 * i)
		moments = append(moments, types.Moment{
			StartTime:   start,
			EndTime:     start + 20,
			Duration:    20,
			Description: fmt.Sprintf("Clip %d", i+1),
			Score:       50,
		})
	}
	return moments
}
