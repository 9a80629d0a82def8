package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"stackslice/internal/types"
	"stackslice/log"
)

const maxCaptions = 5

// maxHashtagsPerCaption caps how many hashtags a single caption carries.
const maxHashtagsPerCaption = 15

const captionPromptTranscriptLimit = 800

// generateCaptions produces caption+hashtag variations, seeding the prompt
// with the top hook when one exists. Failure or an unusable reply degrades
// to a single fallback caption built from the transcript head.
func (s *Service) generateCaptions(ctx context.Context, transcript string, hooks []string) []types.Caption {
	hookContext := ""
	if len(hooks) > 0 {
		hookContext = fmt.Sprintf("Viral hook: %s\n\n", hooks[0])
	}
	prompt := fmt.Sprintf(types.CaptionPrompt, hookContext, truncateRunes(transcript, captionPromptTranscriptLimit))

	respText, err := s.ChatCompleter.ChatCompletion(ctx, prompt, 3000, s.cfg.Generate.CaptionTemp)
	if err != nil {
		log.GetLogger().Error("caption generation failed, using fallback caption", zap.Error(err))
		return fallbackCaptions(transcript)
	}

	limit := s.cfg.Generate.MaxCaptions
	if limit <= 0 {
		limit = maxCaptions
	}
	captions := parseCaptions(respText, limit)
	if len(captions) == 0 {
		log.GetLogger().Warn("no captions parsed from model reply, using fallback caption")
		return fallbackCaptions(transcript)
	}
	log.GetLogger().Info("generated caption variations", zap.Int("count", len(captions)))
	return captions
}

// parseCaptions splits the reply on ---CAPTION markers, discards the
// pre-content piece, and within each section takes the content after the
// closing --- separator. Hashtag lines contribute #-prefixed tokens; other
// non-empty lines form the caption body. Sections without body text are
// dropped entirely.
func parseCaptions(text string, limit int) []types.Caption {
	var captions []types.Caption

	sections := strings.Split(text, "---CAPTION")
	for _, section := range sections[1:] {
		parts := strings.SplitN(section, "---", 2)
		if len(parts) < 2 {
			continue
		}
		content := strings.TrimSpace(parts[1])

		var bodyLines []string
		var hashtags []string
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "#") {
				for _, token := range strings.Fields(line) {
					if strings.HasPrefix(token, "#") && len(hashtags) < maxHashtagsPerCaption {
						hashtags = append(hashtags, token)
					}
				}
			} else if line != "" {
				bodyLines = append(bodyLines, line)
			}
		}

		if len(bodyLines) == 0 {
			continue
		}
		captions = append(captions, newCaption(strings.Join(bodyLines, "\n"), hashtags))
		if len(captions) == limit {
			break
		}
	}
	return captions
}

// fallbackCaptions builds one caption from the first 100 transcript
// characters plus a fixed call to action and generic hashtags.
func fallbackCaptions(transcript string) []types.Caption {
	snippet := truncateRunes(transcript, 100)
	text := snippet + "... 💯\n\nWhat do you think? Let me know! 👇"
	return []types.Caption{
		newCaption(text, []string{"#fyp", "#foryou", "#viral", "#tiktoktips"}),
	}
}

func newCaption(text string, hashtags []string) types.Caption {
	return types.Caption{
		Caption:        text,
		Hashtags:       hashtags,
		CharacterCount: utf8.RuneCountInString(text) + utf8.RuneCountInString(strings.Join(hashtags, " ")),
	}
}
