package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"stackslice/internal/types"
	"stackslice/log"
)

const maxHooks = 10

// hookPromptTranscriptLimit bounds how much transcript the hook prompt
// carries; the opening is what matters for hooks.
const hookPromptTranscriptLimit = 1000

// generateHooks produces short attention-grabbing opening lines. On
// generation failure or an unusable reply it returns the fixed fallback set.
func (s *Service) generateHooks(ctx context.Context, transcript string) []string {
	prompt := fmt.Sprintf(types.HookPrompt, truncateRunes(transcript, hookPromptTranscriptLimit))

	respText, err := s.ChatCompleter.ChatCompletion(ctx, prompt, 2000, s.cfg.Generate.HookTemperature)
	if err != nil {
		log.GetLogger().Error("hook generation failed, using fallback hooks", zap.Error(err))
		return fallbackHooks()
	}

	limit := s.cfg.Generate.MaxHooks
	if limit <= 0 {
		limit = maxHooks
	}
	hooks := parseHooks(respText, limit)
	if len(hooks) == 0 {
		log.GetLogger().Warn("no hooks parsed from model reply, using fallback hooks")
		return fallbackHooks()
	}
	log.GetLogger().Info("generated viral hooks", zap.Int("count", len(hooks)))
	return hooks
}

// parseHooks accepts numbered or bulleted lines, strips the leading ordinal
// (first '.' then first ')') and surrounding quotes, and drops anything left
// empty. At most limit survive.
func parseHooks(text string, limit int) []string {
	var hooks []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first := rune(line[0])
		if !unicode.IsDigit(first) && !strings.HasPrefix(line, "-") {
			continue
		}

		hook := line
		if idx := strings.Index(hook, "."); idx >= 0 {
			hook = hook[idx+1:]
		}
		if idx := strings.Index(hook, ")"); idx >= 0 {
			hook = hook[idx+1:]
		}
		hook = strings.TrimSpace(hook)
		hook = strings.Trim(hook, `"'`)
		if hook == "" {
			continue
		}
		hooks = append(hooks, hook)
		if len(hooks) == limit {
			break
		}
	}
	return hooks
}

// fallbackHooks is the fixed literal set used when generation yields nothing.
func fallbackHooks() []string {
	return []string{
		"Wait until you hear this...",
		"This is actually insane...",
		"You need to know this...",
		"Stop scrolling - this matters...",
		"I can't believe this...",
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
