package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"stackslice/internal/types"
)

// Transcribe runs Whisper over an audio file and returns the transcript with
// timed segments.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (*types.Transcript, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.whisperModel,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("whisper transcription: %w", err)
	}

	transcript := &types.Transcript{
		Text:     resp.Text,
		Duration: resp.Duration,
		Language: resp.Language,
	}
	for _, seg := range resp.Segments {
		transcript.Segments = append(transcript.Segments, types.Segment{
			Id:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return transcript, nil
}
