package openai

import (
	"net/http"
	"net/url"

	"github.com/sashabaranov/go-openai"
)

// Client wraps an OpenAI-compatible endpoint for chat completion and Whisper
// transcription.
type Client struct {
	client       *openai.Client
	chatModel    string
	whisperModel string
}

func NewClient(baseUrl, apiKey, chatModel, whisperModel string, proxy *url.URL) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}

	transport := &http.Transport{}
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}

	cfg.HTTPClient = &http.Client{
		Transport: transport,
		// No timeout: long videos can keep transcription busy for minutes.
	}

	if chatModel == "" {
		chatModel = openai.GPT4o
	}
	if whisperModel == "" {
		whisperModel = openai.Whisper1
	}

	client := openai.NewClientWithConfig(cfg)
	return &Client{client: client, chatModel: chatModel, whisperModel: whisperModel}
}
