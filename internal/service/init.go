package service

import (
	"github.com/go-resty/resty/v2"

	"stackslice/config"
	"stackslice/internal/storage"
	"stackslice/internal/types"
	"stackslice/pkg/media"
	"stackslice/pkg/openai"
	"stackslice/pkg/oss"
)

// Service runs the content-generation pipeline. Every external capability
// sits behind an interface so the pipeline can be exercised without network
// or media tools.
type Service struct {
	cfg *config.Config

	Transcriber   types.Transcriber
	ChatCompleter types.ChatCompleter
	Media         types.MediaToolkit
	Uploader      types.ObjectUploader // nil disables clip publishing
	Store         types.JobStore

	httpClient *resty.Client
}

func NewService(cfg *config.Config) *Service {
	llmClient := openai.NewClient(cfg.Llm.BaseUrl, cfg.Llm.ApiKey, cfg.Llm.Model, "", cfg.App.ParsedProxy)

	transcribeClient := llmClient
	if cfg.Transcribe.BaseUrl != cfg.Llm.BaseUrl || cfg.Transcribe.ApiKey != cfg.Llm.ApiKey {
		transcribeClient = openai.NewClient(cfg.Transcribe.BaseUrl, cfg.Transcribe.ApiKey, "", cfg.Transcribe.Model, cfg.App.ParsedProxy)
	}

	var uploader types.ObjectUploader
	if cfg.Oss.Bucket != "" {
		uploader = oss.NewClient(cfg.Oss.AccessKeyId, cfg.Oss.AccessKeySecret, cfg.Oss.Bucket, cfg.Oss.Region, cfg.Oss.Endpoint)
	}

	httpClient := resty.New()
	if cfg.App.Proxy != "" {
		httpClient.SetProxy(cfg.App.Proxy)
	}

	return &Service{
		cfg:           cfg,
		Transcriber:   transcribeClient,
		ChatCompleter: llmClient,
		Media:         media.NewToolkit(cfg.App.FfmpegPath, cfg.App.FfprobePath),
		Uploader:      uploader,
		Store:         storage.NewStore(),
		httpClient:    httpClient,
	}
}
