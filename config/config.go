// Package config loads and persists the TOML configuration file.
// The loaded Config is passed explicitly into constructors; nothing in the
// core reads it through a package-level lookup.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type App struct {
	WorkDir     string `toml:"work_dir"`     // per-job working directories live under here
	OutputDir   string `toml:"output_dir"`   // packaged results and archives
	LogDir      string `toml:"log_dir"`
	FfmpegPath  string `toml:"ffmpeg_path"`
	FfprobePath string `toml:"ffprobe_path"`
	Proxy       string `toml:"proxy"`

	MaxUploadSizeMB int `toml:"max_upload_size_mb"`

	ParsedProxy *url.URL `toml:"-"`
}

// Llm configures the chat-completion provider used for hook, caption and
// moment generation. Any OpenAI-compatible endpoint works.
type Llm struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

// Transcribe configures the Whisper-compatible transcription endpoint.
type Transcribe struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

// Generate holds tunables for the content-generation pipeline.
type Generate struct {
	TargetClips     int     `toml:"target_clips"`
	MaxHooks        int     `toml:"max_hooks"`
	MaxCaptions     int     `toml:"max_captions"`
	HookTemperature float32 `toml:"hook_temperature"`
	CaptionTemp     float32 `toml:"caption_temperature"`
	MomentTemp      float32 `toml:"moment_temperature"`
}

// Queue configures optional Redis-backed background processing. When
// RedisAddr is empty the server falls back to the in-process task runner.
type Queue struct {
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
}

// Oss configures optional clip publishing to Aliyun OSS. Publishing is
// skipped entirely when Bucket is empty.
type Oss struct {
	Endpoint        string `toml:"endpoint"`
	Region          string `toml:"region"`
	AccessKeyId     string `toml:"access_key_id"`
	AccessKeySecret string `toml:"access_key_secret"`
	Bucket          string `toml:"bucket"`
}

type Config struct {
	Server     Server     `toml:"server"`
	App        App        `toml:"app"`
	Llm        Llm        `toml:"llm"`
	Transcribe Transcribe `toml:"transcribe"`
	Generate   Generate   `toml:"generate"`
	Queue      Queue      `toml:"queue"`
	Oss        Oss        `toml:"oss"`
}

// Conf is the load target the entrypoints fill once and hand down.
var Conf Config

var resolveConfigPath = func() (string, error) {
	return filepath.Join("config", "config.toml"), nil
}

// ResolveConfigPath returns the path of the active config file.
func ResolveConfigPath() (string, error) {
	return resolveConfigPath()
}

func defaultConfig() Config {
	return Config{
		Server: Server{
			Host: "127.0.0.1",
			Port: 8888,
		},
		App: App{
			WorkDir:         "./jobs",
			OutputDir:       "./outputs",
			LogDir:          "./logs",
			FfmpegPath:      "ffmpeg",
			FfprobePath:     "ffprobe",
			MaxUploadSizeMB: 500,
		},
		Llm: Llm{
			Model: "gpt-4o",
		},
		Transcribe: Transcribe{
			Model: "whisper-1",
		},
		Generate: Generate{
			TargetClips:     20,
			MaxHooks:        10,
			MaxCaptions:     5,
			HookTemperature: 0.9,
			CaptionTemp:     0.8,
			MomentTemp:      0.7,
		},
		Queue: Queue{
			Concurrency: 2,
		},
	}
}

// LoadOrCreateConfig loads the config file, writing defaults first when the
// file does not exist. It reports whether a new file was created.
func LoadOrCreateConfig() (bool, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return false, err
	}

	if _, err = os.Stat(path); errors.Is(err, os.ErrNotExist) {
		Conf = defaultConfig()
		applyEnvOverrides(&Conf)
		if err = SaveConfig(); err != nil {
			return false, fmt.Errorf("write default config: %w", err)
		}
		return true, nil
	} else if err != nil {
		return false, err
	}

	Conf = defaultConfig()
	if _, err = toml.DecodeFile(path, &Conf); err != nil {
		return false, fmt.Errorf("decode config %s: %w", path, err)
	}
	applyEnvOverrides(&Conf)
	return false, nil
}

// SaveConfig writes Conf to the config file, creating parent directories.
func SaveConfig() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(Conf)
}

// CheckConfig validates required fields and normalizes derived ones.
func CheckConfig() error {
	if Conf.Llm.ApiKey == "" {
		return errors.New("llm.api_key is required (or set LLM_API_KEY)")
	}
	if Conf.Transcribe.ApiKey == "" {
		Conf.Transcribe.ApiKey = Conf.Llm.ApiKey
	}
	if Conf.Generate.TargetClips <= 0 {
		Conf.Generate.TargetClips = defaultConfig().Generate.TargetClips
	}
	if Conf.App.Proxy != "" {
		parsed, err := url.Parse(Conf.App.Proxy)
		if err != nil {
			return fmt.Errorf("invalid proxy address %q: %w", Conf.App.Proxy, err)
		}
		Conf.App.ParsedProxy = parsed
	}
	return nil
}

// Env vars override file values so deployments can keep secrets out of the
// config file, matching the original service's environment-driven settings.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.Llm.ApiKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.Llm.BaseUrl = v
	}
	if v := os.Getenv("TRANSCRIBE_API_KEY"); v != "" {
		c.Transcribe.ApiKey = v
	}
	if v := os.Getenv("OSS_ACCESS_KEY_ID"); v != "" {
		c.Oss.AccessKeyId = v
	}
	if v := os.Getenv("OSS_ACCESS_KEY_SECRET"); v != "" {
		c.Oss.AccessKeySecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Queue.RedisAddr = v
	}
}
