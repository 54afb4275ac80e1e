package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	Gemini      GeminiConfig      `yaml:"gemini"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Server      ServerConfig      `yaml:"server"`
	Upload      UploadConfig      `yaml:"upload"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key" env:"GOOGLE_API_KEY"`
	Model   string `yaml:"model" env:"GEMINI_MODEL"`
	// BaseURL overrides the Gemini API endpoint, e.g. for a proxy.
	BaseURL string `yaml:"base_url" env:"GEMINI_BASE_URL"`
}

type SummarizerConfig struct {
	Prompt       string        `yaml:"prompt" env:"SUMMARIZER_PROMPT"`
	Timeout      time.Duration `yaml:"timeout" env:"SUMMARIZER_TIMEOUT"`
	ForceWAVMime bool          `yaml:"force_wav_mime" env:"SUMMARIZER_FORCE_WAV_MIME"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" env:"HTTP_ADDR"`
	Mode         string        `yaml:"mode" env:"GIN_MODE"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT"`
}

type UploadConfig struct {
	TempDir         string `yaml:"temp_dir" env:"UPLOAD_TEMP_DIR"`
	MaxBytes        int64  `yaml:"max_bytes" env:"UPLOAD_MAX_BYTES"`
	PreviewMaxBytes int64  `yaml:"preview_max_bytes" env:"UPLOAD_PREVIEW_MAX_BYTES"`
	SniffContent    bool   `yaml:"sniff_content" env:"UPLOAD_SNIFF_CONTENT"`
}

// PathsConfig configures the optional drop folder. Leaving Input empty
// disables the watcher.
type PathsConfig struct {
	Input    string `yaml:"input" env:"WATCH_INPUT_DIR"`
	Output   string `yaml:"output" env:"WATCH_OUTPUT_DIR"`
	Archived string `yaml:"archived" env:"WATCH_ARCHIVED_DIR"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" env:"MAX_CONCURRENT"`
}

const (
	DefaultModel  = "gemini-2.5-flash"
	DefaultPrompt = "Please summarize the following audio."
)

func (c *Config) Validate() error {
	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	if c.Upload.MaxBytes < 0 {
		return fmt.Errorf("upload.max_bytes must not be negative")
	}
	if c.Summarizer.Timeout < 0 {
		return fmt.Errorf("summarizer.timeout must not be negative")
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}
	if c.Paths.Input != "" && c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required when paths.input is set")
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultModel
	}
	if c.Summarizer.Prompt == "" {
		c.Summarizer.Prompt = DefaultPrompt
	}
	if c.Summarizer.Timeout == 0 {
		c.Summarizer.Timeout = 60 * time.Second
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		// must outlive the summarizer call
		c.Server.WriteTimeout = c.Summarizer.Timeout + 30*time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}
	if c.Upload.TempDir == "" {
		c.Upload.TempDir = filepath.Join(os.TempDir(), "audiosummarizer")
	}
	if c.Upload.MaxBytes == 0 {
		// inline audio must fit in a 20 MB Gemini request
		c.Upload.MaxBytes = 20 << 20
	}
	if c.Upload.PreviewMaxBytes == 0 {
		c.Upload.PreviewMaxBytes = 5 << 20
	}
	if c.Paths.Input != "" && c.Paths.Archived == "" {
		c.Paths.Archived = filepath.Join(filepath.Dir(c.Paths.Input), "archived")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}

// WatchEnabled reports whether the drop folder is configured.
func (c *Config) WatchEnabled() bool {
	return c.Paths.Input != ""
}
