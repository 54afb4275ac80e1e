package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/audio-summarizer/internal/config"
	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
)

type implSummarizer struct {
	provider     Provider
	logger       logger.Logger
	model        string
	prompt       string
	timeout      time.Duration
	forceWAVMime bool
	maxBytes     int64
	sem          *semaphore
}

// New creates a Summarizer that sends each request through provider.
// cfg must have been validated.
func New(cfg *config.Config, provider Provider, log logger.Logger) Summarizer {
	maxConcurrent := cfg.Performance.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implSummarizer{
		provider:     provider,
		logger:       log.With("component", "summarizer"),
		model:        cfg.Gemini.Model,
		prompt:       cfg.Summarizer.Prompt,
		timeout:      cfg.Summarizer.Timeout,
		forceWAVMime: cfg.Summarizer.ForceWAVMime,
		maxBytes:     cfg.Upload.MaxBytes,
		sem:          newSemaphore(maxConcurrent),
	}
}

// NewGemini creates a Summarizer backed by the Gemini API using the key
// and model from cfg.
func NewGemini(cfg *config.Config, log logger.Logger) Summarizer {
	return New(cfg, NewGeminiProvider(cfg.Gemini.APIKey, cfg.Gemini.BaseURL), log)
}
