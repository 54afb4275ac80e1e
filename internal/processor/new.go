package processor

import (
	"github.com/nguyentantai21042004/audio-summarizer/internal/config"
	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
	"github.com/nguyentantai21042004/audio-summarizer/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, summ summarizer.Summarizer, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		summarizer: summ,
		logger:     log.With("component", "processor"),
	}
}
