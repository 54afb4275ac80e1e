package intake

import (
	"github.com/nguyentantai21042004/audio-summarizer/internal/config"
	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
)

const filePrefix = "upload-"

type implIntake struct {
	dir      string
	maxBytes int64
	sniff    bool
	logger   logger.Logger
}

// New creates an Intake storing files under cfg.Upload.TempDir.
func New(cfg *config.Config, log logger.Logger) Intake {
	return &implIntake{
		dir:      cfg.Upload.TempDir,
		maxBytes: cfg.Upload.MaxBytes,
		sniff:    cfg.Upload.SniffContent,
		logger:   log.With("component", "intake"),
	}
}
