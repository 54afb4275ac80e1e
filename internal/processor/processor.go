package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-summarizer/internal/intake"
	"github.com/nguyentantai21042004/audio-summarizer/internal/metrics"
)

// Process summarizes audioPath, writes <name>.md and <name>.docx into the
// output folder and moves the audio to the archived folder. A non-success
// outcome leaves the audio in place and is returned as an error.
func (p *implProcessor) Process(ctx context.Context, audioPath string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	mimeType, ok := intake.MimeTypeForExt(filepath.Ext(audioPath))
	if !ok {
		metrics.WatchedFilesTotal.WithLabelValues("skipped").Inc()
		return fmt.Errorf("%w: %s", intake.ErrUnsupportedFormat, audioPath)
	}

	p.logger.Info(ctx, "Starting summarization: %s", audioPath)

	result := p.summarizer.SummarizeFile(ctx, audioPath, mimeType)
	if !result.OK() {
		metrics.WatchedFilesTotal.WithLabelValues(string(result.Kind)).Inc()
		return fmt.Errorf("summarize %s: %s", name, result.Display())
	}

	mdPath, err := p.writeMarkdown(name, result.Text, startTime)
	if err != nil {
		metrics.WatchedFilesTotal.WithLabelValues("write_error").Inc()
		return fmt.Errorf("write markdown: %w", err)
	}

	docxPath, err := p.writeDocx(name, result.Text)
	if err != nil {
		p.logger.Warn(ctx, "Failed to write docx for %s: %v", name, err)
	}

	if err := p.moveToArchived(ctx, audioPath); err != nil {
		p.logger.Warn(ctx, "Failed to move %s to archived folder: %v", audioPath, err)
	}

	metrics.WatchedFilesTotal.WithLabelValues(string(result.Kind)).Inc()
	p.logger.Info(ctx, "[DONE] %s -> %s %s (%s)", name, mdPath, docxPath, time.Since(startTime).Round(time.Millisecond))

	return nil
}
