package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-summarizer/internal/summarizer"
)

// writeMarkdown stores the summary as <output>/<name>.md
func (p *implProcessor) writeMarkdown(name, summary string, at time.Time) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		at.Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)

	mdPath := filepath.Join(p.cfg.Paths.Output, name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return "", err
	}
	return mdPath, nil
}

// writeDocx stores the summary as <output>/<name>.docx
func (p *implProcessor) writeDocx(name, summary string) (string, error) {
	docxPath := filepath.Join(p.cfg.Paths.Output, name+".docx")

	f, err := os.Create(docxPath)
	if err != nil {
		return "", err
	}

	if err := summarizer.WriteDocx(f, name, summary); err != nil {
		f.Close()
		os.Remove(docxPath)
		return "", err
	}
	return docxPath, f.Close()
}

// moveToArchived moves the processed audio out of the watch folder
func (p *implProcessor) moveToArchived(ctx context.Context, audioPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(audioPath))
	p.logger.Info(ctx, "Archiving: %s -> %s", audioPath, destPath)

	if err := os.Rename(audioPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
