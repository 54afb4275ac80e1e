package intake

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/nguyentantai21042004/audio-summarizer/internal/metrics"
)

// Store validates the extension, copies r into a fresh temp file and, when
// enabled, checks that the bytes look like audio. Any failure leaves no
// file behind.
func (i *implIntake) Store(ctx context.Context, filename string, r io.Reader) (*Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	mimeType, ok := MimeTypeForExt(ext)
	if !ok {
		metrics.UploadsRejectedTotal.WithLabelValues("format").Inc()
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(filename))
	}

	if err := os.MkdirAll(i.dir, 0755); err != nil {
		metrics.UploadsRejectedTotal.WithLabelValues("storage").Inc()
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.CreateTemp(i.dir, filePrefix+"*"+ext)
	if err != nil {
		metrics.UploadsRejectedTotal.WithLabelValues("storage").Inc()
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	n, copyErr := io.Copy(f, io.LimitReader(r, i.maxBytes+1))
	closeErr := f.Close()

	reject := func(reason string, err error) (*Upload, error) {
		i.removeQuietly(ctx, path)
		metrics.UploadsRejectedTotal.WithLabelValues(reason).Inc()
		return nil, err
	}

	switch {
	case copyErr != nil:
		return reject("storage", fmt.Errorf("write upload: %w", copyErr))
	case closeErr != nil:
		return reject("storage", fmt.Errorf("close upload: %w", closeErr))
	case n > i.maxBytes:
		return reject("size", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, i.maxBytes))
	case n == 0:
		return reject("empty", ErrEmptyUpload)
	}

	if i.sniff {
		detected, err := mimetype.DetectFile(path)
		if err != nil {
			return reject("storage", fmt.Errorf("inspect upload: %w", err))
		}
		if !strings.HasPrefix(detected.String(), "audio/") {
			return reject("content", fmt.Errorf("%w: detected %s", ErrNotAudio, detected.String()))
		}
	}

	i.logger.Debug(ctx, "Stored upload %s (%d bytes) at %s", filepath.Base(filename), n, path)

	return &Upload{
		Path:     path,
		Name:     filepath.Base(filename),
		Ext:      ext,
		MimeType: mimeType,
		Size:     n,
	}, nil
}

// Sweep deletes every stored upload in the intake directory.
func (i *implIntake) Sweep(ctx context.Context) error {
	entries, err := os.ReadDir(i.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read upload dir: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), filePrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(i.dir, e.Name())); err != nil {
			i.logger.Warn(ctx, "Failed to remove stale upload %s: %v", e.Name(), err)
			continue
		}
		removed++
	}

	if removed > 0 {
		i.logger.Info(ctx, "Removed %d stale uploads from %s", removed, i.dir)
	}
	return nil
}

func (i *implIntake) removeQuietly(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		i.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
