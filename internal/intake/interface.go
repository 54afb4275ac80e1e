package intake

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format, expected .wav or .mp3")
	ErrEmptyUpload       = errors.New("uploaded file is empty")
	ErrTooLarge          = errors.New("uploaded file is too large")
	ErrNotAudio          = errors.New("uploaded file does not contain audio")
)

// Intake materializes uploaded audio as uniquely named temp files.
type Intake interface {
	// Store writes r to a new file keeping filename's extension. The
	// caller owns the returned Upload and must Close it.
	Store(ctx context.Context, filename string, r io.Reader) (*Upload, error)
	// Sweep removes uploads left behind by a previous process.
	Sweep(ctx context.Context) error
}
