package watcher

import "context"

// Watcher reports new audio files dropped into the input folder.
type Watcher interface {
	// Start blocks until ctx is done, then waits for running handlers.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler summarizes one dropped audio file.
type EventHandler func(ctx context.Context, audioPath string) error
