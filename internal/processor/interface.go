package processor

import "context"

// Processor summarizes one audio file dropped into the watch folder.
type Processor interface {
	Process(ctx context.Context, audioPath string) error
}
