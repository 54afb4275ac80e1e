package summarizer

import "context"

// semaphore caps the number of summaries waiting on the model. HTTP
// uploads, the CLI and the drop folder all share one.
type semaphore struct {
	slots chan struct{}
}

func newSemaphore(size int) *semaphore {
	return &semaphore{slots: make(chan struct{}, size)}
}

// acquire takes a slot or returns ctx's error once the caller's budget
// (including the summary timeout) runs out.
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.slots
}
