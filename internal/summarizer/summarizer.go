package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-summarizer/internal/metrics"
)

// WAVMimeType is used for every payload when force_wav_mime is enabled.
const WAVMimeType = "audio/wav"

// Summarize sends audio to the model with the configured prompt and maps
// the outcome onto a Result. It never returns without a Result.
func (s *implSummarizer) Summarize(ctx context.Context, audio []byte, mimeType string) (result Result) {
	defer func() {
		if rv := recover(); rv != nil {
			s.logger.Error(ctx, "Provider panicked: %v", rv)
			result = Failure(fmt.Sprintf("internal error: %v", rv))
		}
	}()

	if len(audio) == 0 {
		return Failure("audio payload is empty")
	}
	if s.forceWAVMime {
		mimeType = WAVMimeType
	}
	if mimeType == "" {
		return Failure("audio MIME type is required")
	}

	// One budget covers waiting for a slot and the model call.
	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	defer cancel()

	if err := s.sem.acquire(callCtx); err != nil {
		s.logger.Warn(ctx, "Gave up waiting for a summarization slot: %v", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return Timeout()
		}
		return Failure(err.Error())
	}
	defer s.sem.release()

	s.logger.Info(ctx, "Summarizing %d bytes of %s with %s", len(audio), mimeType, s.model)

	start := time.Now()
	resp, err := s.generate(callCtx, Request{
		Model:    s.model,
		Prompt:   s.prompt,
		Audio:    audio,
		MimeType: mimeType,
	})
	elapsed := time.Since(start)

	result = classify(callCtx, resp, err)
	metrics.ObserveSummary(string(result.Kind), elapsed)

	if result.OK() {
		s.logger.Info(ctx, "Summary generated in %s (%d chars)", elapsed.Round(time.Millisecond), len(result.Text))
	} else {
		s.logger.Warn(ctx, "Summarization ended with %s after %s: %s", result.Kind, elapsed.Round(time.Millisecond), result.Display())
	}

	return result
}

func (s *implSummarizer) generate(ctx context.Context, req Request) (*Response, error) {
	metrics.SummariesInFlight.Inc()
	defer metrics.SummariesInFlight.Dec()
	return s.provider.Generate(ctx, req)
}

// SummarizeFile reads the audio at path and summarizes it. Files larger
// than the upload limit are refused without being read.
func (s *implSummarizer) SummarizeFile(ctx context.Context, path, mimeType string) Result {
	info, err := os.Stat(path)
	if err != nil {
		s.logger.Error(ctx, "Failed to read %s: %v", path, err)
		return Failure(fmt.Sprintf("read audio file: %v", err))
	}
	if s.maxBytes > 0 && info.Size() > s.maxBytes {
		s.logger.Warn(ctx, "Refusing %s: %d bytes exceeds limit of %d", path, info.Size(), s.maxBytes)
		return Failure(fmt.Sprintf("audio file is %d bytes, limit is %d", info.Size(), s.maxBytes))
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error(ctx, "Failed to read %s: %v", path, err)
		return Failure(fmt.Sprintf("read audio file: %v", err))
	}
	return s.Summarize(ctx, audio, mimeType)
}

// classify applies the outcome priority: prompt blocked, generation
// stopped, other errors, then the response contents.
func classify(callCtx context.Context, resp *Response, err error) Result {
	switch {
	case errors.Is(err, ErrPromptBlocked):
		return PromptBlocked()
	case errors.Is(err, ErrGenerationStopped):
		return ModelStopped()
	case err != nil:
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return Timeout()
		}
		return Failure(err.Error())
	}

	if resp == nil {
		return Empty()
	}
	if len(resp.Candidates) == 0 {
		if rating, ok := resp.firstUnsafeRating(); ok {
			return Blocked(rating.Category, rating.Probability)
		}
		return Empty()
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return Empty()
	}
	return Success(text)
}
