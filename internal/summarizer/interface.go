package summarizer

import "context"

// Summarizer turns audio into a summary. Every call yields exactly one
// Result; failures are folded into KindFailure instead of returned as errors.
type Summarizer interface {
	Summarize(ctx context.Context, audio []byte, mimeType string) Result
	SummarizeFile(ctx context.Context, path, mimeType string) Result
}

// Provider performs the single outbound generation call.
// Implementations report a blocked prompt with ErrPromptBlocked and an
// interrupted generation with ErrGenerationStopped (wrapped is fine).
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
