package summarizer

import (
	"errors"
	"strings"
)

var (
	// ErrPromptBlocked means the provider rejected the request before generating.
	ErrPromptBlocked = errors.New("prompt blocked")
	// ErrGenerationStopped means the provider halted generation part way.
	ErrGenerationStopped = errors.New("generation stopped")
	// ErrMissingAPIKey means no credential was configured.
	ErrMissingAPIKey = errors.New("GOOGLE_API_KEY is not set")
)

// ProbabilityNegligible is the lowest harm probability tier.
const ProbabilityNegligible = "NEGLIGIBLE"

// Request is one generation call: the instruction followed by inline audio.
type Request struct {
	Model    string
	Prompt   string
	Audio    []byte
	MimeType string
}

// Response is the provider-neutral view of a generation result.
// SafetyRatings keeps the order the provider returned them in.
type Response struct {
	Candidates    []Candidate
	SafetyRatings []SafetyRating
}

type Candidate struct {
	Text         string
	FinishReason string
}

type SafetyRating struct {
	Category    string
	Probability string
}

// Text returns the text of the first candidate.
func (r *Response) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	return r.Candidates[0].Text
}

// firstUnsafeRating returns the first rating above the negligible tier.
func (r *Response) firstUnsafeRating() (SafetyRating, bool) {
	for _, rating := range r.SafetyRatings {
		if !strings.EqualFold(rating.Probability, ProbabilityNegligible) {
			return rating, true
		}
	}
	return SafetyRating{}, false
}
