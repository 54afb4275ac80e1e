package summarizer

import "fmt"

// Kind tags the outcome of a summarization attempt.
type Kind string

const (
	KindSuccess       Kind = "success"
	KindBlocked       Kind = "blocked"
	KindEmpty         Kind = "empty"
	KindModelStopped  Kind = "model_stopped"
	KindPromptBlocked Kind = "prompt_blocked"
	KindFailure       Kind = "failure"
)

// Result is the outcome of one summarization. Only the fields relevant to
// Kind are set.
type Result struct {
	Kind        Kind
	Text        string
	Category    string
	Probability string
	Message     string
	// TimedOut marks a failure caused by the call deadline.
	TimedOut bool
}

func Success(text string) Result {
	return Result{Kind: KindSuccess, Text: text}
}

func Blocked(category, probability string) Result {
	return Result{Kind: KindBlocked, Category: category, Probability: probability}
}

func Empty() Result {
	return Result{Kind: KindEmpty}
}

func ModelStopped() Result {
	return Result{Kind: KindModelStopped}
}

func PromptBlocked() Result {
	return Result{Kind: KindPromptBlocked}
}

func Failure(message string) Result {
	return Result{Kind: KindFailure, Message: message}
}

// Timeout is the failure returned when the deadline passes while waiting
// for a slot or for the model.
func Timeout() Result {
	return Result{Kind: KindFailure, Message: "timeout", TimedOut: true}
}

// OK reports whether the result carries a summary.
func (r Result) OK() bool {
	return r.Kind == KindSuccess
}

// Display returns the text shown to the user for this result.
func (r Result) Display() string {
	switch r.Kind {
	case KindSuccess:
		return r.Text
	case KindBlocked:
		return fmt.Sprintf("Content blocked: %s was rated %s probability of being unsafe.", r.Category, r.Probability)
	case KindEmpty:
		return "The model returned no summary for this audio."
	case KindModelStopped:
		return "The model stopped before finishing the summary."
	case KindPromptBlocked:
		return "The request was blocked by the provider before generation started."
	default:
		return fmt.Sprintf("An error occurred during summarization: %s", r.Message)
	}
}

func (r Result) String() string {
	if r.Kind == KindSuccess {
		return fmt.Sprintf("%s(%d chars)", r.Kind, len(r.Text))
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Display())
}
