package httpapi

import (
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/audio-summarizer/internal/intake"
)

// ErrorKind groups API errors by HTTP status.
type ErrorKind string

const (
	KindBadRequest       ErrorKind = "bad_request"
	KindUnsupportedMedia ErrorKind = "unsupported_media"
	KindTooLarge         ErrorKind = "too_large"
	KindInternal         ErrorKind = "internal"
)

// APIError is the JSON body of every non-summary error response.
type APIError struct {
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the status code for the error kind.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

var errMissingFile = errors.New("no audio file uploaded, use the \"audio\" form field")

// intakeError classifies an error from reading or storing an upload.
func intakeError(err error) *APIError {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, errMissingFile), errors.Is(err, intake.ErrEmptyUpload):
		return &APIError{Kind: KindBadRequest, Message: err.Error()}
	case errors.Is(err, intake.ErrUnsupportedFormat), errors.Is(err, intake.ErrNotAudio):
		return &APIError{Kind: KindUnsupportedMedia, Message: err.Error()}
	case errors.Is(err, intake.ErrTooLarge), errors.As(err, &maxErr):
		return &APIError{Kind: KindTooLarge, Message: intake.ErrTooLarge.Error()}
	default:
		return &APIError{Kind: KindInternal, Message: "failed to store upload: " + err.Error()}
	}
}
