package pahe

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a session search yields no usable result set.
	ErrNotFound = errors.New("anime not found on animepahe")

	// ErrSessionResolution is returned when the selected search entry carries no session.
	ErrSessionResolution = errors.New("session resolution failed")
)

// Extraction failure reasons.
const (
	ReasonNoScript = "no script"
	ReasonNoURL    = "no url in payload"
)

// ExtractionError tells why an intermediate video page yielded no manifest.
// Callers drop the affected quality option instead of failing.
type ExtractionError struct {
	URL    string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %s", e.URL, e.Reason)
}

// UpstreamHTTPError is a non-2xx answer, or a 403 that persisted after the retry.
type UpstreamHTTPError struct {
	Status int
	URL    string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Status)
}
