package analysis

import (
	"errors"
	"fmt"
)

// NetworkError is a transport failure or non-2xx status on the suggestions or
// random-topic endpoints.
type NetworkError struct {
	Op     string // "suggestions", "random-topic"
	Status int    // 0 when the request never got a response
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s: HTTP %d", e.Op, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.Op, e.Err)
	}
	return "failed to fetch " + e.Op
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AnalysisError is any failure of the analysis-by-topic call. Message is what
// the user sees: the server's error text when it sent one.
type AnalysisError struct {
	Topic   string
	Message string
	Status  int
	Err     error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// ValidationError rejects input locally, before any request is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// ErrEmptyTopic is returned for blank topic input.
var ErrEmptyTopic = &ValidationError{Field: "topic", Reason: "must not be empty"}

// UserMessage picks the text to show for err: the analysis message verbatim,
// otherwise the error string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AnalysisError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return err.Error()
}
