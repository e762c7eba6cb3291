// Package events keeps a short in-memory history of request activity for the
// debug overlay.
//
// The orchestrator pushes one Event per transition (start, finish, drop,
// stale completion, fallback). A RingBuffer holds the most recent ones.
package events

import (
	"fmt"
	"time"
)

// Kind identifies what happened. Dot-delimited: "<subject>.<action>".
type Kind string

const (
	KindRequestStart   Kind = "request.start"
	KindRequestDone    Kind = "request.done"
	KindRequestError   Kind = "request.error"
	KindRequestDropped Kind = "request.dropped"
	KindRequestStale   Kind = "request.stale"
	KindSubstituted    Kind = "request.substituted"
	KindTopicFallback  Kind = "topic.fallback"
	KindCleared        Kind = "session.cleared"
	KindSuggestions    Kind = "suggestions.done"
	KindSuggestionsErr Kind = "suggestions.error"
)

// Event is one recorded transition. Every field except Kind and Time is
// optional.
type Event struct {
	Time  time.Time
	Kind  Kind
	Op    string // "analyze", "random", "suggestions"
	Topic string
	Gen   int
	Dur   time.Duration
	Count int
	Err   string
}

// String is the one-line form shown in the overlay.
func (e Event) String() string {
	s := fmt.Sprintf("%s %-19s", e.Time.Format("15:04:05"), e.Kind)
	if e.Op != "" {
		s += " " + e.Op
	}
	if e.Topic != "" {
		s += fmt.Sprintf(" %q", e.Topic)
	}
	if e.Count > 0 {
		s += fmt.Sprintf(" n=%d", e.Count)
	}
	if e.Dur > 0 {
		s += " " + e.Dur.Round(time.Millisecond).String()
	}
	if e.Err != "" {
		s += " err=" + e.Err
	}
	return s
}
