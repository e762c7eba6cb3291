package orchestrator

import "github.com/meeran-official/news-analyzer/internal/analysis"

// Triggers. The UI sends these in response to user actions.

// AnalyzeMsg asks for an analysis of Topic (Analyze button, Enter key).
type AnalyzeMsg struct {
	Topic string
}

// SelectMsg is a click on a suggested topic.
type SelectMsg struct {
	Topic string
}

// RandomMsg asks for a random topic and its analysis. Debounced.
type RandomMsg struct{}

// ClearMsg resets topic, result and error.
type ClearMsg struct{}

// RetryMsg re-issues the last attempted operation.
type RetryMsg struct{}

// RefreshSuggestionsMsg re-fetches the suggestion list.
type RefreshSuggestionsMsg struct{}

// ResultReadyMsg is emitted after an analysis lands, so the presentation layer
// can bring it into view.
type ResultReadyMsg struct {
	Topic string
}

// Internal messages.

type startupMsg struct{}

// randomTickMsg fires when a debounce window closes. Only the tick carrying
// the latest sequence number does anything.
type randomTickMsg struct {
	seq int
}

type randomTopicMsg struct {
	gen     int
	topic   string
	err     error
	startup bool
}

type analysisMsg struct {
	gen         int
	topic       string
	record      analysis.Record
	err         error
	substituted bool
	cause       string // live failure message when substituted
}

type suggestionsMsg struct {
	topics []string
	err    error
}
