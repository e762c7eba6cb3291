// Package analysis holds the data model shared by the gateway, the fixture
// catalog and the UI: the analysis record, the request language and the
// error taxonomy surfaced to callers.
package analysis

import (
	"fmt"
	"strings"
)

// Record is one analysis of a topic. It is a value: once produced it is never
// edited field by field, only replaced.
type Record struct {
	Topic                 string `json:"topic"`
	Summary               string `json:"summary"`
	AggregatedProblem     string `json:"aggregatedProblem"`
	SolutionProposal      string `json:"solutionProposal"`
	ProposingViewpoint    string `json:"proposingViewpoint"`
	OpposingViewpoint     string `json:"opposingViewpoint"`
	HistoricalPerspective string `json:"historicalPerspective"`
	MotivationalProverb   string `json:"motivationalProverb"`
}

// Field is a named text field of a Record, in display order.
type Field struct {
	Name  string
	Value string
}

// Fields returns every field of the record in display order.
func (r Record) Fields() []Field {
	return []Field{
		{Name: "topic", Value: r.Topic},
		{Name: "summary", Value: r.Summary},
		{Name: "aggregatedProblem", Value: r.AggregatedProblem},
		{Name: "solutionProposal", Value: r.SolutionProposal},
		{Name: "proposingViewpoint", Value: r.ProposingViewpoint},
		{Name: "opposingViewpoint", Value: r.OpposingViewpoint},
		{Name: "historicalPerspective", Value: r.HistoricalPerspective},
		{Name: "motivationalProverb", Value: r.MotivationalProverb},
	}
}

// Validate reports the first empty field. A record that fails Validate must
// never reach the presentation layer.
func (r Record) Validate() error {
	for _, f := range r.Fields() {
		if strings.TrimSpace(f.Value) == "" {
			return fmt.Errorf("analysis record: field %q is empty", f.Name)
		}
	}
	return nil
}
