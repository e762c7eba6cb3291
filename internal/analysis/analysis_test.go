package analysis

import (
	"errors"
	"fmt"
	"testing"
)

func completeRecord() Record {
	return Record{
		Topic:                 "Topic",
		Summary:               "summary",
		AggregatedProblem:     "problem",
		SolutionProposal:      "solution",
		ProposingViewpoint:    "pro",
		OpposingViewpoint:     "con",
		HistoricalPerspective: "history",
		MotivationalProverb:   "proverb",
	}
}

func TestRecordValidate(t *testing.T) {
	r := completeRecord()
	if err := r.Validate(); err != nil {
		t.Fatalf("complete record should validate: %v", err)
	}

	r.OpposingViewpoint = "   "
	if err := r.Validate(); err == nil {
		t.Error("blank opposingViewpoint should fail validation")
	}
}

func TestRecordFieldsOrder(t *testing.T) {
	fields := completeRecord().Fields()
	if len(fields) != 8 {
		t.Fatalf("expected 8 fields, got %d", len(fields))
	}
	if fields[0].Name != "topic" || fields[7].Name != "motivationalProverb" {
		t.Errorf("unexpected field order: first=%s last=%s", fields[0].Name, fields[7].Name)
	}
}

func TestLanguageWireValue(t *testing.T) {
	if English.WireValue() != "english" {
		t.Errorf("en should map to english, got %s", English.WireValue())
	}
	if Tamil.WireValue() != "tamil" {
		t.Errorf("ta should map to tamil, got %s", Tamil.WireValue())
	}
}

func TestParseLanguage(t *testing.T) {
	if _, err := ParseLanguage("fr"); err == nil {
		t.Error("fr should be rejected")
	}
	l, err := ParseLanguage("ta")
	if err != nil || l != Tamil {
		t.Errorf("expected Tamil, got %q (%v)", l, err)
	}
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("orchestrator: %w", &AnalysisError{Topic: "x", Message: "topic too long", Status: 500})
	if got := UserMessage(wrapped); got != "topic too long" {
		t.Errorf("expected server message, got %q", got)
	}

	netErr := &NetworkError{Op: "suggestions", Status: 503}
	if got := UserMessage(netErr); got != "failed to fetch suggestions: HTTP 503" {
		t.Errorf("unexpected network message %q", got)
	}

	if UserMessage(nil) != "" {
		t.Error("nil error should have empty message")
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Op: "random-topic", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}
}
