package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/groundcheck/hallucination-agent/internal/models"
)

type stubEvaluator struct {
	verdictFor func(input models.EvaluationInput) (models.VerdictRecord, error)
}

func (s *stubEvaluator) Evaluate(ctx context.Context, input models.EvaluationInput, cfg models.DetectionConfig) (models.VerdictRecord, error) {
	return s.verdictFor(input)
}

func TestProcessor_Process(t *testing.T) {
	evaluator := &stubEvaluator{
		verdictFor: func(input models.EvaluationInput) (models.VerdictRecord, error) {
			if input.Response == "bad" {
				return models.VerdictRecord{}, errors.New("upstream down")
			}
			return models.VerdictRecord{Verdict: models.VerdictFactual, SimilarityScore: 0.9}, nil
		},
	}

	records := []InputRecord{
		{LineNumber: 1, Request: models.DetectionRequest{EventID: "a", Context: "c", Response: "good"}},
		{LineNumber: 2, Request: models.DetectionRequest{EventID: "b", Context: "c", Response: "bad"}},
		{LineNumber: 3, Error: errors.New("parse error")},
	}

	processor := NewProcessor(evaluator, models.DefaultDetectionConfig(), 2, newTestLogger())
	results := processor.Process(context.Background(), records)

	byEventID := map[string]Result{}
	errored := 0
	for result := range results {
		if result.Err != nil {
			errored++
		}
		byEventID[result.EventID] = result
	}

	if len(byEventID) != 3 {
		t.Fatalf("expected 3 results, got %d", len(byEventID))
	}
	if errored != 2 {
		t.Errorf("expected 2 errored results, got %d", errored)
	}
	if byEventID["a"].Record.Verdict != models.VerdictFactual {
		t.Errorf("expected FACTUAL verdict for event a, got %s", byEventID["a"].Record.Verdict)
	}
	if byEventID["b"].Err == nil {
		t.Error("expected evaluation error for event b")
	}
}

func TestProcessor_ParseErrorNeverEvaluated(t *testing.T) {
	called := false
	evaluator := &stubEvaluator{
		verdictFor: func(input models.EvaluationInput) (models.VerdictRecord, error) {
			called = true
			return models.VerdictRecord{}, nil
		},
	}

	records := []InputRecord{{LineNumber: 1, Error: errors.New("bad json")}}

	processor := NewProcessor(evaluator, models.DefaultDetectionConfig(), 1, newTestLogger())
	for result := range processor.Process(context.Background(), records) {
		if result.Err == nil {
			t.Error("expected parse error to propagate")
		}
	}

	if called {
		t.Error("malformed record must not reach the evaluator")
	}
}
