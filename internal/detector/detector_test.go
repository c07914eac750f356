package detector

import (
	"context"
	"errors"
	"testing"

	"github.com/groundcheck/hallucination-agent/internal/embeddings/mocks"
	"github.com/groundcheck/hallucination-agent/internal/models"
	"github.com/groundcheck/hallucination-agent/internal/rules"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newEvaluator(t *testing.T) (*LocalEvaluator, *mocks.MockProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	return NewLocalEvaluator(provider, rules.NewDefaultFilter(), testLogger()), provider
}

func TestLocalEvaluator_StrictRuleShortCircuit(t *testing.T) {
	evaluator, provider := newEvaluator(t)

	// Similarity must never be computed on the short-circuit path.
	provider.EXPECT().Embed(gomock.Any(), gomock.Any()).Times(0)

	record, err := evaluator.Evaluate(context.Background(), models.EvaluationInput{
		Context:  "Water boils at 100 degrees Celsius at sea level.",
		Response: "I don't know.",
	}, models.DetectionConfig{
		SimilarityThreshold: 0.75,
		StrictRules:         true,
		UseVectorSearch:     true,
	})
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}

	if record.Verdict != models.VerdictHallucination {
		t.Errorf("Verdict = %s, want HALLUCINATION", record.Verdict)
	}
	if record.SimilarityScore != 0.0 {
		t.Errorf("SimilarityScore = %f, want 0.0", record.SimilarityScore)
	}
	if !record.ContradictionFound {
		t.Error("ContradictionFound = false, want true on strict short-circuit")
	}
	if record.Reasoning == "" {
		t.Error("expected rule message as reasoning")
	}
}

func TestLocalEvaluator_SimilarityVerdicts(t *testing.T) {
	tests := []struct {
		name        string
		contextVec  []float64
		responseVec []float64
		threshold   float64
		verdict     models.Verdict
	}{
		{
			name:        "low similarity is hallucination",
			contextVec:  []float64{1, 0, 0},
			responseVec: []float64{0, 1, 0},
			threshold:   0.75,
			verdict:     models.VerdictHallucination,
		},
		{
			name:        "high similarity is factual",
			contextVec:  []float64{1, 2, 3},
			responseVec: []float64{1, 2, 3.1},
			threshold:   0.75,
			verdict:     models.VerdictFactual,
		},
		{
			name:        "score equal to threshold is factual",
			contextVec:  []float64{1, 0},
			responseVec: []float64{1, 0},
			threshold:   0.95,
			verdict:     models.VerdictFactual,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator, provider := newEvaluator(t)

			input := models.EvaluationInput{
				Context:  "The Eiffel Tower is in Paris, France.",
				Response: "The Eiffel Tower is in Berlin, Germany.",
			}
			provider.EXPECT().Embed(gomock.Any(), input.Context).Return(tt.contextVec, nil)
			provider.EXPECT().Embed(gomock.Any(), input.Response).Return(tt.responseVec, nil)

			record, err := evaluator.Evaluate(context.Background(), input, models.DetectionConfig{
				SimilarityThreshold: tt.threshold,
				UseVectorSearch:     true,
			})
			if err != nil {
				t.Fatalf("Evaluate() failed: %v", err)
			}

			if record.Verdict != tt.verdict {
				t.Errorf("Verdict = %s, want %s", record.Verdict, tt.verdict)
			}
			if record.ContradictionFound {
				t.Error("ContradictionFound = true, want false when rules passed")
			}
		})
	}
}

func TestLocalEvaluator_RuleFailureWithoutStrictMode(t *testing.T) {
	// A rule hit alone must not override a high similarity score when
	// strict mode is off.
	evaluator, provider := newEvaluator(t)

	input := models.EvaluationInput{
		Context:  "The capital of France is Paris.",
		Response: "I don't know.",
	}
	provider.EXPECT().Embed(gomock.Any(), input.Context).Return([]float64{1, 1, 1}, nil)
	provider.EXPECT().Embed(gomock.Any(), input.Response).Return([]float64{1, 1, 1}, nil)

	record, err := evaluator.Evaluate(context.Background(), input, models.DetectionConfig{
		SimilarityThreshold: 0.75,
		StrictRules:         false,
		UseVectorSearch:     true,
	})
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}

	if record.Verdict != models.VerdictFactual {
		t.Errorf("Verdict = %s, want FACTUAL", record.Verdict)
	}
	if record.ContradictionFound {
		t.Error("ContradictionFound = true, want false for FACTUAL verdict")
	}
}

func TestLocalEvaluator_BothSignalsAgree(t *testing.T) {
	// Rule failure plus low similarity marks a contradiction.
	evaluator, provider := newEvaluator(t)

	input := models.EvaluationInput{
		Context:  "The capital of France is Paris.",
		Response: "I don't know.",
	}
	provider.EXPECT().Embed(gomock.Any(), input.Context).Return([]float64{1, 0}, nil)
	provider.EXPECT().Embed(gomock.Any(), input.Response).Return([]float64{0, 1}, nil)

	record, err := evaluator.Evaluate(context.Background(), input, models.DetectionConfig{
		SimilarityThreshold: 0.75,
		StrictRules:         false,
		UseVectorSearch:     true,
	})
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}

	if record.Verdict != models.VerdictHallucination {
		t.Errorf("Verdict = %s, want HALLUCINATION", record.Verdict)
	}
	if !record.ContradictionFound {
		t.Error("ContradictionFound = false, want true when both signals agree")
	}
}

func TestLocalEvaluator_NoVectorSearch(t *testing.T) {
	evaluator, provider := newEvaluator(t)
	provider.EXPECT().Embed(gomock.Any(), gomock.Any()).Times(0)

	record, err := evaluator.Evaluate(context.Background(), models.EvaluationInput{
		Context:  "Some context.",
		Response: "Some response.",
	}, models.DetectionConfig{
		SimilarityThreshold: 0.75,
		UseVectorSearch:     false,
	})
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}

	if record.Verdict != models.VerdictUncertain {
		t.Errorf("Verdict = %s, want UNCERTAIN", record.Verdict)
	}
	if record.SimilarityScore != 0.0 {
		t.Errorf("SimilarityScore = %f, want 0.0", record.SimilarityScore)
	}
}

func TestLocalEvaluator_Idempotent(t *testing.T) {
	evaluator, provider := newEvaluator(t)

	input := models.EvaluationInput{
		Context:  "Water boils at 100 degrees Celsius at sea level.",
		Response: "Water freezes at 100 degrees Celsius.",
	}
	cfg := models.DetectionConfig{
		SimilarityThreshold: 0.75,
		UseVectorSearch:     true,
	}
	provider.EXPECT().Embed(gomock.Any(), input.Context).Return([]float64{1, 0, 1}, nil).Times(2)
	provider.EXPECT().Embed(gomock.Any(), input.Response).Return([]float64{0, 1, 0}, nil).Times(2)

	first, err := evaluator.Evaluate(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	second, err := evaluator.Evaluate(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}

	if first != second {
		t.Errorf("records differ across identical calls: %+v vs %+v", first, second)
	}
	if first.Verdict != models.VerdictHallucination {
		t.Errorf("Verdict = %s, want HALLUCINATION", first.Verdict)
	}
}

func TestLocalEvaluator_InputValidation(t *testing.T) {
	tests := []struct {
		name      string
		input     models.EvaluationInput
		expectErr error
	}{
		{
			name:      "empty context",
			input:     models.EvaluationInput{Context: "   ", Response: "something"},
			expectErr: models.ErrEmptyContext,
		},
		{
			name:      "empty response",
			input:     models.EvaluationInput{Context: "something", Response: "\n\t"},
			expectErr: models.ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator, provider := newEvaluator(t)
			provider.EXPECT().Embed(gomock.Any(), gomock.Any()).Times(0)

			_, err := evaluator.Evaluate(context.Background(), tt.input, models.DefaultDetectionConfig())
			if !errors.Is(err, tt.expectErr) {
				t.Errorf("err = %v, want %v", err, tt.expectErr)
			}
		})
	}
}

func TestLocalEvaluator_InvalidThreshold(t *testing.T) {
	for _, threshold := range []float64{0.0, 0.05, 0.96, 1.5} {
		evaluator, provider := newEvaluator(t)
		provider.EXPECT().Embed(gomock.Any(), gomock.Any()).Times(0)

		_, err := evaluator.Evaluate(context.Background(), models.EvaluationInput{
			Context:  "context",
			Response: "response",
		}, models.DetectionConfig{
			SimilarityThreshold: threshold,
			UseVectorSearch:     true,
		})
		if !errors.Is(err, models.ErrInvalidThreshold) {
			t.Errorf("threshold %f: err = %v, want ErrInvalidThreshold", threshold, err)
		}
	}
}

func TestLocalEvaluator_EmbeddingFailurePropagates(t *testing.T) {
	evaluator, provider := newEvaluator(t)

	embedErr := errors.New("model unavailable")
	provider.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, embedErr).Times(2)

	_, err := evaluator.Evaluate(context.Background(), models.EvaluationInput{
		Context:  "context",
		Response: "response",
	}, models.DetectionConfig{
		SimilarityThreshold: 0.75,
		UseVectorSearch:     true,
	})

	var upstream *models.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if !errors.Is(err, embedErr) {
		t.Errorf("UpstreamError does not wrap the provider error: %v", err)
	}
}
