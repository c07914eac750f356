package detector

import (
	"context"

	"github.com/groundcheck/hallucination-agent/internal/models"
)

// Evaluator classifies a (context, response) pair as FACTUAL,
// HALLUCINATION or UNCERTAIN. The local detector and the remote judge
// both satisfy it; callers can treat the two interchangeably for display.
type Evaluator interface {
	Evaluate(ctx context.Context, input models.EvaluationInput, cfg models.DetectionConfig) (models.VerdictRecord, error)
}
