// Package detector implements the local hallucination verdict engine:
// a deterministic rule filter plus an embedding similarity check.
package detector

import (
	"context"
	"fmt"
	"sync"

	"github.com/groundcheck/hallucination-agent/internal/embeddings"
	"github.com/groundcheck/hallucination-agent/internal/models"
	"github.com/groundcheck/hallucination-agent/internal/rules"
	"github.com/groundcheck/hallucination-agent/internal/similarity"
	"github.com/rs/zerolog"
)

// LocalEvaluator is the synchronous detection path. Each call is a pure
// function of its inputs and config snapshot apart from invoking the
// embedding provider, so independent calls are safe to run concurrently.
type LocalEvaluator struct {
	provider embeddings.Provider
	filter   *rules.Filter
	logger   *zerolog.Logger
}

func NewLocalEvaluator(provider embeddings.Provider, filter *rules.Filter, logger *zerolog.Logger) *LocalEvaluator {
	return &LocalEvaluator{
		provider: provider,
		filter:   filter,
		logger:   logger,
	}
}

// Evaluate runs rule check, then either short-circuits or consults the
// similarity score, and synthesizes the final verdict record.
func (d *LocalEvaluator) Evaluate(ctx context.Context, input models.EvaluationInput, cfg models.DetectionConfig) (models.VerdictRecord, error) {
	if err := input.Validate(); err != nil {
		return models.VerdictRecord{}, err
	}
	if err := cfg.Validate(); err != nil {
		return models.VerdictRecord{}, err
	}

	outcome := d.filter.Check(input.Response)

	if !outcome.Passed && cfg.StrictRules {
		d.logger.Info().
			Str("phrase", outcome.MatchedPhrase).
			Msg("strict rule hit, short-circuiting")

		return models.VerdictRecord{
			Verdict:            models.VerdictHallucination,
			SimilarityScore:    0.0,
			ContradictionFound: true,
			Reasoning:          outcome.Message,
		}, nil
	}

	if !cfg.UseVectorSearch {
		reasoning := "no confirming or disconfirming signal produced"
		if !outcome.Passed {
			reasoning = fmt.Sprintf("%s; %s", reasoning, outcome.Message)
		}
		return models.VerdictRecord{
			Verdict:            models.VerdictUncertain,
			SimilarityScore:    0.0,
			ContradictionFound: false,
			Reasoning:          reasoning,
		}, nil
	}

	score, err := d.similarityScore(ctx, input)
	if err != nil {
		return models.VerdictRecord{}, &models.UpstreamError{Op: "embedding provider", Err: err}
	}

	record := models.VerdictRecord{
		SimilarityScore: score,
	}

	if score >= cfg.SimilarityThreshold {
		record.Verdict = models.VerdictFactual
		record.Reasoning = fmt.Sprintf("similarity %.2f meets threshold %.2f", score, cfg.SimilarityThreshold)
	} else {
		record.Verdict = models.VerdictHallucination
		record.Reasoning = fmt.Sprintf("similarity %.2f below threshold %.2f", score, cfg.SimilarityThreshold)
		// Contradiction is only claimed when both signals agree.
		if !outcome.Passed {
			record.ContradictionFound = true
			record.Reasoning = fmt.Sprintf("%s; %s", record.Reasoning, outcome.Message)
		}
	}

	d.logger.Info().
		Str("verdict", string(record.Verdict)).
		Float64("score", record.SimilarityScore).
		Bool("contradiction", record.ContradictionFound).
		Msg("evaluation complete")

	return record, nil
}

// similarityScore embeds context and response concurrently; the two
// calls have no ordering requirement.
func (d *LocalEvaluator) similarityScore(ctx context.Context, input models.EvaluationInput) (float64, error) {
	var (
		contextVec, responseVec []float64
		contextErr, responseErr error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		contextVec, contextErr = d.provider.Embed(ctx, input.Context)
	}()
	go func() {
		defer wg.Done()
		responseVec, responseErr = d.provider.Embed(ctx, input.Response)
	}()
	wg.Wait()

	if contextErr != nil {
		return 0, contextErr
	}
	if responseErr != nil {
		return 0, responseErr
	}

	return similarity.Score(contextVec, responseVec), nil
}
