// Package judge sends a (context, response) pair to an external
// reasoning service and validates its structured verdict.
package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/groundcheck/hallucination-agent/internal/llm"
	"github.com/groundcheck/hallucination-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	// DefaultReasoningLanguage matches the language the product asks the
	// judge to explain its verdict in.
	DefaultReasoningLanguage = "Chinese (Simplified)"

	defaultMaxTokens = 512
	// Low temperature for consistent logic checks.
	defaultTemperature = 0.1
)

// RemoteJudge is the explanation-rich detection path. It is an
// independent classifier, not a fallback chained after the local one,
// and is not required to agree with it.
type RemoteJudge struct {
	llmClient llm.Client
	language  string
	logger    *zerolog.Logger
}

func NewRemoteJudge(client llm.Client, language string, logger *zerolog.Logger) *RemoteJudge {
	if language == "" {
		language = DefaultReasoningLanguage
	}
	return &RemoteJudge{
		llmClient: client,
		language:  language,
		logger:    logger,
	}
}

// Judge performs a single network call and returns the validated verdict
// record. Network failures and schema violations surface as distinct
// error types; nothing is retried here.
func (j *RemoteJudge) Judge(ctx context.Context, input models.EvaluationInput) (models.VerdictRecord, error) {
	if err := input.Validate(); err != nil {
		return models.VerdictRecord{}, err
	}
	if j.llmClient == nil {
		return models.VerdictRecord{}, fmt.Errorf("%w: no judge client configured", models.ErrMissingCredentials)
	}

	resp, err := j.llmClient.InvokeModel(ctx, llm.Request{
		Prompt:      j.buildPrompt(input),
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return models.VerdictRecord{}, &models.UpstreamError{Op: "remote judge", Err: err}
	}

	record, err := parseVerdict(resp.Content)
	if err != nil {
		j.logger.Error().Err(err).Str("content", resp.Content).Msg("judge returned invalid verdict")
		return models.VerdictRecord{}, err
	}

	j.logger.Info().
		Str("verdict", string(record.Verdict)).
		Float64("score", record.SimilarityScore).
		Bool("contradiction", record.ContradictionFound).
		Msg("remote judge completed")

	return record, nil
}

// Evaluate satisfies the shared evaluator contract. The remote service
// applies its own judgement, so the local config snapshot is not used.
func (j *RemoteJudge) Evaluate(ctx context.Context, input models.EvaluationInput, _ models.DetectionConfig) (models.VerdictRecord, error) {
	return j.Judge(ctx, input)
}

func (j *RemoteJudge) buildPrompt(input models.EvaluationInput) string {
	return fmt.Sprintf(`Act as a Hallucination Detection System.
Your goal is to evaluate if the 'Response' is factually supported by the 'Context'.

Context: %q
Response: %q

Perform two checks:
1. Similarity: How semantically close are the key facts? (0.0 to 1.0)
2. Contradiction: Does the response directly contradict the context?

IMPORTANT: Provide the 'reasoning' in %s.

Respond ONLY in raw JSON with no markdown, no code blocks, no explanation:
{"similarityScore": <float>, "contradictionFound": <bool>, "reasoning": "<string>", "verdict": "FACTUAL" | "HALLUCINATION" | "UNCERTAIN"}`,
		input.Context, input.Response, j.language)
}

// stripMarkdownCodeBlock removes markdown code block formatting if
// present. Some models wrap JSON despite instructions.
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
