package judge

import (
	"encoding/json"

	"github.com/groundcheck/hallucination-agent/internal/models"
)

// judgeResponse mirrors the fixed wire schema. Pointer fields tell a
// missing field apart from a zero value.
type judgeResponse struct {
	SimilarityScore    *float64 `json:"similarityScore"`
	ContradictionFound *bool    `json:"contradictionFound"`
	Reasoning          *string  `json:"reasoning"`
	Verdict            *string  `json:"verdict"`
}

// parseVerdict decodes and validates the judge's structured output. Any
// response that does not carry all four fields with valid values is
// rejected outright, never coerced.
func parseVerdict(content string) (models.VerdictRecord, error) {
	content = stripMarkdownCodeBlock(content)

	var resp judgeResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return models.VerdictRecord{}, &models.SchemaError{Reason: "not a JSON object", Err: err}
	}

	switch {
	case resp.SimilarityScore == nil:
		return models.VerdictRecord{}, &models.SchemaError{Reason: "missing similarityScore"}
	case resp.ContradictionFound == nil:
		return models.VerdictRecord{}, &models.SchemaError{Reason: "missing contradictionFound"}
	case resp.Reasoning == nil:
		return models.VerdictRecord{}, &models.SchemaError{Reason: "missing reasoning"}
	case resp.Verdict == nil:
		return models.VerdictRecord{}, &models.SchemaError{Reason: "missing verdict"}
	}

	if *resp.SimilarityScore < 0.0 || *resp.SimilarityScore > 1.0 {
		return models.VerdictRecord{}, &models.SchemaError{Reason: "similarityScore out of range [0, 1]"}
	}

	verdict := models.Verdict(*resp.Verdict)
	if !verdict.Valid() {
		return models.VerdictRecord{}, &models.SchemaError{Reason: "unknown verdict value"}
	}

	return models.VerdictRecord{
		Verdict:            verdict,
		SimilarityScore:    *resp.SimilarityScore,
		ContradictionFound: *resp.ContradictionFound,
		Reasoning:          *resp.Reasoning,
	}, nil
}
