package models

type Verdict string

const (
	VerdictFactual       Verdict = "FACTUAL"
	VerdictHallucination Verdict = "HALLUCINATION"
	VerdictUncertain     Verdict = "UNCERTAIN"
)

// Valid reports whether v is one of the three known verdict values.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictFactual, VerdictHallucination, VerdictUncertain:
		return true
	}
	return false
}

// EvaluationInput is one (context, response) pair to evaluate.
// Both fields must be non-empty after trimming.
type EvaluationInput struct {
	Context  string `json:"context"`
	Response string `json:"response"`
}

// DetectionConfig is an immutable per-call configuration snapshot.
type DetectionConfig struct {
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`
	StrictRules         bool    `json:"strict_rules" yaml:"strict_rules"`
	UseVectorSearch     bool    `json:"use_vector_search" yaml:"use_vector_search"`
}

const (
	MinSimilarityThreshold = 0.1
	MaxSimilarityThreshold = 0.95
)

// DefaultDetectionConfig returns the defaults shipped with the detector.
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		SimilarityThreshold: 0.75,
		StrictRules:         true,
		UseVectorSearch:     true,
	}
}

// RuleOutcome is the result of one rule-filter pass. Produced fresh per
// evaluation, never persisted.
type RuleOutcome struct {
	Passed        bool   `json:"passed"`
	MatchedPhrase string `json:"matched_phrase,omitempty"`
	Message       string `json:"message"`
}

// VerdictRecord is the sole externally visible result of an evaluation.
// SimilarityScore is 0.0 when similarity was never computed.
type VerdictRecord struct {
	Verdict            Verdict `json:"verdict"`
	SimilarityScore    float64 `json:"similarity_score"`
	ContradictionFound bool    `json:"contradiction_found"`
	Reasoning          string  `json:"reasoning"`
}

// DetectionRequest is the wire-level message accepted by the HTTP API,
// the stream consumer and the batch reader.
type DetectionRequest struct {
	EventID  string           `json:"event_id"`
	Context  string           `json:"context"`
	Response string           `json:"response"`
	Config   *DetectionConfig `json:"config,omitempty"`
}

// Input returns the evaluation input carried by the request.
func (r DetectionRequest) Input() EvaluationInput {
	return EvaluationInput{
		Context:  r.Context,
		Response: r.Response,
	}
}

// DetectionResult pairs a verdict record with the event it answers.
type DetectionResult struct {
	EventID string        `json:"event_id"`
	Record  VerdictRecord `json:"record"`
}
