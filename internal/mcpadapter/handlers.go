package mcpadapter

import (
	"context"

	"github.com/groundcheck/hallucination-agent/internal/detector"
	"github.com/groundcheck/hallucination-agent/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DetectInput is the MCP tool input schema (matches HTTP API field names).
type DetectInput struct {
	EventID             string  `json:"event_id,omitempty" jsonschema:"unique event identifier"`
	Context             string  `json:"context" jsonschema:"ground-truth reference text"`
	Response            string  `json:"response" jsonschema:"candidate answer to classify"`
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty" jsonschema:"cosine similarity cutoff (0.1-0.95, default: 0.75)"`
	StrictRules         *bool   `json:"strict_rules,omitempty" jsonschema:"short-circuit on rule violations (default: true)"`
	UseVectorSearch     *bool   `json:"use_vector_search,omitempty" jsonschema:"run the embedding similarity check (default: true)"`
}

// JudgeInput is the MCP tool input schema for the remote judge.
type JudgeInput struct {
	EventID  string `json:"event_id,omitempty" jsonschema:"unique event identifier"`
	Context  string `json:"context" jsonschema:"ground-truth reference text"`
	Response string `json:"response" jsonschema:"candidate answer to classify"`
}

// NewDetectHandler returns a tool handler backed by the local detector.
// Pass the returned function to mcp.AddTool.
func NewDetectHandler(local detector.Evaluator, defaults models.DetectionConfig) func(context.Context, *mcp.CallToolRequest, DetectInput) (*mcp.CallToolResult, models.DetectionResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DetectInput) (*mcp.CallToolResult, models.DetectionResult, error) {
		return DetectResponse(ctx, local, defaults, input)
	}
}

// DetectResponse runs the local rule-plus-similarity pipeline.
func DetectResponse(
	ctx context.Context,
	local detector.Evaluator,
	defaults models.DetectionConfig,
	input DetectInput,
) (*mcp.CallToolResult, models.DetectionResult, error) {
	cfg := defaults
	if input.SimilarityThreshold != 0 {
		cfg.SimilarityThreshold = input.SimilarityThreshold
	}
	if input.StrictRules != nil {
		cfg.StrictRules = *input.StrictRules
	}
	if input.UseVectorSearch != nil {
		cfg.UseVectorSearch = *input.UseVectorSearch
	}

	record, err := local.Evaluate(ctx, models.EvaluationInput{
		Context:  input.Context,
		Response: input.Response,
	}, cfg)
	if err != nil {
		return nil, models.DetectionResult{}, err
	}

	return nil, models.DetectionResult{EventID: input.EventID, Record: record}, nil
}

// NewJudgeHandler returns a tool handler backed by the remote judge.
// Pass the returned function to mcp.AddTool.
func NewJudgeHandler(remote detector.Evaluator, defaults models.DetectionConfig) func(context.Context, *mcp.CallToolRequest, JudgeInput) (*mcp.CallToolResult, models.DetectionResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input JudgeInput) (*mcp.CallToolResult, models.DetectionResult, error) {
		record, err := remote.Evaluate(ctx, models.EvaluationInput{
			Context:  input.Context,
			Response: input.Response,
		}, defaults)
		if err != nil {
			return nil, models.DetectionResult{}, err
		}

		return nil, models.DetectionResult{EventID: input.EventID, Record: record}, nil
	}
}
