package gemini

import (
	"context"
	"fmt"

	"github.com/groundcheck/hallucination-agent/internal/llm"
	"google.golang.org/genai"
)

const DefaultModelID = "gemini-2.5-flash"

// Client invokes a Gemini model constrained to the fixed verdict schema.
// The model can only answer with a JSON object carrying the four verdict
// fields, which keeps parsing on the judge side strict and simple.
type Client struct {
	client  *genai.Client
	modelID string
}

func NewClient(ctx context.Context, apiKey string, modelID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if modelID == "" {
		modelID = DefaultModelID
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("unable to create gemini client: %w", err)
	}

	return &Client{
		client:  client,
		modelID: modelID,
	}, nil
}

// verdictSchema constrains the response to exactly the four fields the
// judge contract requires.
func verdictSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"similarityScore": {
				Type:        genai.TypeNumber,
				Description: "A float between 0 and 1 indicating semantic similarity of facts.",
			},
			"contradictionFound": {
				Type:        genai.TypeBoolean,
				Description: "True if a direct contradiction is found.",
			},
			"reasoning": {
				Type:        genai.TypeString,
				Description: "A brief explanation of why this verdict was reached.",
			},
			"verdict": {
				Type: genai.TypeString,
				Enum: []string{"FACTUAL", "HALLUCINATION", "UNCERTAIN"},
			},
		},
		Required: []string{"similarityScore", "contradictionFound", "reasoning", "verdict"},
	}
}

func (c *Client) InvokeModel(ctx context.Context, request llm.Request) (*llm.Response, error) {
	temperature := float32(request.Temperature)

	cfg := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  int32(request.MaxTokens),
		ResponseMIMEType: "application/json",
		ResponseSchema:   verdictSchema(),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelID, genai.Text(request.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gemini model: %w", err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("no response text from gemini")
	}

	return &llm.Response{
		Content: text,
	}, nil
}

// InvokeModelWithRetry delegates to the SDK's built-in retry handling.
func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.Request) (*llm.Response, error) {
	return c.InvokeModel(ctx, request)
}
