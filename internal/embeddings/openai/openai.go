package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultModelID = string(openai.EmbeddingModelTextEmbedding3Small)

// Client embeds text with the OpenAI embeddings API.
type Client struct {
	Client  openai.Client
	ModelID string
}

func NewClient(apiKey string, modelID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if modelID == "" {
		modelID = DefaultModelID
	}

	openaiClient := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(3),
	)

	return &Client{
		Client:  openaiClient,
		ModelID: modelID,
	}, nil
}

func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	output, err := c.Client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model: openai.EmbeddingModel(c.ModelID),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to invoke embedding model: %w", err)
	}

	if len(output.Data) == 0 {
		return nil, fmt.Errorf("no embeddings in response")
	}

	return output.Data[0].Embedding, nil
}
