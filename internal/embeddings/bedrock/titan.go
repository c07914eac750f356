package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const DefaultModelID = "amazon.titan-embed-text-v2:0"

// Client embeds text with an Amazon Titan embeddings model on Bedrock.
type Client struct {
	Client  *bedrockruntime.Client
	ModelID string
}

func NewClient(ctx context.Context, region string, modelID string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	if modelID == "" {
		modelID = DefaultModelID
	}

	return &Client{
		Client:  bedrockruntime.NewFromConfig(cfg),
		ModelID: modelID,
	}, nil
}

type titanEmbedRequest struct {
	InputText string `json:"inputText"`
}

type titanEmbedResponse struct {
	Embedding           []float64 `json:"embedding"`
	InputTextTokenCount int       `json:"inputTextTokenCount"`
}

func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	payload, err := json.Marshal(titanEmbedRequest{InputText: text})
	if err != nil {
		return nil, fmt.Errorf("unable to serialize titan request: %w", err)
	}

	output, err := c.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.ModelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to invoke titan model: %w", err)
	}

	var response titanEmbedResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal titan response: %w", err)
	}

	if len(response.Embedding) == 0 {
		return nil, fmt.Errorf("titan response contained no embedding")
	}

	return response.Embedding, nil
}
