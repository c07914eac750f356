// Package embeddings maps text to fixed-dimensionality vectors via an
// external model provider.
package embeddings

import (
	"context"
)

//go:generate mockgen -source=provider.go -destination=mocks/provider_mock.go -package=mocks

// Provider maps a text string to a numeric vector. Implementations must
// be deterministic for identical input within one model version and keep
// dimensionality constant across calls.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
