package embeddings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const DefaultCacheTTL = 24 * time.Hour

// CachedProvider decorates a Provider with a Redis-backed cache. It
// caches raw embedding vectors keyed by model and text digest; it never
// stores evaluation results.
type CachedProvider struct {
	inner   Provider
	client  *redis.Client
	modelID string
	ttl     time.Duration
	logger  *zerolog.Logger
}

func NewCachedProvider(inner Provider, client *redis.Client, modelID string, ttl time.Duration, logger *zerolog.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		inner:   inner,
		client:  client,
		modelID: modelID,
		ttl:     ttl,
		logger:  logger,
	}
}

func (p *CachedProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	key := p.cacheKey(text)

	cached, err := p.client.Get(ctx, key).Result()
	if err == nil {
		var vector []float64
		if err := json.Unmarshal([]byte(cached), &vector); err == nil {
			return vector, nil
		}
		p.logger.Warn().Str("key", key).Msg("Corrupt cache entry, re-embedding")
	} else if !errors.Is(err, redis.Nil) {
		// Cache being down must not fail the evaluation.
		p.logger.Warn().Err(err).Msg("Embedding cache read failed")
	}

	vector, err := p.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(vector)
	if err != nil {
		return vector, nil
	}
	if err := p.client.Set(ctx, key, encoded, p.ttl).Err(); err != nil {
		p.logger.Warn().Err(err).Msg("Embedding cache write failed")
	}

	return vector, nil
}

func (p *CachedProvider) cacheKey(text string) string {
	digest := sha256.Sum256([]byte(text))
	return fmt.Sprintf("emb:%s:%s", p.modelID, hex.EncodeToString(digest[:]))
}
