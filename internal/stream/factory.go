package stream

import (
	"context"
	"fmt"

	"github.com/groundcheck/hallucination-agent/internal/detector"
	"github.com/groundcheck/hallucination-agent/internal/models"
	redisconn "github.com/groundcheck/hallucination-agent/internal/redis"
	"github.com/groundcheck/hallucination-agent/internal/stream/redis"
	"github.com/rs/zerolog"
)

type StreamConfig struct {
	Provider    string // redis, kafka, sqs, etc
	RedisConfig *redis.RedisStreamConfig
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	evaluator detector.Evaluator,
	defaults models.DetectionConfig,
	logger *zerolog.Logger,
) (StreamConsumer, error) {

	// If provider is empty, fallback to the default configuration.
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := redisconn.ConnectRedis(
			ctx,
			cfg.RedisConfig.RedisAddr,
			cfg.RedisConfig.RedisPassword,
			5,
		)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(
			client,
			cfg.RedisConfig.Stream,
			cfg.RedisConfig.Group,
			cfg.RedisConfig.ConsumerName,
			evaluator,
			defaults,
			logger,
		), nil

	// Future providers:
	// case "kafka":
	//     return kafka.NewConsumer(...)
	// case "sqs":
	//     return sqs.NewConsumer(...)

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
