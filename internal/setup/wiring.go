package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/groundcheck/hallucination-agent/internal/config"
	"github.com/groundcheck/hallucination-agent/internal/detector"
	"github.com/groundcheck/hallucination-agent/internal/embeddings"
	embbedrock "github.com/groundcheck/hallucination-agent/internal/embeddings/bedrock"
	embopenai "github.com/groundcheck/hallucination-agent/internal/embeddings/openai"
	"github.com/groundcheck/hallucination-agent/internal/judge"
	"github.com/groundcheck/hallucination-agent/internal/llm"
	"github.com/groundcheck/hallucination-agent/internal/llm/bedrock"
	"github.com/groundcheck/hallucination-agent/internal/llm/gemini"
	"github.com/groundcheck/hallucination-agent/internal/llm/gpt"
	"github.com/groundcheck/hallucination-agent/internal/models"
	redisconn "github.com/groundcheck/hallucination-agent/internal/redis"
	"github.com/groundcheck/hallucination-agent/internal/rules"
	"github.com/rs/zerolog"
)

type Config struct {
	AWSRegion         string
	ClaudeModelID     string
	TitanModelID      string
	OpenAIKey         string
	OpenAIModelID     string
	OpenAIEmbedModel  string
	GeminiKey         string
	GeminiModelID     string
	EmbeddingProvider string
	JudgeProvider     string
	ReasoningLanguage string
	RedisAddr         string
	RedisPassword     string
	EmbedCacheTTL     time.Duration

	Detection models.DetectionConfig
}

type Dependencies struct {
	Detector *detector.LocalEvaluator
	Judge    *judge.RemoteJudge
	Logger   *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:     getEnv("CLAUDE_MODEL_ID", ""),
		TitanModelID:      getEnv("TITAN_EMBED_MODEL_ID", embbedrock.DefaultModelID),
		OpenAIKey:         getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:     getEnv("OPEN_AI_MODEL_ID", ""),
		OpenAIEmbedModel:  getEnv("OPEN_AI_EMBED_MODEL_ID", embopenai.DefaultModelID),
		GeminiKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:     getEnv("GEMINI_MODEL_ID", gemini.DefaultModelID),
		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "bedrock"),
		JudgeProvider:     getEnv("JUDGE_PROVIDER", "gemini"),
		ReasoningLanguage: getEnv("JUDGE_REASONING_LANGUAGE", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		EmbedCacheTTL:     getEnvDuration("EMBED_CACHE_TTL", embeddings.DefaultCacheTTL),
		Detection: models.DetectionConfig{
			SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.75),
			StrictRules:         getEnvBool("STRICT_RULES", true),
			UseVectorSearch:     getEnvBool("USE_VECTOR_SEARCH", true),
		},
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	provider, err := createEmbeddingProvider(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	filter, err := createRuleFilter(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rule filter: %w", err)
	}

	judgeClient, err := createJudgeClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create judge client: %w", err)
	}
	if judgeClient == nil {
		logger.Warn().Str("provider", cfg.JudgeProvider).Msg("No judge credentials configured, remote judge disabled")
	}

	return &Dependencies{
		Detector: detector.NewLocalEvaluator(provider, filter, logger),
		Judge:    judge.NewRemoteJudge(judgeClient, cfg.ReasoningLanguage, logger),
		Logger:   logger,
	}, nil
}

func createEmbeddingProvider(ctx context.Context, cfg *Config, logger *zerolog.Logger) (embeddings.Provider, error) {
	var (
		provider embeddings.Provider
		modelID  string
		err      error
	)

	switch cfg.EmbeddingProvider {
	case "openai":
		modelID = cfg.OpenAIEmbedModel
		provider, err = embopenai.NewClient(cfg.OpenAIKey, modelID)
	default:
		modelID = cfg.TitanModelID
		provider, err = embbedrock.NewClient(ctx, cfg.AWSRegion, modelID)
	}
	if err != nil {
		return nil, err
	}

	// An embedding cache is optional; without Redis the provider is used
	// directly.
	if cfg.RedisAddr == "" {
		return provider, nil
	}

	client, err := redisconn.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 3)
	if err != nil {
		return nil, err
	}

	return embeddings.NewCachedProvider(provider, client, modelID, cfg.EmbedCacheTTL, logger), nil
}

func createRuleFilter(logger *zerolog.Logger) (*rules.Filter, error) {
	phrasesCfg, err := config.LoadPhrasesConfig()
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Msg("No phrases config found, using bundled phrase set")
			return rules.NewDefaultFilter(), nil
		}
		return nil, err
	}

	logger.Info().Int("phrase_count", len(phrasesCfg.Phrases.Uncertainty)).Msg("Rule filter loaded from config")
	return rules.NewFilter(phrasesCfg.Phrases.Uncertainty), nil
}

func createJudgeClient(ctx context.Context, cfg *Config) (llm.Client, error) {
	switch cfg.JudgeProvider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, nil
		}
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		if cfg.GeminiKey == "" {
			return nil, nil
		}
		return gemini.NewClient(ctx, cfg.GeminiKey, cfg.GeminiModelID)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
