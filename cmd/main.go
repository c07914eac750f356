package main

import (
	"context"
	"os"
	"time"

	"github.com/groundcheck/hallucination-agent/internal/models"
	"github.com/groundcheck/hallucination-agent/internal/setup"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sample context/response pairs covering a supported claim, a numeric
// contradiction, a hedged answer, and a cross-language pair.
var samples = []models.EvaluationInput{
	{
		Context:  "The Eiffel Tower is located in Paris, France. It was completed in 1889.",
		Response: "The Eiffel Tower stands in Paris and was finished in 1889.",
	},
	{
		Context:  "The speed of light in vacuum is approximately 299,792 kilometers per second.",
		Response: "Light travels at about 150,000 kilometers per second in vacuum.",
	},
	{
		Context:  "Water boils at 100 degrees Celsius at sea level.",
		Response: "I'm not sure, but water might boil at around 100 degrees Celsius.",
	},
	{
		Context:  "地球是太阳系中的第三颗行星。",
		Response: "根据我的理解，地球可能是太阳系中的第三颗行星。",
	},
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx := context.Background()

	// Load Config
	cfg := setup.LoadConfig()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	for i, input := range samples {
		record, err := deps.Detector.Evaluate(ctx, input, cfg.Detection)
		if err != nil {
			logger.Error().Err(err).Int("sample", i).Msg("Local detection failed")
			continue
		}

		logger.Info().
			Int("sample", i).
			Str("verdict", string(record.Verdict)).
			Float64("score", record.SimilarityScore).
			Bool("contradiction", record.ContradictionFound).
			Str("reasoning", record.Reasoning).
			Msg("Local detector verdict")

		judged, err := deps.Judge.Judge(ctx, input)
		if err != nil {
			logger.Warn().Err(err).Int("sample", i).Msg("Remote judge unavailable")
			continue
		}

		logger.Info().
			Int("sample", i).
			Str("verdict", string(judged.Verdict)).
			Float64("score", judged.SimilarityScore).
			Str("reasoning", judged.Reasoning).
			Msg("Remote judge verdict")
	}
}
