package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/groundcheck/hallucination-agent/internal/mcpadapter"
	"github.com/groundcheck/hallucination-agent/internal/setup"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load Config
	cfg := setup.LoadConfig()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	// Create MCP Server
	server := createMCPServer(deps, cfg)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes (e.g. echo | ./bin/detect-mcp)
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies, cfg *setup.Config) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "hallucination-agent",
			Version: "1.0.0",
		}, nil,
	)

	// Add Tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_hallucination",
		Description: "Classify a response against its reference context using uncertainty rules and embedding similarity. Fast and local.",
	}, mcpadapter.NewDetectHandler(deps.Detector, cfg.Detection))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "judge_hallucination",
		Description: "Classify a response against its reference context with an LLM judge that returns a structured verdict and reasoning. Slower, explanation-bearing.",
	}, mcpadapter.NewJudgeHandler(deps.Judge, cfg.Detection))

	return server
}
