// Package main provides the entry point for the animcp MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/animcp/internal/config"
	"github.com/raphaelgruber/animcp/internal/fetch"
	"github.com/raphaelgruber/animcp/internal/metrics"
	"github.com/raphaelgruber/animcp/internal/mixamo"
	"github.com/raphaelgruber/animcp/internal/server"
	"github.com/raphaelgruber/animcp/internal/token"
	"github.com/raphaelgruber/animcp/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("animcp: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg)
	defer func() {
		_ = cleanup()
	}()

	// Log startup info
	logger.Info("animcp starting",
		"version", version,
		"base_url", cfg.BaseURL,
		"format", cfg.Format,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load the persisted token; ANIMCP_TOKEN beats the token file
	tokens, err := token.NewStore(cfg.TokenPath)
	if err != nil {
		logger.Error("failed to init token store", "error", err)
		os.Exit(1)
	}
	accessToken := cfg.Token
	if accessToken == "" {
		if accessToken, err = tokens.Load(); err != nil {
			logger.Error("failed to load token", "error", err)
			os.Exit(1)
		}
	}
	if accessToken == "" {
		logger.Warn("no access token configured, only mixamo_auth and mixamo_keywords will work")
	}

	// Create the Mixamo client and pipeline service
	collector := metrics.NewCollector()
	client := mixamo.New(mixamo.Config{
		Token:        accessToken,
		BaseURL:      cfg.BaseURL,
		Format:       cfg.Format,
		FPS:          cfg.FPS,
		SearchLimit:  cfg.SearchLimit,
		PollInterval: cfg.PollInterval,
		PollAttempts: cfg.PollAttempts,
		Metrics:      collector,
	}, logger)
	defer client.Close()

	svc := fetch.NewService(client, cfg, logger)

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	// Register tools
	deps := &tools.Dependencies{
		Service: svc,
		Client:  client,
		Tokens:  tokens,
		Metrics: collector,
		Logger:  logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps, &cfg)
	logger.Info("tools registered", "count", 6)

	// Log ready state
	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	snap := collector.Snapshot()
	logger.Debug("session stats",
		"uptime_s", snap.UptimeSeconds,
		"searches", opCount(snap.Search),
		"exports", opCount(snap.Export),
		"downloads", opCount(snap.Download),
	)
	logger.Info("shutdown complete")
}

func opCount(op *metrics.OperationSnapshot) int64 {
	if op == nil {
		return 0
	}
	return op.Count
}
