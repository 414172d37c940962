// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package commands implements the CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aaryanshroff/ops-medic/internal/config"
	"github.com/aaryanshroff/ops-medic/internal/ghclient"
	"github.com/aaryanshroff/ops-medic/internal/githubauth"
	"github.com/aaryanshroff/ops-medic/internal/metrics"
	"github.com/aaryanshroff/ops-medic/internal/summarizer"
	"github.com/aaryanshroff/ops-medic/internal/webhook"
	"github.com/aaryanshroff/ops-medic/internal/workflow"
)

const shutdownTimeout = 15 * time.Second

// RunServer starts the webhook server with graceful shutdown support.
// Blocks until receiving SIGINT/SIGTERM or encountering a fatal error.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	logger := newLogger(cfg)
	logger.Info("starting ops-medic", slog.String("version", version))

	if cfg.SlogLevel() == slog.LevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	cache, err := newTokenCache(cfg, m)
	if err != nil {
		return err
	}

	gemini, err := summarizer.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEndpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize summarizer: %w", err)
	}

	gh := metrics.NewInstrumentedGitHubClient(
		ghclient.New(ghclient.WithBaseURL(cfg.GithubAPIEndpoint)), m)

	orchestrator, err := workflow.New(cache, gh, gemini, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize orchestrator: %w", err)
	}

	handler := webhook.NewHandler(orchestrator, m, logger)
	server := webhook.NewServer(cfg.ServerHost, cfg.ServerPort, handler, m, logger)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// newTokenCache assembles the signing key, JWT issuer, instrumented
// exchange client and the installation token cache.
func newTokenCache(cfg *config.Config, m *metrics.Metrics) (*githubauth.TokenCache, error) {
	key, err := githubauth.LoadPrivateKey(cfg.GithubPrivateKeyPath)
	if err != nil {
		return nil, err
	}

	issuer, err := githubauth.NewIssuer(key, cfg.GithubAppClientID)
	if err != nil {
		return nil, err
	}

	client, err := githubauth.NewClient(
		githubauth.WithEndpoint(cfg.GithubAPIEndpoint),
		githubauth.WithTimeout(cfg.GithubExchangeTimeout),
	)
	if err != nil {
		return nil, err
	}

	var exchanger githubauth.Exchanger = client
	if m != nil {
		exchanger = metrics.NewInstrumentedExchanger(client, m)
	}

	return githubauth.NewTokenCache(issuer, exchanger)
}

func newLogger(cfg *config.Config) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})
	return slog.New(handler)
}
