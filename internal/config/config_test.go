// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Iv23limjQewW9Ze9C50p", cfg.GithubAppClientID)
	assert.Equal(t, "https://api.github.com/", cfg.GithubAPIEndpoint)
	assert.Equal(t, 15*time.Second, cfg.GithubExchangeTimeout)
	assert.Equal(t, "gemini-1.5-flash-latest", cfg.GeminiModel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GITHUB_APP_CLIENT_ID", "Iv1other")
	t.Setenv("GITHUB_APP_PRIVATE_KEY_PATH", "/etc/ops-medic/app.pem")
	t.Setenv("GITHUB_EXCHANGE_TIMEOUT_SECONDS", "30")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := Load()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Iv1other", cfg.GithubAppClientID)
	assert.Equal(t, "/etc/ops-medic/app.pem", cfg.GithubPrivateKeyPath)
	assert.Equal(t, 30*time.Second, cfg.GithubExchangeTimeout)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level  string
		expect slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range tests {
		cfg := &Config{LogLevel: tc.level}
		assert.Equal(t, tc.expect, cfg.SlogLevel(), "level %s", tc.level)
	}
}
