// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package config provides application configuration through environment
// variables.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"

	"github.com/aaryanshroff/ops-medic/internal/githubapi"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// GithubAppClientID is the GitHub App's client identifier, used as
	// the issuer of app JWTs.
	GithubAppClientID string
	// GithubPrivateKeyPath is the path to the app's PEM encoded RSA
	// private key.
	GithubPrivateKeyPath string
	// GithubAPIEndpoint is the GitHub REST API base URL.
	GithubAPIEndpoint string
	// GithubExchangeTimeout bounds a single token exchange round trip.
	GithubExchangeTimeout time.Duration

	// GeminiAPIKey authenticates calls to the summarization API.
	GeminiAPIKey string
	// GeminiModel is the generative model used for log summarization.
	GeminiModel string
	// GeminiEndpoint is the generative language API base URL.
	GeminiEndpoint string
}

// defaultClientID is the production app's client identifier.
const defaultClientID = "Iv23limjQewW9Ze9C50p"

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 3000),

		LogLevel: env.GetString("LOG_LEVEL", "info"),

		GithubAppClientID:     env.GetString("GITHUB_APP_CLIENT_ID", defaultClientID),
		GithubPrivateKeyPath:  env.GetString("GITHUB_APP_PRIVATE_KEY_PATH", ""),
		GithubAPIEndpoint:     env.GetString("GITHUB_API_ENDPOINT", githubapi.DefaultEndpoint),
		GithubExchangeTimeout: env.GetDuration("GITHUB_EXCHANGE_TIMEOUT_SECONDS", 15, time.Second),

		GeminiAPIKey: env.GetString("GEMINI_API_KEY", ""),
		GeminiModel:  env.GetString("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		GeminiEndpoint: env.GetString(
			"GEMINI_ENDPOINT",
			"https://generativelanguage.googleapis.com/v1beta",
		),
	}
}

// SlogLevel maps LogLevel onto a [log/slog.Level]. Unknown values
// default to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadDotEnv walks up from the working directory looking for a .env
// file. Missing .env is fine, the environment simply wins.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Load(candidate)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
