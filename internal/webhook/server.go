// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aaryanshroff/ops-medic/internal/metrics"
)

// Server is the webhook HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer wires the webhook routes onto a gin engine and returns the
// server. The metrics endpoint is only registered when m is non nil.
func NewServer(host string, port int, handler *Handler, m *metrics.Metrics, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/", handler.Receive)
	router.GET("/healthz", handler.Healthz)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the underlying router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the webhook server and blocks until it stops. Stop it
// with [Server.Shutdown].
func (s *Server) Start() error {
	s.logger.Info("starting webhook server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start webhook server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the webhook server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down webhook server")
	return s.server.Shutdown(ctx)
}
