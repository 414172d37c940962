// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package webhook provides the HTTP ingress for GitHub webhook
// deliveries.
package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"

	"github.com/aaryanshroff/ops-medic/internal/githubapi"
	"github.com/aaryanshroff/ops-medic/internal/metrics"
)

const eventWorkflowRun = "workflow_run"

// RunHandler consumes a parsed workflow-run event. The boolean reports
// whether the event was acted upon. Satisfied by
// [github.com/aaryanshroff/ops-medic/internal/workflow.Orchestrator].
type RunHandler interface {
	HandleWorkflowRun(ctx context.Context, event *github.WorkflowRunEvent) (bool, error)
}

// Handler dispatches webhook deliveries to the run handler.
type Handler struct {
	runs    RunHandler
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewHandler returns a webhook [Handler].
func NewHandler(runs RunHandler, m *metrics.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{runs: runs, metrics: m, logger: logger}
}

// Receive handles POST / webhook deliveries.
//
// Deliveries must be JSON, anything else is rejected with 415. Events
// other than workflow_run, and workflow_run events the handler chooses
// to ignore, are acknowledged with 204 so GitHub does not redeliver.
// Unparseable payloads get 400, processing failures 500.
func (h *Handler) Receive(c *gin.Context) {
	event := c.GetHeader(githubapi.EventHeader)
	delivery := c.GetHeader(githubapi.DeliveryHeader)

	logger := h.logger.With(
		slog.String("event", event),
		slog.String("delivery", delivery),
	)

	if !isJSONContentType(c.ContentType()) {
		logger.Warn("rejecting non JSON delivery", slog.String("content_type", c.ContentType()))
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"error": "content type must be application/json",
		})
		return
	}

	if event != eventWorkflowRun {
		h.count(event, metrics.OutcomeIgnored)
		logger.Debug("ignoring delivery")
		c.Status(http.StatusNoContent)
		return
	}

	var payload github.WorkflowRunEvent
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		h.count(event, metrics.OutcomeError)
		logger.Warn("failed to decode delivery payload", slog.Any("error", err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	handled, err := h.runs.HandleWorkflowRun(c.Request.Context(), &payload)
	if err != nil {
		h.count(event, metrics.OutcomeError)
		logger.Error("failed to process workflow run", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	if !handled {
		h.count(event, metrics.OutcomeIgnored)
		c.Status(http.StatusNoContent)
		return
	}

	h.count(event, metrics.OutcomeHandled)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) count(event, outcome string) {
	if h.metrics == nil {
		return
	}
	if event == "" {
		event = "unknown"
	}
	h.metrics.WebhookEvents.WithLabelValues(event, outcome).Inc()
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// isJSONContentType matches the media type with any parameters already
// stripped by gin.
func isJSONContentType(ct string) bool {
	return ct == "application/json"
}
