// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus instrumentation for webhook
// handling and installation token exchange.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aaryanshroff/ops-medic/internal/githubauth"
)

// Outcome labels for webhook event metrics.
const (
	OutcomeHandled = "handled"
	OutcomeIgnored = "ignored"
	OutcomeError   = "error"
)

// Metrics holds the collector set for a single server instance. A
// dedicated registry keeps the exposition free of default Go runtime
// collectors registered by other packages.
type Metrics struct {
	registry *prometheus.Registry

	// WebhookEvents counts received webhook deliveries by event type
	// and handling outcome.
	WebhookEvents *prometheus.CounterVec

	// TokenExchanges counts installation token exchange attempts by
	// result status.
	TokenExchanges *prometheus.CounterVec

	// CommentsPosted counts pull request comments created.
	CommentsPosted prometheus.Counter
}

// New returns a [Metrics] with all collectors registered on a fresh
// registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		WebhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ops_medic",
				Subsystem: "webhook",
				Name:      "events_total",
				Help:      "Total number of webhook deliveries received",
			},
			[]string{"event", "outcome"},
		),
		TokenExchanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ops_medic",
				Subsystem: "github",
				Name:      "token_exchanges_total",
				Help:      "Total number of installation token exchange attempts",
			},
			[]string{"status"},
		),
		CommentsPosted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ops_medic",
				Subsystem: "github",
				Name:      "comments_posted_total",
				Help:      "Total number of pull request comments posted",
			},
		),
	}
	m.registry.MustRegister(m.WebhookEvents, m.TokenExchanges, m.CommentsPosted)
	return m
}

// Handler returns an HTTP handler serving the Prometheus exposition
// format for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// InstrumentedExchanger decorates an [githubauth.Exchanger] with
// exchange attempt counters.
type InstrumentedExchanger struct {
	next    githubauth.Exchanger
	metrics *Metrics
}

var _ githubauth.Exchanger = (*InstrumentedExchanger)(nil)

// NewInstrumentedExchanger wraps next so every exchange attempt is
// counted under ops_medic_github_token_exchanges_total.
func NewInstrumentedExchanger(next githubauth.Exchanger, m *Metrics) *InstrumentedExchanger {
	return &InstrumentedExchanger{next: next, metrics: m}
}

// Exchange delegates to the wrapped exchanger and records the result.
// HTTP failures are labeled with the response status code, transport
// and signing failures with "error".
func (e *InstrumentedExchanger) Exchange(ctx context.Context, assertion githubauth.AppJWT, installationID int64) (githubauth.InstallationToken, error) {
	token, err := e.next.Exchange(ctx, assertion, installationID)
	switch {
	case err == nil:
		e.metrics.TokenExchanges.WithLabelValues("success").Inc()
	default:
		status := "error"
		var exchangeErr *githubauth.ExchangeError
		if errors.As(err, &exchangeErr) {
			status = strconv.Itoa(exchangeErr.StatusCode)
		}
		e.metrics.TokenExchanges.WithLabelValues(status).Inc()
	}
	return token, err
}

// GitHubClient is the downstream GitHub surface decorated by
// [InstrumentedGitHubClient]. Satisfied by
// [github.com/aaryanshroff/ops-medic/internal/ghclient.Client].
type GitHubClient interface {
	DownloadRunLogs(ctx context.Context, logsURL, token string) ([]byte, error)
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body, token string) error
}

// InstrumentedGitHubClient decorates a [GitHubClient] with a counter
// for posted comments.
type InstrumentedGitHubClient struct {
	next    GitHubClient
	metrics *Metrics
}

var _ GitHubClient = (*InstrumentedGitHubClient)(nil)

// NewInstrumentedGitHubClient wraps next so every successfully created
// comment is counted under ops_medic_github_comments_posted_total.
func NewInstrumentedGitHubClient(next GitHubClient, m *Metrics) *InstrumentedGitHubClient {
	return &InstrumentedGitHubClient{next: next, metrics: m}
}

// DownloadRunLogs delegates to the wrapped client.
func (c *InstrumentedGitHubClient) DownloadRunLogs(ctx context.Context, logsURL, token string) ([]byte, error) {
	return c.next.DownloadRunLogs(ctx, logsURL, token)
}

// CreateIssueComment delegates to the wrapped client and counts the
// comment once it is created. Failed attempts are not counted.
func (c *InstrumentedGitHubClient) CreateIssueComment(ctx context.Context, owner, repo string, number int, body, token string) error {
	if err := c.next.CreateIssueComment(ctx, owner, repo, number, body, token); err != nil {
		return err
	}
	c.metrics.CommentsPosted.Inc()
	return nil
}
