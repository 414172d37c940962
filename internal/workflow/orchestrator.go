// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package workflow handles qualifying workflow-run events end to end:
// acquire an installation token, download and extract the run's logs,
// summarize them and post the summary as a pull request comment.
package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v66/github"

	"github.com/aaryanshroff/ops-medic/internal/summarizer"
)

// Only completed runs that concluded with "failure" are acted upon.
// GitHub reports the conclusion as "failure", not "failed".
const (
	actionCompleted   = "completed"
	conclusionFailure = "failure"
)

// TokenProvider yields a valid installation access token.
// Satisfied by [github.com/aaryanshroff/ops-medic/internal/githubauth.TokenCache].
type TokenProvider interface {
	GetToken(ctx context.Context, installationID int64) (string, error)
}

// GitHubClient is the downstream GitHub surface used while handling an
// event. Satisfied by [github.com/aaryanshroff/ops-medic/internal/ghclient.Client].
type GitHubClient interface {
	DownloadRunLogs(ctx context.Context, logsURL, token string) ([]byte, error)
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body, token string) error
}

// Orchestrator consumes workflow-run events. It is stateless, all state
// lives in the injected token provider.
type Orchestrator struct {
	tokens     TokenProvider
	github     GitHubClient
	summarizer summarizer.Summarizer
	logger     *slog.Logger
}

// New returns an [Orchestrator].
func New(tokens TokenProvider, gh GitHubClient, sum summarizer.Summarizer, logger *slog.Logger) (*Orchestrator, error) {
	if tokens == nil {
		return nil, fmt.Errorf("workflow: no token provider provided")
	}
	if gh == nil {
		return nil, fmt.Errorf("workflow: no github client provided")
	}
	if sum == nil {
		return nil, fmt.Errorf("workflow: no summarizer provided")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		tokens:     tokens,
		github:     gh,
		summarizer: sum,
		logger:     logger,
	}, nil
}

// HandleWorkflowRun processes one workflow-run event. The boolean
// reports whether the event was acted upon, ignored events return
// (false, nil).
//
// Events that are not a completed run with a failure conclusion are
// ignored. Token acquisition failure is fatal for the event: processing
// aborts before any downstream call and no comment is posted. Errors are
// returned to the caller, this layer never retries.
func (o *Orchestrator) HandleWorkflowRun(ctx context.Context, event *github.WorkflowRunEvent) (bool, error) {
	run := event.GetWorkflowRun()
	if run == nil {
		o.logger.Warn("workflow_run event without a run payload")
		return false, nil
	}

	logger := o.logger.With(
		slog.String("repo", event.GetRepo().GetFullName()),
		slog.Int64("run_id", run.GetID()),
	)

	if event.GetAction() != actionCompleted || run.GetConclusion() != conclusionFailure {
		logger.Debug("ignoring workflow run",
			slog.String("action", event.GetAction()),
			slog.String("conclusion", run.GetConclusion()),
		)
		return false, nil
	}

	installationID := event.GetInstallation().GetID()
	if installationID == 0 {
		return false, fmt.Errorf("workflow: event carries no installation id")
	}

	token, err := o.tokens.GetToken(ctx, installationID)
	if err != nil {
		return false, fmt.Errorf("workflow: failed to acquire installation token: %w", err)
	}

	archive, err := o.github.DownloadRunLogs(ctx, run.GetLogsURL(), token)
	if err != nil {
		return false, err
	}

	logs, err := ExtractLogs(archive)
	if err != nil {
		return false, err
	}

	summary, err := o.summarizer.Summarize(ctx, logs)
	if err != nil {
		return false, err
	}

	if len(run.PullRequests) == 0 {
		logger.Info("no associated pull request for failed run")
		return true, nil
	}
	number := run.PullRequests[0].GetNumber()

	owner := event.GetRepo().GetOwner().GetLogin()
	repo := event.GetRepo().GetName()
	if err := o.github.CreateIssueComment(ctx, owner, repo, number, summary, token); err != nil {
		return false, err
	}

	logger.Info("posted failure summary", slog.Int("pr", number))
	return true, nil
}
