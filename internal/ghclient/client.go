// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package ghclient performs the downstream GitHub API calls made while
// handling a workflow-run event: downloading the run's log archive and
// posting the summary as a pull request comment.
//
// Every call authenticates with an installation access token supplied by
// the caller, the package holds no credentials of its own.
package ghclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"

	"github.com/aaryanshroff/ops-medic/internal/githubapi"
)

// maxLogArchiveBytes bounds how much of a run's log archive is read.
// Archives beyond this are truncated rather than rejected.
const maxLogArchiveBytes = 32 << 20

// defaultTimeout bounds a single downstream round trip. Archive
// downloads can be large, allow more than the token exchange does.
const defaultTimeout = 60 * time.Second

// Client makes authenticated downstream calls to the GitHub API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	ua         string
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient overrides the underlying [http.Client].
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL overrides the REST API base URL. This is useful for GitHub
// Enterprise deployments and tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// New returns a [Client] using the default GitHub endpoint unless
// overridden.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		ua:         githubapi.UAHeaderValue,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// DownloadRunLogs fetches the zip archive of a workflow run's logs from
// logsURL using the given installation token. GitHub redirects the call
// to a short-lived signed archive URL, the Authorization header is
// dropped on the cross-host redirect by [net/http.Client].
func (c *Client) DownloadRunLogs(ctx context.Context, logsURL, token string) ([]byte, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, logsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ghclient: failed to build logs request: %w", err)
	}

	r.Header.Set(githubapi.AuthzHeader, githubapi.AuthzHeaderValue(token))
	r.Header.Set(githubapi.AcceptHeader, githubapi.AcceptHeaderValue)
	r.Header.Set(githubapi.UAHeader, c.ua)

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("ghclient: failed to download run logs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ghclient: failed to download run logs: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogArchiveBytes))
	if err != nil {
		return nil, fmt.Errorf("ghclient: failed to read log archive: %w", err)
	}

	return data, nil
}

// CreateIssueComment posts body as a comment on the given pull request.
// PR comments are issue comments in the GitHub API.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body, token string) error {
	gh := github.NewClient(c.httpClient).WithAuthToken(token)

	if c.baseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/")
		if err != nil {
			return fmt.Errorf("ghclient: invalid base url %q: %w", c.baseURL, err)
		}
		gh.BaseURL = base
	}

	_, _, err := gh.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("ghclient: failed to comment on %s/%s#%d: %w",
			owner, repo, number, err)
	}

	return nil
}
