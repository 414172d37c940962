// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aaryanshroff/ops-medic/internal/githubapi"
)

var (
	_ Exchanger = (*Client)(nil)
)

// defaultExchangeTimeout bounds a single token exchange round trip so a
// hung endpoint cannot indefinitely stall callers waiting on the shared
// refresh.
const defaultExchangeTimeout = 15 * time.Second

// Exchanger exchanges an app JWT for an installation access token.
type Exchanger interface {
	Exchange(ctx context.Context, assertion AppJWT, installationID int64) (InstallationToken, error)
}

// Client is the [Exchanger] backed by the GitHub REST API.
type Client struct {
	endpoint *url.URL
	client   *http.Client
	timeout  time.Duration
	ua       string
}

// ClientOption configures a [Client].
type ClientOption func(*Client) error

// WithEndpoint configures a custom REST API(v3) endpoint. This is useful
// for GitHub Enterprise deployments and tests. When not specified,
// "https://api.github.com/" is used.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) error {
		u, err := url.Parse(endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint url: %w", err)
		}
		switch u.Scheme {
		case "http", "https":
		default:
			return fmt.Errorf("invalid url scheme: %s (%s)", u.Scheme, endpoint)
		}
		if u.Fragment != "" || u.RawQuery != "" {
			return fmt.Errorf("endpoint cannot have fragments or queries: %s", endpoint)
		}
		c.endpoint = u
		return nil
	}
}

// WithHTTPClient configures the underlying [http.Client]. This can be
// used to customize timeouts, transport and retries.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) error {
		if client == nil {
			return fmt.Errorf("http client is nil")
		}
		c.client = client
		return nil
	}
}

// WithTimeout configures the network timeout for exchange calls.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		if timeout <= 0 {
			return fmt.Errorf("invalid exchange timeout: %s", timeout)
		}
		c.timeout = timeout
		return nil
	}
}

// WithUserAgent configures the User-Agent header for exchange calls.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) error {
		c.ua = ua
		return nil
	}
}

// NewClient returns a token exchange [Client] for the GitHub REST API.
func NewClient(opts ...ClientOption) (*Client, error) {
	endpoint, _ := url.Parse(githubapi.DefaultEndpoint)
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultExchangeTimeout},
		ua:       githubapi.UAHeaderValue,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("githubauth: invalid client options: %w", err)
		}
	}

	if c.timeout > 0 {
		c.client.Timeout = c.timeout
	}

	return c, nil
}

// Exchange performs the network call that exchanges an app JWT for an
// installation access token.
//
// On a non-success status it returns [*ExchangeError]. On a success
// response whose token or expiry cannot be parsed it returns an error
// unwrapping to [ErrMalformedResponse], such a token must never be
// cached as its safety cannot be verified. This layer never retries,
// retry policy belongs to the caller.
func (c *Client) Exchange(ctx context.Context, assertion AppJWT, installationID int64) (InstallationToken, error) {
	if installationID <= 0 {
		return InstallationToken{},
			fmt.Errorf("githubauth: invalid installation id: %d", installationID)
	}

	u := c.endpoint.JoinPath(
		"app", "installations",
		strconv.FormatInt(installationID, 10),
		"access_tokens")

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return InstallationToken{},
			fmt.Errorf("githubauth: failed to build token request: %w", err)
	}

	r.Header.Set(githubapi.AuthzHeader, githubapi.AuthzHeaderValue(assertion.Token))
	r.Header.Set(githubapi.AcceptHeader, githubapi.AcceptHeaderValue)
	r.Header.Set(githubapi.VersionHeader, githubapi.VersionHeaderValue)
	r.Header.Set(githubapi.UAHeader, c.ua)

	resp, err := c.client.Do(r)
	if err != nil {
		return InstallationToken{},
			fmt.Errorf("githubauth: token exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return InstallationToken{},
			fmt.Errorf("githubauth: failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		// Try to decode the error message if possible.
		errResp := githubapi.ErrorResponse{}
		_ = json.Unmarshal(data, &errResp)
		return InstallationToken{}, &ExchangeError{
			StatusCode:     resp.StatusCode,
			InstallationID: installationID,
			Message:        errResp.Message,
		}
	}

	tokenResp := githubapi.InstallationTokenResponse{}
	if err := json.Unmarshal(data, &tokenResp); err != nil {
		return InstallationToken{},
			fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if tokenResp.Token == "" {
		return InstallationToken{},
			fmt.Errorf("%w: token is missing", ErrMalformedResponse)
	}

	if tokenResp.Exp == nil || tokenResp.Exp.IsZero() {
		return InstallationToken{},
			fmt.Errorf("%w: expiry is missing", ErrMalformedResponse)
	}

	return InstallationToken{
		Token:          tokenResp.Token,
		InstallationID: installationID,
		Exp:            tokenResp.Exp.Time,
		Permissions:    tokenResp.Permissions,
	}, nil
}
