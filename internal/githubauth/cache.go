// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubauth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// TokenCache holds at most one installation access token per installation
// and refreshes it on demand.
//
// The fast path (valid cached token) never blocks on network I/O.
// Refreshes are single-flight per installation: N concurrent callers for
// the same missing or expired installation trigger exactly one exchange
// and all observe the resulting token. Callers for distinct installations
// never block each other. A failed refresh leaves the cache entry
// unchanged, a later call simply retries.
type TokenCache struct {
	issuer    *Issuer
	exchanger Exchanger

	group  singleflight.Group
	mu     sync.RWMutex
	tokens map[int64]InstallationToken

	now func() time.Time
}

// CacheOption configures a [TokenCache].
type CacheOption func(*TokenCache) error

// WithNowFunc overrides the cache's clock. Intended for tests.
func WithNowFunc(now func() time.Time) CacheOption {
	return func(c *TokenCache) error {
		if now == nil {
			return fmt.Errorf("now func is nil")
		}
		c.now = now
		return nil
	}
}

// NewTokenCache returns a [TokenCache] which mints app JWTs with issuer
// and exchanges them with exchanger.
func NewTokenCache(issuer *Issuer, exchanger Exchanger, opts ...CacheOption) (*TokenCache, error) {
	if issuer == nil {
		return nil, fmt.Errorf("%w: no jwt issuer provided", ErrConfiguration)
	}

	if exchanger == nil {
		return nil, fmt.Errorf("%w: no token exchanger provided", ErrConfiguration)
	}

	c := &TokenCache{
		issuer:    issuer,
		exchanger: exchanger,
		tokens:    make(map[int64]InstallationToken),
		now:       time.Now,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("githubauth: invalid cache options: %w", err)
		}
	}

	return c, nil
}

// GetToken returns a bearer token for the given installation, valid for
// at least [RefreshMargin].
//
// When no valid token is cached, a new app JWT is minted and exchanged,
// and the cache entry for the installation is atomically replaced with
// the result. Errors from minting or exchanging propagate unchanged and
// are never retried here.
func (c *TokenCache) GetToken(ctx context.Context, installationID int64) (string, error) {
	if token, ok := c.lookup(installationID); ok {
		return token.Token, nil
	}

	v, err, _ := c.group.Do(strconv.FormatInt(installationID, 10), func() (any, error) {
		// Another caller's refresh may have completed between the fast
		// path check and joining the flight. Re-check before exchanging.
		if token, ok := c.lookup(installationID); ok {
			return token.Token, nil
		}

		assertion, err := c.issuer.Mint()
		if err != nil {
			return nil, err
		}

		token, err := c.exchanger.Exchange(ctx, assertion, installationID)
		if err != nil {
			return nil, err
		}

		c.store(token)
		return token.Token, nil
	})
	if err != nil {
		return "", err
	}

	//nolint:forcetypeassert // flight fn only ever returns string.
	return v.(string), nil
}

// lookup returns the cached token for the installation if it is still
// valid at the cache's current time.
func (c *TokenCache) lookup(installationID int64) (InstallationToken, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	token, ok := c.tokens[installationID]
	if !ok || !token.ValidAt(c.now()) {
		return InstallationToken{}, false
	}
	return token, true
}

// store replaces the cache entry for the token's installation.
func (c *TokenCache) store(token InstallationToken) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[token.InstallationID] = token
}
