// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubauth

import (
	"log/slog"
	"time"
)

var (
	_ slog.LogValuer = (*InstallationToken)(nil)
)

// RefreshMargin is the buffer subtracted from a token's stated expiry.
// A token inside the margin is treated as expired so that it never
// expires mid-flight due to clock skew or request latency.
const RefreshMargin = time.Minute

// InstallationToken is an installation access token from GitHub.
// Tokens are replaced, never mutated.
type InstallationToken struct {
	// Installation access token. Typically starts with "ghs_".
	Token string `json:"token"`

	// Installation ID the token is scoped to.
	InstallationID int64 `json:"installation_id,omitempty"`

	// Token expiry time.
	Exp time.Time `json:"exp,omitempty"`

	// Permissions available to the token.
	Permissions map[string]string `json:"permissions,omitempty"`
}

// LogValue implements [log/slog.LogValuer].
func (t *InstallationToken) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("installation_id", t.InstallationID),
		slog.String("token", "REDACTED"),
		slog.Time("exp", t.Exp),
		slog.Any("permissions", t.Permissions),
	)
}

// ValidAt reports whether the token is valid at the given instant,
// that is now < expiry - [RefreshMargin].
func (t *InstallationToken) ValidAt(now time.Time) bool {
	return t.Token != "" && now.Before(t.Exp.Add(-RefreshMargin))
}

// IsValid reports whether the token is valid for at least [RefreshMargin].
func (t *InstallationToken) IsValid() bool {
	return t.ValidAt(time.Now())
}
