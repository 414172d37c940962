// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package githubauth implements the GitHub App credential lifecycle:
// loading the app's signing key, minting short-lived app JWTs, exchanging
// them for installation access tokens and caching those tokens per
// installation with a safety margin on expiry.
//
// The only mutable shared state is [TokenCache]. It guarantees at most
// one in-flight token exchange per installation, concurrent callers for
// the same installation share the result of a single refresh.
package githubauth
