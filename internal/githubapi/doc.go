// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package githubapi holds types and constants to serialize and deserialize
// requests to and from the GitHub REST API.
//
// Types are just enough for the app-authentication endpoints used by this
// service and should be considered incomplete. Use
// [github.com/google/go-github/v66/github] for everything else.
package githubapi
