// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubapi

// InstallationTokenResponse is returned by the installation token
// issuance endpoint.
//
// https://docs.github.com/en/rest/apps/apps?apiVersion=2022-11-28#create-an-installation-access-token-for-an-app
type InstallationTokenResponse struct {
	Token       string            `json:"token,omitempty"`
	Exp         *Timestamp        `json:"expires_at,omitempty"`
	Permissions map[string]string `json:"permissions,omitempty"`
}

// ErrorResponse is the error envelope returned by the GitHub API.
// GitHub API error response JSON is inconsistent, all fields are optional.
type ErrorResponse struct {
	Message          string `json:"message,omitempty"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}
