// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubapi

// Common headers used by this service.
const (
	VersionHeader      = "X-GitHub-Api-Version"
	VersionHeaderValue = "2022-11-28"
	AcceptHeader       = "Accept"
	AcceptHeaderValue  = "application/vnd.github.v3+json"
	UAHeader           = "User-Agent"
	UAHeaderValue      = "github.com/aaryanshroff/ops-medic/v0"
	AuthzHeader        = "Authorization"
	ContentTypeHeader  = "Content-Type"
	ContentTypeJSON    = "application/json"
)

// GitHub webhook headers in canonical form.
const (
	EventHeader    = "X-GitHub-Event"
	DeliveryHeader = "X-GitHub-Delivery"
	HookIDHeader   = "X-GitHub-Hook-ID"
)

// DefaultEndpoint is the default GitHub REST API endpoint.
const DefaultEndpoint = "https://api.github.com/"

// AuthzHeaderValue is a convenience function to return the Authorization
// header value for a bearer token. If the token is empty, this returns
// an empty string.
func AuthzHeaderValue(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + token
}
