// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubauth

import "fmt"

var (
	_ error = Error("")
	_ error = (*ExchangeError)(nil)
)

// Error is immutable error representation.
//
// Error strings themselves are NOT part of compatibility guarantees.
// Use exported symbols instead of directly using error strings.
type Error string

// Implements Error() interface.
func (e Error) Error() string {
	return string(e)
}

// Errors returned by this package. Each corresponds to one failure kind,
// callers are expected to dispatch with [errors.Is].
//
//   - [ErrConfiguration] is returned when the signing key location is
//     unset or the key material cannot be read or parsed. Fatal, never
//     retried.
//   - [ErrSigning] is returned when signing an app JWT fails. Fatal,
//     propagates to the caller.
//   - [ErrTokenExchange] is returned when the token issuance endpoint
//     responds with a non-success status. See [ExchangeError].
//   - [ErrMalformedResponse] is returned when a success response cannot
//     be parsed. Handled like [ErrTokenExchange] but kept distinct as it
//     indicates a protocol or version mismatch worth separate alerting.
const (
	ErrConfiguration     = Error("githubauth: invalid configuration")
	ErrSigning           = Error("githubauth: failed to sign app jwt")
	ErrTokenExchange     = Error("githubauth: token exchange failed")
	ErrMalformedResponse = Error("githubauth: malformed token exchange response")
)

// ExchangeError is returned when the installation token issuance endpoint
// responds with a non-success status. It unwraps to [ErrTokenExchange].
type ExchangeError struct {
	// HTTP status code returned by the endpoint.
	StatusCode int

	// Installation the exchange was attempted for.
	InstallationID int64

	// Error message from the API response, if any.
	Message string
}

func (e *ExchangeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: installation %d: %s (status %d)",
			ErrTokenExchange, e.InstallationID, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: installation %d: status %d",
		ErrTokenExchange, e.InstallationID, e.StatusCode)
}

func (e *ExchangeError) Unwrap() error {
	return ErrTokenExchange
}
