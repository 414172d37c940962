// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	tt := []struct {
		name string
		opts []ClientOption
		ok   bool
	}{
		{
			name: "defaults",
			ok:   true,
		},
		{
			name: "custom-endpoint",
			opts: []ClientOption{WithEndpoint("https://github.example.com/api/v3/")},
			ok:   true,
		},
		{
			name: "endpoint-unsupported-scheme",
			opts: []ClientOption{WithEndpoint("file://key")},
		},
		{
			name: "endpoint-with-query",
			opts: []ClientOption{WithEndpoint("https://localhost:9999/foo?test=1")},
		},
		{
			name: "endpoint-with-fragment",
			opts: []ClientOption{WithEndpoint("https://localhost:9999/foo#fragment")},
		},
		{
			name: "nil-http-client",
			opts: []ClientOption{WithHTTPClient(nil)},
		},
		{
			name: "invalid-timeout",
			opts: []ClientOption{WithTimeout(-time.Second)},
		},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(tc.opts...)
			if tc.ok != (err == nil) {
				t.Fatalf("ok=%v, expected.ok=%v, err=%v", err == nil, tc.ok, err)
			}
			if tc.ok && client == nil {
				t.Errorf("expected non nil client")
			}
		})
	}
}

func TestClient_Exchange(t *testing.T) {
	assertion := AppJWT{
		Token:    "header.payload.signature",
		ClientID: "Iv23limjQewW9Ze9C50p",
	}

	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/app/installations/42/access_tokens" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer header.payload.signature" {
				t.Errorf("unexpected authorization header: %s", r.Header.Get("Authorization"))
			}
			if r.Header.Get("Accept") != "application/vnd.github.v3+json" {
				t.Errorf("unexpected accept header: %s", r.Header.Get("Accept"))
			}
			if r.Header.Get("X-GitHub-Api-Version") == "" {
				t.Errorf("missing api version header")
			}
			w.WriteHeader(http.StatusCreated)
			//nolint:errcheck
			w.Write([]byte(`{
				"token": "ghs_example",
				"expires_at": "2024-01-01T00:10:00Z",
				"permissions": {"issues": "write"}
			}`))
		}))
		defer server.Close()

		client, err := NewClient(WithEndpoint(server.URL))
		if err != nil {
			t.Fatalf("failed to build client: %v", err)
		}

		token, err := client.Exchange(context.Background(), assertion, 42)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token.Token != "ghs_example" {
			t.Errorf("expected ghs_example, got %s", token.Token)
		}
		if token.InstallationID != 42 {
			t.Errorf("expected installation 42, got %d", token.InstallationID)
		}
		expect := time.Date(2024, time.January, 1, 0, 10, 0, 0, time.UTC)
		if !token.Exp.Equal(expect) {
			t.Errorf("expected exp=%s, got %s", expect, token.Exp)
		}
		if token.Permissions["issues"] != "write" {
			t.Errorf("expected issues:write permission, got %v", token.Permissions)
		}
	})

	t.Run("non-success-status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck
			w.Write([]byte(`{"message": "A JSON web token could not be decoded"}`))
		}))
		defer server.Close()

		client, err := NewClient(WithEndpoint(server.URL))
		if err != nil {
			t.Fatalf("failed to build client: %v", err)
		}

		_, err = client.Exchange(context.Background(), assertion, 42)
		if !errors.Is(err, ErrTokenExchange) {
			t.Fatalf("expected ErrTokenExchange, got %v", err)
		}

		var exchangeErr *ExchangeError
		if !errors.As(err, &exchangeErr) {
			t.Fatalf("expected *ExchangeError, got %T", err)
		}
		if exchangeErr.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", exchangeErr.StatusCode)
		}
		if exchangeErr.InstallationID != 42 {
			t.Errorf("expected installation 42, got %d", exchangeErr.InstallationID)
		}
		if exchangeErr.Message != "A JSON web token could not be decoded" {
			t.Errorf("unexpected message: %s", exchangeErr.Message)
		}
	})

	t.Run("malformed-expiry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			//nolint:errcheck
			w.Write([]byte(`{"token": "ghs_example", "expires_at": "bogus"}`))
		}))
		defer server.Close()

		client, err := NewClient(WithEndpoint(server.URL))
		if err != nil {
			t.Fatalf("failed to build client: %v", err)
		}

		_, err = client.Exchange(context.Background(), assertion, 42)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("missing-token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			//nolint:errcheck
			w.Write([]byte(`{"expires_at": "2024-01-01T00:10:00Z"}`))
		}))
		defer server.Close()

		client, err := NewClient(WithEndpoint(server.URL))
		if err != nil {
			t.Fatalf("failed to build client: %v", err)
		}

		_, err = client.Exchange(context.Background(), assertion, 42)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("missing-expiry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			//nolint:errcheck
			w.Write([]byte(`{"token": "ghs_example"}`))
		}))
		defer server.Close()

		client, err := NewClient(WithEndpoint(server.URL))
		if err != nil {
			t.Fatalf("failed to build client: %v", err)
		}

		_, err = client.Exchange(context.Background(), assertion, 42)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("invalid-installation-id", func(t *testing.T) {
		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to build client: %v", err)
		}

		_, err = client.Exchange(context.Background(), assertion, 0)
		if err == nil {
			t.Fatalf("expected error for installation id 0")
		}
	})
}
