// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package summarizer turns raw CI logs into a short human readable
// failure summary using the Gemini generateContent API.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aaryanshroff/ops-medic/internal/githubapi"
)

// Summarizer produces a summary for a blob of CI logs.
type Summarizer interface {
	Summarize(ctx context.Context, logs string) (string, error)
}

var _ Summarizer = (*Gemini)(nil)

// defaultTimeout bounds a single generateContent round trip. Generation
// is slow compared to the GitHub calls, allow for it.
const defaultTimeout = 60 * time.Second

// Gemini is a [Summarizer] backed by the generative language REST API.
type Gemini struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// Option configures a [Gemini].
type Option func(*Gemini)

// WithHTTPClient overrides the underlying [http.Client].
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gemini) {
		if client != nil {
			g.client = client
		}
	}
}

// NewGemini returns a [Gemini] summarizer. The endpoint is the API base
// URL, e.g. "https://generativelanguage.googleapis.com/v1beta".
func NewGemini(apiKey, model, endpoint string, opts ...Option) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("summarizer: GEMINI_API_KEY is not set")
	}

	if model == "" {
		return nil, fmt.Errorf("summarizer: model is not set")
	}

	if endpoint == "" {
		return nil, fmt.Errorf("summarizer: endpoint is not set")
	}

	g := &Gemini{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// generateContent request and response envelopes, just enough for
// text-only prompts.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Summarize sends the logs to the model and returns the first
// candidate's text.
func (g *Gemini) Summarize(ctx context.Context, logs string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: logs}}}},
	})
	if err != nil {
		return "", fmt.Errorf("summarizer: failed to marshal request: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.endpoint, g.model, url.QueryEscape(g.apiKey))
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("summarizer: failed to build request: %w", err)
	}
	r.Header.Set(githubapi.ContentTypeHeader, githubapi.ContentTypeJSON)

	resp, err := g.client.Do(r)
	if err != nil {
		return "", fmt.Errorf("summarizer: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("summarizer: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer: generateContent failed: %s", resp.Status)
	}

	var genResp generateResponse
	if err := json.Unmarshal(data, &genResp); err != nil {
		return "", fmt.Errorf("summarizer: failed to unmarshal response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("summarizer: response has no candidates")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
