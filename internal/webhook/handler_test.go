// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package webhook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryanshroff/ops-medic/internal/githubapi"
	"github.com/aaryanshroff/ops-medic/internal/metrics"
)

type fakeRunHandler struct {
	handled bool
	err     error

	calls int
	event *github.WorkflowRunEvent
}

func (f *fakeRunHandler) HandleWorkflowRun(_ context.Context, event *github.WorkflowRunEvent) (bool, error) {
	f.calls++
	f.event = event
	if f.err != nil {
		return false, f.err
	}
	return f.handled, nil
}

func setupTestServer(t *testing.T, runs *fakeRunHandler) http.Handler {
	t.Helper()

	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(runs, metrics.New(), logger)
	return NewServer("127.0.0.1", 3000, handler, metrics.New(), logger).Handler()
}

func deliver(t *testing.T, srv http.Handler, event, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(githubapi.ContentTypeHeader, contentType)
	req.Header.Set(githubapi.EventHeader, event)
	req.Header.Set(githubapi.DeliveryHeader, "d1b3c1a0-0000-0000-0000-000000000000")
	srv.ServeHTTP(w, req)
	return w
}

const workflowRunPayload = `{
	"action": "completed",
	"workflow_run": {
		"id": 101,
		"conclusion": "failure",
		"logs_url": "https://api.github.com/repos/octocat/hello/actions/runs/101/logs",
		"pull_requests": [{"number": 42}]
	},
	"repository": {
		"name": "hello",
		"full_name": "octocat/hello",
		"owner": {"login": "octocat"}
	},
	"installation": {"id": 99}
}`

func TestReceive_HandledRun(t *testing.T) {
	runs := &fakeRunHandler{handled: true}
	srv := setupTestServer(t, runs)

	w := deliver(t, srv, "workflow_run", "application/json", workflowRunPayload)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, runs.calls)
	assert.Equal(t, "completed", runs.event.GetAction())
	assert.Equal(t, "failure", runs.event.GetWorkflowRun().GetConclusion())
	assert.Equal(t, int64(99), runs.event.GetInstallation().GetID())
}

func TestReceive_IgnoredRun(t *testing.T) {
	runs := &fakeRunHandler{handled: false}
	srv := setupTestServer(t, runs)

	w := deliver(t, srv, "workflow_run", "application/json", workflowRunPayload)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, 1, runs.calls)
}

func TestReceive_OtherEvent(t *testing.T) {
	runs := &fakeRunHandler{}
	srv := setupTestServer(t, runs)

	w := deliver(t, srv, "push", "application/json", `{"ref": "refs/heads/main"}`)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, 0, runs.calls)
}

func TestReceive_NonJSONContentType(t *testing.T) {
	runs := &fakeRunHandler{}
	srv := setupTestServer(t, runs)

	w := deliver(t, srv, "workflow_run", "application/x-www-form-urlencoded", "payload=x")

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, 0, runs.calls)
}

func TestReceive_MalformedJSON(t *testing.T) {
	runs := &fakeRunHandler{}
	srv := setupTestServer(t, runs)

	w := deliver(t, srv, "workflow_run", "application/json", `{"action": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, runs.calls)
}

func TestReceive_ProcessingError(t *testing.T) {
	runs := &fakeRunHandler{err: fmt.Errorf("summarization failed")}
	srv := setupTestServer(t, runs)

	w := deliver(t, srv, "workflow_run", "application/json", workflowRunPayload)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, runs.calls)
}

func TestHealthz(t *testing.T) {
	srv := setupTestServer(t, &fakeRunHandler{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestMetricsRoute(t *testing.T) {
	srv := setupTestServer(t, &fakeRunHandler{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
