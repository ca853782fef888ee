package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bnema/paperswipe/internal/adapters/recommend/workflow"
	"github.com/bnema/paperswipe/internal/application"
	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/observability"
	"github.com/bnema/paperswipe/internal/parser"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	recommendFn func(ctx context.Context, cmd application.SearchCommand) (application.Search, error)
}

func (f *fakeSearcher) Recommend(ctx context.Context, cmd application.SearchCommand) (application.Search, error) {
	return f.recommendFn(ctx, cmd)
}

type fakeSaver struct {
	saveFn func(ctx context.Context, cmd application.SaveSelectionCommand) (application.SaveSelectionResult, error)
}

func (f *fakeSaver) SaveSelection(ctx context.Context, cmd application.SaveSelectionCommand) (application.SaveSelectionResult, error) {
	return f.saveFn(ctx, cmd)
}

func newTestServer(searcher Searcher, saver SelectionSaver) *Server {
	return NewServer(DefaultConfig("127.0.0.1:0"), searcher, saver, observability.NewMetrics(), zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(target))
}

func TestGetPapersSuccess(t *testing.T) {
	var gotTopic string
	s := newTestServer(&fakeSearcher{recommendFn: func(_ context.Context, cmd application.SearchCommand) (application.Search, error) {
		gotTopic = cmd.Topic
		return application.Search{
			ID:    "search-1",
			Topic: cmd.Topic,
			Result: parser.Result{Papers: []domain.Paper{
				{Title: "t", Authors: "a", Abstract: "b", Year: domain.IntPtr(2024)},
			}},
		}, nil
	}}, nil)

	rr := doRequest(t, s, http.MethodPost, "/api/get-papers", `{"research_topic":"graph learning"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "graph learning", gotTopic)

	var resp getPapersResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "search-1", resp.SearchID)
	require.Len(t, resp.Papers, 1)
	assert.Equal(t, "t", resp.Papers[0].Title)
	assert.False(t, resp.Fallback)
}

func TestGetPapersValidation(t *testing.T) {
	s := newTestServer(&fakeSearcher{recommendFn: func(context.Context, application.SearchCommand) (application.Search, error) {
		t.Fatal("searcher must not be called")
		return application.Search{}, nil
	}}, nil)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "missing topic", body: `{}`, message: "research topic is required"},
		{name: "too long", body: fmt.Sprintf(`{"research_topic":%q}`, strings.Repeat("x", 501)), message: "research topic is too long"},
		{name: "malformed", body: `{"research_topic":`, message: "decode request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, s, http.MethodPost, "/api/get-papers", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var resp errorResponse
			decodeBody(t, rr, &resp)
			assert.Contains(t, resp.Error, tt.message)
		})
	}
}

func TestGetPapersErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int64
	}{
		{name: "blank topic", err: domain.ErrEmptyTopic, status: http.StatusBadRequest},
		{name: "api code", err: fmt.Errorf("recommend papers: %w", &workflow.APIError{StatusCode: 200, Code: 10013, Message: "flow not found"}), status: http.StatusBadRequest, code: 10013},
		{name: "http status only", err: &workflow.APIError{StatusCode: 502, Message: "bad gateway"}, status: http.StatusInternalServerError},
		{name: "transport", err: fmt.Errorf("%w: dial tcp: refused", domain.ErrTransport), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeSearcher{recommendFn: func(context.Context, application.SearchCommand) (application.Search, error) {
				return application.Search{}, tt.err
			}}, nil)

			rr := doRequest(t, s, http.MethodPost, "/api/get-papers", `{"research_topic":"  "}`)
			require.Equal(t, tt.status, rr.Code)

			var resp errorResponse
			decodeBody(t, rr, &resp)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestSaveSelection(t *testing.T) {
	var got application.SaveSelectionCommand
	s := newTestServer(nil, &fakeSaver{saveFn: func(_ context.Context, cmd application.SaveSelectionCommand) (application.SaveSelectionResult, error) {
		got = cmd
		return application.SaveSelectionResult{Received: len(cmd.Papers), Saved: 1, Duplicates: 1}, nil
	}})

	rr := doRequest(t, s, http.MethodPost, "/api/save-selection",
		`{"selected_papers":[{"title":"t","authors":"a","abstract":"b","tags":["x"]},{"title":"only title"}]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, got.Papers, 2)
	assert.Equal(t, []string{"x"}, got.Papers[0].Tags)

	var resp saveSelectionResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, saveSelectionResponse{Success: true, Message: "saved 1 papers", Count: 1, Received: 2, Duplicates: 1}, resp)
}

func TestSaveSelectionStoreFailure(t *testing.T) {
	s := newTestServer(nil, &fakeSaver{saveFn: func(context.Context, application.SaveSelectionCommand) (application.SaveSelectionResult, error) {
		return application.SaveSelectionResult{}, errors.New("disk full")
	}})

	rr := doRequest(t, s, http.MethodPost, "/api/save-selection", `{"selected_papers":[]}`)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp errorResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "disk full", resp.Error)
}

func TestIndexAndMetrics(t *testing.T) {
	s := newTestServer(nil, nil)

	rr := doRequest(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "POST /api/get-papers")

	s.metrics.PapersSaved.Add(3)
	rr = doRequest(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "paperswipe_papers_saved_total 3")
}

func TestServeStopsOnContextCancel(t *testing.T) {
	s := newTestServer(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()
	cancel()

	require.NoError(t, <-done)
}
