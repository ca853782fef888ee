package workflow

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		URL:     server.URL + "/workflow/v1/chat/completions",
		Key:     "key",
		Secret:  "secret",
		FlowID:  "flow-1",
		UID:     "123",
		Timeout: 5 * time.Second,
	}, server.Client(), zerolog.Nop())
}

func TestRecommendSendsWorkflowRequest(t *testing.T) {
	t.Parallel()

	requests := make(chan map[string]any, 1)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/workflow/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key:secret", r.Header.Get("Authorization"))
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var captured map[string]any
		require.NoError(t, json.Unmarshal(body, &captured))
		requests <- captured

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"papers":[]}`))
	})

	body, err := client.Recommend(context.Background(), "  graph neural networks ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":0,"papers":[]}`, string(body))

	captured := <-requests
	assert.Equal(t, "flow-1", captured["flow_id"])
	assert.Equal(t, "123", captured["uid"])
	assert.Equal(t, false, captured["stream"])
	assert.Equal(t, map[string]any{"AGENT_USER_INPUT": "graph neural networks"}, captured["parameters"])
	assert.Equal(t, map[string]any{"bot_id": "paper_recommendation", "caller": "workflow"}, captured["ext"])
}

func TestRecommendEmptyTopic(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent")
	})

	_, err := client.Recommend(context.Background(), "   ")
	require.ErrorIs(t, err, domain.ErrEmptyTopic)
}

func TestRecommendEnvelopeErrorCode(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":10013,"message":"flow not found"}`))
	})

	_, err := client.Recommend(context.Background(), "topic")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrTransport)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, int64(10013), apiErr.Code)
	assert.Equal(t, "flow not found", apiErr.Message)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
}

func TestRecommendHTTPErrorStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := client.Recommend(context.Background(), "topic")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "upstream exploded")
}

func TestRecommendNetworkFailureIsTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(Config{URL: url, Timeout: time.Second}, nil, zerolog.Nop())
	_, err := client.Recommend(context.Background(), "topic")

	require.ErrorIs(t, err, domain.ErrTransport)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestRecommendOversizedBodyIsTransportError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"papers":[],"pad":"`+strings.Repeat("x", maxResponseBytes)+`"}`)
	})

	_, err := client.Recommend(context.Background(), "topic")

	require.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestSnippetCutsOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// three-byte runes: byte 200 falls inside the 67th rune
	body := []byte(strings.Repeat("错", 100))

	got := snippet(body)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("错", 66), got)
	assert.Equal(t, "empty response", snippet([]byte("  ")))
}

func TestRecommendDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Recommend(context.Background(), "topic")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRecommendFoldsEventStream(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"code\":0,\"choices\":[{\"delta\":{\"content\":\"{\\\"papers\\\":\"}}]}\n\n" +
			"data: not-json\n\n" +
			"data: {\"code\":0,\"choices\":[{\"delta\":{\"content\":\"[]}\"}}]}\n\n" +
			"data: [DONE]\n\n"))
	})

	body, err := client.Recommend(context.Background(), "topic")
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":0,"choices":[{"message":{"content":"{\"papers\":[]}"}}]}`, string(body))
}

func TestRecommendEventStreamErrorChunk(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data: {\"code\":10404,\"message\":\"quota exceeded\"}\n\n"))
	})

	_, err := client.Recommend(context.Background(), "topic")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, int64(10404), apiErr.Code)
}

func TestRecommendHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Recommend(ctx, "topic")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	limited := NewRateLimiter(0.001, 1)
	assert.True(t, limited.Allow())
	assert.False(t, limited.Allow())

	unlimited := NewRateLimiter(0, 0)
	for i := 0; i < 10; i++ {
		assert.True(t, unlimited.Allow())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, limited.Wait(ctx))
}
