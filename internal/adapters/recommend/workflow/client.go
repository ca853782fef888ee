// Package workflow calls the hosted paper recommendation workflow over its
// chat-completions style HTTP endpoint.
package workflow

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/ports"
	"github.com/rs/zerolog"
)

const (
	maxResponseBytes = 4 << 20
	maxSnippetBytes  = 200
	botID            = "paper_recommendation"
	caller           = "workflow"
	inputParameter   = "AGENT_USER_INPUT"
)

type Config struct {
	URL           string
	Key           string
	Secret        string
	FlowID        string
	UID           string
	Timeout       time.Duration
	RatePerSecond float64
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *RateLimiter
	logger     zerolog.Logger
}

var _ ports.Recommender = (*Client)(nil)

func NewClient(cfg Config, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    NewRateLimiter(cfg.RatePerSecond, 1),
		logger:     logger.With().Str("component", "workflow-client").Logger(),
	}
}

type requestBody struct {
	FlowID     string            `json:"flow_id"`
	UID        string            `json:"uid"`
	Parameters map[string]string `json:"parameters"`
	Ext        requestExt        `json:"ext"`
	Stream     bool              `json:"stream"`
}

type requestExt struct {
	BotID  string `json:"bot_id"`
	Caller string `json:"caller"`
}

// Recommend sends one request for topic and returns the response body. A
// body delivered as server-sent events is folded into a single chat
// envelope. Failures are never retried.
func (c *Client) Recommend(ctx context.Context, topic string) ([]byte, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, domain.ErrEmptyTopic
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(requestBody{
		FlowID:     c.cfg.FlowID,
		UID:        c.cfg.UID,
		Parameters: map[string]string{inputParameter: topic},
		Ext:        requestExt{BotID: botID, Caller: caller},
		Stream:     false,
	})
	if err != nil {
		return nil, fmt.Errorf("encode recommendation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build recommendation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s:%s", c.cfg.Key, c.cfg.Secret))

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send recommendation request: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read recommendation response: %w", domain.ErrTransport, err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("%w: recommendation response exceeds %d bytes", domain.ErrTransport, maxResponseBytes)
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(started)).
		Msg("recommendation response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if apiErr := envelopeError(body, resp.StatusCode); apiErr != nil {
			return nil, apiErr
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: snippet(body)}
	}

	if isEventStream(resp.Header.Get("Content-Type"), body) {
		folded, ok, err := c.foldEventStream(body, resp.StatusCode)
		if err != nil {
			return nil, err
		}
		if ok {
			return folded, nil
		}
	}

	if apiErr := envelopeError(body, resp.StatusCode); apiErr != nil {
		return nil, apiErr
	}

	return body, nil
}

type statusEnvelope struct {
	Code    *json.Number `json:"code"`
	Message string       `json:"message"`
	Choices []struct {
		Delta   chunkContent `json:"delta"`
		Message chunkContent `json:"message"`
	} `json:"choices"`
}

type chunkContent struct {
	Content string `json:"content"`
}

// envelopeError reports a JSON object whose numeric code is non-zero.
func envelopeError(body []byte, status int) *APIError {
	var envelope statusEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Code == nil {
		return nil
	}

	code, err := envelope.Code.Int64()
	if err != nil || code == 0 {
		return nil
	}

	message := envelope.Message
	if message == "" {
		message = "unknown error"
	}
	return &APIError{StatusCode: status, Code: code, Message: message}
}

func isEventStream(contentType string, body []byte) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "text/event-stream") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("data:"))
}

// foldEventStream joins the content of every data: chunk into one chat
// envelope with a message content field. It reports false when no chunk
// carried content.
func (c *Client) foldEventStream(body []byte, status int) ([]byte, bool, error) {
	var content strings.Builder
	chunks := 0

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), maxResponseBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" || data == "[DONE]" {
			continue
		}

		if apiErr := envelopeError([]byte(data), status); apiErr != nil {
			return nil, false, apiErr
		}

		var chunk statusEnvelope
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			c.logger.Debug().Err(err).Msg("skipping undecodable event chunk")
			continue
		}
		chunks++
		for _, choice := range chunk.Choices {
			if choice.Delta.Content != "" {
				content.WriteString(choice.Delta.Content)
			} else {
				content.WriteString(choice.Message.Content)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: read event stream: %w", domain.ErrTransport, err)
	}

	if content.Len() == 0 {
		c.logger.Debug().Int("chunks", chunks).Msg("event stream carried no content")
		return nil, false, nil
	}

	folded, err := json.Marshal(map[string]any{
		"code": 0,
		"choices": []any{
			map[string]any{"message": map[string]string{"content": content.String()}},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("encode folded event stream: %w", err)
	}

	return folded, true, nil
}

func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxSnippetBytes {
		cut := maxSnippetBytes
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	if text == "" {
		return "empty response"
	}
	return text
}

// AsAPIError returns the APIError carried by err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
