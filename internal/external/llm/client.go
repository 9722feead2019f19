// Package llm is a chat-completions client for OpenAI-compatible endpoints.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wonny/sensai/pkg/config"
	"github.com/wonny/sensai/pkg/httputil"
	"github.com/wonny/sensai/pkg/logger"
	"github.com/wonny/sensai/pkg/metrics"
)

const serviceName = "llm"

// ErrEmptyCompletion is returned when the endpoint answers without any choice
var ErrEmptyCompletion = errors.New("llm: empty completion")

// Client sends chat-completion requests through a circuit breaker
// ⭐ SSOT: LLM 호출은 이 클라이언트에서만
type Client struct {
	httpClient  *httputil.Client
	baseURL     string
	model       string
	temperature float64
	breaker     *gobreaker.CircuitBreaker
	logger      *logger.Logger
	recorder    *metrics.Recorder
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewClient creates a client. httpClient should carry the Authorization header.
func NewClient(httpClient *httputil.Client, cfg config.LLMConfig, log *logger.Logger) *Client {
	l := log.WithField("module", "llm")

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm-chat",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.WithFields(map[string]interface{}{
				"circuit":    name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("LLM circuit breaker state changed")
		},
	})

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		breaker:     cb,
		logger:      l,
	}
}

// WithMetrics counts calls by outcome
func (c *Client) WithMetrics(rec *metrics.Recorder) *Client {
	c.recorder = rec
	return c
}

// isSuccessful keeps client-side rejections (bad request, bad key) from opening the circuit
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 &&
			statusErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// Complete sends one system + user exchange and returns the first choice's text
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	req := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
	}
	if system != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: system})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: prompt})

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.send(ctx, req)
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		c.recorder.ExternalCall(serviceName, outcome)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	c.recorder.ExternalCall(serviceName, "ok")

	resp := out.(*chatResponse)
	c.logger.WithFields(map[string]interface{}{
		"model":             resp.Model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	}).Debug("Chat completion received")

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) send(ctx context.Context, req chatRequest) (*chatResponse, error) {
	httpResp, err := c.httpClient.PostJSON(ctx, c.baseURL+"/chat/completions", req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var resp chatResponse
	if err := httputil.DecodeJSON(httpResp, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}
	return &resp, nil
}

// Healthy reports whether the circuit is closed
func (c *Client) Healthy() bool {
	return c.breaker.State() == gobreaker.StateClosed
}
