// Package ai wraps the hosted completion endpoint behind a small
// client with an explicit success / empty / error outcome.
package ai

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Config carries what the client needs to reach the completion endpoint.
type Config struct {
	// Endpoint is the OpenAI-compatible base URL of the project
	// endpoint, e.g. "https://my-project.services.ai.example.com/v1".
	Endpoint string
	// Deployment is the model deployment name sent with every request.
	Deployment string
	// APIKey authenticates requests. Establishing the credential is the
	// caller's concern; the client only carries it.
	APIKey string
	// Timeout bounds each request. Zero means the 60s default.
	Timeout time.Duration
}

// Client talks to one completion endpoint with one deployment. Build it
// once per process and reuse it for every request.
type Client struct {
	oai        *openai.Client
	deployment string
}

// New constructs a client from config.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		oc.BaseURL = strings.TrimRight(cfg.Endpoint, "/")
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		oai:        openai.NewClientWithConfig(oc),
		deployment: cfg.Deployment,
	}
}

var (
	acquireOnce sync.Once
	acquired    *Client
)

// Acquire returns the process-wide client, constructing it on first
// call and reusing it afterwards. Later calls ignore cfg.
func Acquire(cfg Config) *Client {
	acquireOnce.Do(func() {
		acquired = New(cfg)
	})
	return acquired
}

// Answer is the outcome of a successful request. Empty marks a request
// that succeeded but returned no usable text; it is not an error.
type Answer struct {
	Text  string
	Empty bool
}

// Complete sends one prompt to the endpoint and extracts the answer
// text. Any transport, auth, or remote failure comes back as a
// *RequestError; the caller is expected to report it and carry on, not
// retry.
func (c *Client) Complete(ctx context.Context, prompt string) (Answer, error) {
	resp, err := c.oai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return Answer{}, &RequestError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return Answer{Empty: true}, nil
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Answer{Empty: true}, nil
	}
	return Answer{Text: text}, nil
}
