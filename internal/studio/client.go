package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/makeasinger/lyricstudio/internal/logging"
	"github.com/makeasinger/lyricstudio/internal/model"
)

// GenerateLyricsPath is the fixed endpoint the client posts to.
const GenerateLyricsPath = "/generate-lyrics"

// FailureMessage is the only text a user sees when generation fails.
const FailureMessage = "Failed to generate lyrics. Please try again."

// Generator produces a Result for a request. *Client implements it.
type Generator interface {
	Generate(ctx context.Context, req model.GenerationRequest) Result
}

// Client performs one request/response exchange against the lyrics endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        logging.Logger
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default client. The default has no timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends "Authorization: Bearer <token>" on every call.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

func WithLogger(l logging.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		log:        logging.NewLogger(context.Background()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate posts req and maps the outcome to Success or Failure. Every kind
// of fault collapses into Failure(FailureMessage); the cause is only logged.
func (c *Client) Generate(ctx context.Context, req model.GenerationRequest) Result {
	lyrics, err := c.generate(ctx, req)
	if err != nil {
		c.log.WithField("endpoint", c.baseURL+GenerateLyricsPath).Errorf("lyrics generation failed: %v", err)
		return Failure(FailureMessage)
	}
	return Success(lyrics)
}

func (c *Client) generate(ctx context.Context, req model.GenerationRequest) (string, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GenerateLyricsPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("lyrics endpoint error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var out struct {
		Lyrics *string `json:"lyrics"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if out.Lyrics == nil {
		return "", fmt.Errorf("no lyrics in response")
	}

	return *out.Lyrics, nil
}
