package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/makeasinger/lyricstudio/internal/config"
)

// ChatClient talks to a workspace chat API (AnythingLLM style):
// POST {base}/workspace/{slug}/chat
type ChatClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	workspace  string
	sessionID  string
}

// WorkspaceChatRequest is the body of a workspace chat call
type WorkspaceChatRequest struct {
	Message     string   `json:"message"`
	Mode        string   `json:"mode"`
	SessionID   string   `json:"sessionId,omitempty"`
	Attachments []string `json:"attachments"`
}

// WorkspaceChatResponse is the subset of the reply we read
type WorkspaceChatResponse struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	TextResponse *string `json:"textResponse"`
	Error        *string `json:"error"`
	Close        bool    `json:"close"`
}

// NewChatClient creates a new workspace chat client
func NewChatClient(cfg *config.ChatConfig) *ChatClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &ChatClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		workspace: cfg.Workspace,
		sessionID: cfg.SessionID,
	}
}

// Chat sends one message and returns the text reply. A reply without
// textResponse yields ok=false.
func (c *ChatClient) Chat(ctx context.Context, message string) (text string, ok bool, err error) {
	reqBody := WorkspaceChatRequest{
		Message:     message,
		Mode:        "chat",
		SessionID:   c.sessionID,
		Attachments: []string{},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/workspace/%s/chat", c.baseURL, c.workspace)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("chat API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp WorkspaceChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if chatResp.Error != nil && *chatResp.Error != "" {
		return "", false, fmt.Errorf("chat API error: %s", *chatResp.Error)
	}

	if chatResp.TextResponse == nil {
		return "", false, nil
	}

	return *chatResp.TextResponse, true, nil
}

// IsConfigured returns true if the client has valid configuration
func (c *ChatClient) IsConfigured() bool {
	return c.apiKey != "" && c.baseURL != "" && c.workspace != ""
}
