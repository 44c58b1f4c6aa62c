package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/logger"
)

const (
	DefaultBaseURL   = "https://openrouter.ai/api/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "VoiceLearningRobot/1.0"

	completionsPath = "/chat/completions"

	// How much of a raw upstream body is kept in errors and logs.
	bodySnippetLimit = 400
)

// Client is a minimal OpenRouter chat-completions client.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	UserAgent  string
	Referer    string
	Title      string
}

// NewClient creates a client for the given key and endpoint. An empty
// baseURL falls back to the public OpenRouter endpoint.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  DefaultUserAgent,
	}
}

// CreateChatCompletion sends one blocking chat-completion request. Failures
// come back typed: *StatusError for non-2xx answers,
// *UnexpectedResponseError for undecodable 2xx bodies, and wrapped transport
// errors otherwise (use IsTimeout to tell deadlines from connection faults).
func (c *Client) CreateChatCompletion(ctx context.Context, req Request) (*Response, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	logger.Debug("Sending OpenRouter request",
		"url", c.BaseURL+completionsPath,
		"api_key", maskKey(c.APIKey),
		"model", req.Model,
		"messages_count", len(req.Messages),
		"request_size", len(jsonData))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+completionsPath, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Referer != "" {
		// OpenRouter requires HTTP-Referer for free-tier models.
		httpReq.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.Title != "" {
		// Shown in the OpenRouter usage dashboard under "Applications".
		httpReq.Header.Set("X-Title", c.Title)
	}
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug("Received OpenRouter response",
		"status_code", resp.StatusCode,
		"response_size", len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: snippet(body)}
		var apiErr APIError
		if json.Unmarshal(body, &apiErr) == nil {
			statusErr.UpstreamMessage = apiErr.Error.Message
		}
		return nil, statusErr
	}

	var apiResp Response
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &UnexpectedResponseError{Err: err, Body: snippet(body)}
	}

	return &apiResp, nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func snippet(body []byte) string {
	if len(body) > bodySnippetLimit {
		return string(body[:bodySnippetLimit]) + "..."
	}
	return string(body)
}
