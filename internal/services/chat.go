package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/config"
	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/logger"
	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/openrouter"
)

// ChatService relays a single transcript to the OpenRouter completion API
// and extracts the reply. It holds no per-request state.
type ChatService struct {
	client      *openrouter.Client
	model       string
	temperature float64
	maxTokens   int
}

func NewChatService(cfg *config.Config) *ChatService {
	client := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.RequestTimeout)
	client.Referer = cfg.HTTPReferer
	client.Title = cfg.AppTitle

	return &ChatService{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Reply makes exactly one completion call for the given message and returns
// the assistant's text, trimmed. Every failure comes back as one of the
// typed errors in this package; no retries are made at any point.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	req := newChatRequest(s.model, s.temperature, s.maxTokens, message)

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", s.classifyCallError(err)
	}

	// Only the first choice is used; a single completion is requested.
	if len(resp.Choices) == 0 {
		logger.Error("OpenRouter response has no choices", "response_id", resp.ID)
		return "", &BadResponseError{Message: "Received an unexpected response from the AI service."}
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		logger.Warn("OpenRouter returned an empty reply", "message_preview", preview(message))
		return "", &EmptyReplyError{Message: "The AI returned an empty response. Please try rephrasing."}
	}

	return reply, nil
}

// classifyCallError translates client-level failures into the relay's
// typed taxonomy. Each branch is terminal.
func (s *ChatService) classifyCallError(err error) error {
	var statusErr *openrouter.StatusError
	var respErr *openrouter.UnexpectedResponseError

	switch {
	case errors.As(err, &statusErr):
		logger.Error("OpenRouter returned an error status",
			"status_code", statusErr.StatusCode,
			"upstream_message", statusErr.UpstreamMessage,
			"body", statusErr.Body)

		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return &RateLimitError{Message: "API rate limit reached. Please wait a moment and try again."}
		case statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden:
			return &UnauthorizedError{Message: "API key is invalid or unauthorised."}
		default:
			return &UpstreamStatusError{
				StatusCode: statusErr.StatusCode,
				Message:    fmt.Sprintf("AI service returned an error (HTTP %d).", statusErr.StatusCode),
			}
		}

	case errors.As(err, &respErr):
		logger.Error("Unexpected OpenRouter response structure",
			"error", respErr.Err,
			"body", respErr.Body)
		return &BadResponseError{Message: "Received an unexpected response from the AI service."}

	case openrouter.IsTimeout(err):
		logger.Warn("OpenRouter request timed out",
			"timeout", s.client.HTTPClient.Timeout)
		return &UpstreamTimeoutError{Message: "The AI service took too long to respond. Please try again."}

	default:
		logger.Error("Connection error reaching OpenRouter", "error", err)
		return &UpstreamUnreachableError{Message: "Could not reach the AI service. Check your internet connection."}
	}
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) > 80 {
		return string(runes[:80]) + "..."
	}
	return s
}
