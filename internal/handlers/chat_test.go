package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/models"
	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/services"
)

type stubReplier struct {
	reply       string
	err         error
	calls       int
	lastMessage string
}

func (s *stubReplier) Reply(ctx context.Context, message string) (string, error) {
	s.calls++
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Chat(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	return resp.Error
}

// ─── Chat Handler Tests ───

func TestChatHandler_Success(t *testing.T) {
	stub := &stubReplier{reply: "The area of a circle is πr²."}
	h := NewChatHandler(stub, true, 2000)

	rr := postChat(t, h, `{"message":"area of a circle"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Reply != "The area of a circle is πr²." {
		t.Errorf("Expected relayed reply, got %q", resp.Reply)
	}
	if stub.calls != 1 {
		t.Errorf("Expected exactly 1 upstream call, got %d", stub.calls)
	}
	if stub.lastMessage != "area of a circle" {
		t.Errorf("Expected trimmed message relayed, got %q", stub.lastMessage)
	}
}

func TestChatHandler_TrimsBeforeRelay(t *testing.T) {
	stub := &stubReplier{reply: "Hi."}
	h := NewChatHandler(stub, true, 2000)

	rr := postChat(t, h, `{"message":"  hello there \n"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if stub.lastMessage != "hello there" {
		t.Errorf("Expected whitespace stripped, got %q", stub.lastMessage)
	}
}

func TestChatHandler_MissingAPIKey(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"valid body", `{"message":"hello"}`},
		{"invalid body", `not json at all`},
		{"empty body", ``},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubReplier{reply: "should not be reached"}
			h := NewChatHandler(stub, false, 2000)

			rr := postChat(t, h, tc.body)

			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
			}
			if msg := decodeError(t, rr); msg != "Server configuration error: API key is missing." {
				t.Errorf("Unexpected error message %q", msg)
			}
			if stub.calls != 0 {
				t.Errorf("Upstream must not be called without an API key, got %d calls", stub.calls)
			}
		})
	}
}

func TestChatHandler_InvalidBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"not json", `not json at all`, "Request body must be JSON."},
		{"empty body", ``, "Request body must be JSON."},
		{"json array", `[]`, "Request body must be JSON."},
		{"json number", `5`, "Request body must be JSON."},
		{"json string", `"hello"`, "Request body must be JSON."},
		{"message is number", `{"message":5}`, "The 'message' field must be a string."},
		{"message is array", `{"message":["a"]}`, "The 'message' field must be a string."},
		{"message is object", `{"message":{"text":"hi"}}`, "The 'message' field must be a string."},
		{"message is null", `{"message":null}`, "Message cannot be empty."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubReplier{}
			h := NewChatHandler(stub, true, 2000)

			rr := postChat(t, h, tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
			if msg := decodeError(t, rr); msg != tc.wantMsg {
				t.Errorf("Expected %q, got %q", tc.wantMsg, msg)
			}
			if stub.calls != 0 {
				t.Errorf("Upstream must not be called for invalid input, got %d calls", stub.calls)
			}
		})
	}
}

func TestChatHandler_EmptyMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"empty string", `{"message":""}`},
		{"spaces only", `{"message":"   "}`},
		{"mixed whitespace", `{"message":" \n\t "}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubReplier{}
			h := NewChatHandler(stub, true, 2000)

			rr := postChat(t, h, tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
			if msg := decodeError(t, rr); msg != "Message cannot be empty." {
				t.Errorf("Unexpected error message %q", msg)
			}
			if stub.calls != 0 {
				t.Errorf("Upstream must not be called for empty input, got %d calls", stub.calls)
			}
		})
	}
}

func TestChatHandler_MessageTooLong(t *testing.T) {
	stub := &stubReplier{}
	h := NewChatHandler(stub, true, 2000)

	long := strings.Repeat("a", 2001)
	body, _ := json.Marshal(models.ChatRequest{Message: long})

	rr := postChat(t, h, string(body))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if msg := decodeError(t, rr); msg != "Message exceeds the 2000-character limit." {
		t.Errorf("Unexpected error message %q", msg)
	}
	if stub.calls != 0 {
		t.Errorf("Upstream must not be called for over-length input, got %d calls", stub.calls)
	}
}

func TestChatHandler_LengthBoundary(t *testing.T) {
	// Exactly at the limit passes; the limit counts characters, so a
	// multi-byte rune like π occupies one slot, not two.
	tests := []struct {
		name    string
		message string
	}{
		{"2000 ascii", strings.Repeat("a", 2000)},
		{"2000 multibyte", strings.Repeat("π", 2000)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubReplier{reply: "ok"}
			h := NewChatHandler(stub, true, 2000)

			body, _ := json.Marshal(models.ChatRequest{Message: tc.message})
			rr := postChat(t, h, string(body))

			if rr.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
			}
			if stub.calls != 1 {
				t.Errorf("Expected exactly 1 upstream call, got %d", stub.calls)
			}
		})
	}
}

func TestChatHandler_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			"timeout",
			&services.UpstreamTimeoutError{Message: "The AI service took too long to respond. Please try again."},
			http.StatusGatewayTimeout,
			"The AI service took too long to respond. Please try again.",
		},
		{
			"unreachable",
			&services.UpstreamUnreachableError{Message: "Could not reach the AI service. Check your internet connection."},
			http.StatusBadGateway,
			"Could not reach the AI service. Check your internet connection.",
		},
		{
			"rate limited",
			&services.RateLimitError{Message: "API rate limit reached. Please wait a moment and try again."},
			http.StatusBadGateway,
			"API rate limit reached. Please wait a moment and try again.",
		},
		{
			"unauthorized",
			&services.UnauthorizedError{Message: "API key is invalid or unauthorised."},
			http.StatusBadGateway,
			"API key is invalid or unauthorised.",
		},
		{
			"upstream http error",
			&services.UpstreamStatusError{StatusCode: 500, Message: "AI service returned an error (HTTP 500)."},
			http.StatusBadGateway,
			"AI service returned an error (HTTP 500).",
		},
		{
			"undecodable response",
			&services.BadResponseError{Message: "Received an unexpected response from the AI service."},
			http.StatusBadGateway,
			"Received an unexpected response from the AI service.",
		},
		{
			"empty reply",
			&services.EmptyReplyError{Message: "The AI returned an empty response. Please try rephrasing."},
			http.StatusBadGateway,
			"The AI returned an empty response. Please try rephrasing.",
		},
		{
			"unknown error",
			errors.New("boom"),
			http.StatusInternalServerError,
			"An unexpected error occurred.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubReplier{err: tc.err}
			h := NewChatHandler(stub, true, 2000)

			rr := postChat(t, h, `{"message":"hello"}`)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if msg := decodeError(t, rr); msg != tc.wantMsg {
				t.Errorf("Expected %q, got %q", tc.wantMsg, msg)
			}
			if stub.calls != 1 {
				t.Errorf("Expected exactly 1 upstream call (no retries), got %d", stub.calls)
			}
		})
	}
}

func TestChatHandler_ContentType(t *testing.T) {
	stub := &stubReplier{reply: "ok"}
	h := NewChatHandler(stub, true, 2000)

	rr := postChat(t, h, `{"message":"hello"}`)

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", ct)
	}
}

// ─── Health Handler Tests ───

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler("openai/gpt-4o-mini", true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp models.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Expected status 'ok', got %q", resp.Status)
	}
	if resp.Model != "openai/gpt-4o-mini" {
		t.Errorf("Expected model identifier, got %q", resp.Model)
	}
	if !resp.APIKeyConfigured {
		t.Error("Expected api_key_configured to be true")
	}
}

func TestHealthHandler_KeyNotConfigured(t *testing.T) {
	h := NewHealthHandler("openai/gpt-4o-mini", false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp models.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.APIKeyConfigured {
		t.Error("Expected api_key_configured to be false")
	}
}
