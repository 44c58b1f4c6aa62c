package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/logger"
	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/models"
	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/services"
)

type chatReplier interface {
	Reply(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	chat             chatReplier
	apiKeyConfigured bool
	maxMessageLength int
}

func NewChatHandler(chat chatReplier, apiKeyConfigured bool, maxMessageLength int) *ChatHandler {
	return &ChatHandler{
		chat:             chat,
		apiKeyConfigured: apiKeyConfigured,
		maxMessageLength: maxMessageLength,
	}
}

// Chat relays one transcribed voice message to the AI service and returns
// the reply text. Validation runs in a fixed order and the first failing
// check wins; the configuration check runs before the body is touched.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.apiKeyConfigured {
		logger.Error("OPENROUTER_API_KEY is not set in the environment")
		writeJSON(w, http.StatusInternalServerError, errorResp("Server configuration error: API key is missing."))
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(decodeErrorMessage(err)))
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Message cannot be empty."))
		return
	}

	// Length is counted in characters, not bytes, so multi-byte input
	// like math symbols is not penalised.
	if utf8.RuneCountInString(message) > h.maxMessageLength {
		writeJSON(w, http.StatusBadRequest,
			errorResp(fmt.Sprintf("Message exceeds the %d-character limit.", h.maxMessageLength)))
		return
	}

	reply, err := h.chat.Reply(r.Context(), message)
	if err != nil {
		handleChatError(w, err)
		return
	}

	logger.Info("chat completed",
		"message_chars", utf8.RuneCountInString(message),
		"reply_chars", utf8.RuneCountInString(reply))
	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

// decodeErrorMessage distinguishes a wrongly typed message field from a
// body that is not a JSON object at all.
func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "message" {
		return "The 'message' field must be a string."
	}
	return "Request body must be JSON."
}

func handleChatError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.UpstreamTimeoutError:
		writeJSON(w, http.StatusGatewayTimeout, errorResp(e.Message))
	case *services.UpstreamUnreachableError:
		writeJSON(w, http.StatusBadGateway, errorResp(e.Message))
	case *services.RateLimitError:
		writeJSON(w, http.StatusBadGateway, errorResp(e.Message))
	case *services.UnauthorizedError:
		writeJSON(w, http.StatusBadGateway, errorResp(e.Message))
	case *services.UpstreamStatusError:
		writeJSON(w, http.StatusBadGateway, errorResp(e.Message))
	case *services.BadResponseError:
		writeJSON(w, http.StatusBadGateway, errorResp(e.Message))
	case *services.EmptyReplyError:
		writeJSON(w, http.StatusBadGateway, errorResp(e.Message))
	default:
		logger.Error("unhandled chat error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("An unexpected error occurred."))
	}
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}
