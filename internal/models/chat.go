package models

// ChatRequest is the payload sent to the chat endpoint. The message is the
// browser's speech-to-text transcript for a single utterance; no history is
// carried between requests.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse is returned with a non-200 status. Error is a single
// human-readable sentence; internal details stay in the server log.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports liveness and whether the upstream key is set.
// It never carries the key itself.
type HealthResponse struct {
	Status           string `json:"status"`
	Model            string `json:"model"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}
