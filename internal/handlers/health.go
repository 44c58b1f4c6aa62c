package handlers

import (
	"net/http"

	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/models"
)

type HealthHandler struct {
	model            string
	apiKeyConfigured bool
}

func NewHealthHandler(model string, apiKeyConfigured bool) *HealthHandler {
	return &HealthHandler{
		model:            model,
		apiKeyConfigured: apiKeyConfigured,
	}
}

// Health reports liveness plus enough configuration state to debug a
// misconfigured deployment. The key itself is never included.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:           "ok",
		Model:            h.model,
		APIKeyConfigured: h.apiKeyConfigured,
	})
}
