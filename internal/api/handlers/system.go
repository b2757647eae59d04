package handlers

import (
	"net/http"

	"github.com/ramonehamilton/edh-power/internal/api/response"
	"github.com/ramonehamilton/edh-power/internal/version"
)

// SystemHandler handles system-related API requests.
type SystemHandler struct {
	storageEnabled bool
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(storageEnabled bool) *SystemHandler {
	return &SystemHandler{storageEnabled: storageEnabled}
}

// GetStatus reports which parts of the service are available.
func (h *SystemHandler) GetStatus(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]interface{}{
		"status":  "ok",
		"storage": h.storageEnabled,
	})
}

// GetVersion returns the application version.
func (h *SystemHandler) GetVersion(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"version": version.GetVersion(),
		"commit":  version.Commit,
		"service": "edh-power-api",
	})
}
