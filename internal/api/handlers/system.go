package handlers

import (
	"net/http"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	// Check database health
	if err := h.systemService.CheckHealth(); err != nil {
		resp := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		response.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	// System is healthy
	resp := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

// Version handles GET requests to retrieve version information.
// Returns the application version and the session cache schema version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfo
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	versionInfo, err := h.systemService.CheckVersion()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to get version information", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, versionInfo)
}
