package handlers

import (
	"database/sql"
	"net/http"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/api/response"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/database"
)

// SystemHandler handles operational endpoints.
type SystemHandler struct {
	db *sql.DB
}

// NewSystemHandler creates a new SystemHandler over the database connection.
func NewSystemHandler(db *sql.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Health handles GET requests for the liveness check.
//
// Endpoint: GET /health
// Response: 200 OK with {status: "ok"}, 503 when the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := database.HealthCheck(h.db); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "database unreachable", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
