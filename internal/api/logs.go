package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// LogsHandler handles the activity feed endpoints.
type LogsHandler struct {
	DB *sql.DB
}

type createLogRequest struct {
	Content string `json:"content"`
}

// List handles GET /api/logs.
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := store.ListLogs(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list logs", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list logs")
		return
	}
	if logs == nil {
		logs = []model.LogEntry{}
	}
	jsonResponse(w, http.StatusOK, logs)
}

// Create handles POST /api/logs.
func (h *LogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createLogRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		jsonError(w, http.StatusBadRequest, "content required")
		return
	}

	entry, err := store.CreateLog(r.Context(), h.DB, &claims.UserID, req.Content)
	if err != nil {
		slog.Error("failed to create log entry", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create log entry")
		return
	}
	jsonResponse(w, http.StatusCreated, entry)
}
