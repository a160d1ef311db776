// ABOUTME: This file implements the HTTP control surface for the sync engine
// ABOUTME: Exposes health, sync status and manual trigger endpoints as JSON

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"feed-sync-engine/models"
)

// StatusAPIHandler serves the engine's local control endpoints. Triggers run
// synchronously on the request context; a trigger that lands while a round is
// already in flight is absorbed by the engine's overlap guard.
type StatusAPIHandler struct {
	scheduler *SyncScheduler
	engine    SyncEngine
	logger    *slog.Logger
}

// StatusResponse is the GET /sync/status payload.
type StatusResponse struct {
	SchedulerRunning bool             `json:"scheduler_running"`
	WindowStartedAt  time.Time        `json:"window_started_at,omitempty"`
	WindowEndedAt    time.Time        `json:"window_ended_at,omitempty"`
	Stats            models.SyncStats `json:"stats"`
}

// TriggerResponse is the POST /sync/trigger payload.
type TriggerResponse struct {
	Status    string    `json:"status"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Status    string    `json:"status"`
	ErrorCode string    `json:"error_code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewStatusAPIHandler(scheduler *SyncScheduler, engine SyncEngine, logger *slog.Logger) *StatusAPIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusAPIHandler{
		scheduler: scheduler,
		engine:    engine,
		logger:    logger,
	}
}

// RegisterRoutes attaches the control endpoints to the given mux.
func (h *StatusAPIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.HandleHealth)
	mux.HandleFunc("/sync/status", h.HandleStatus)
	mux.HandleFunc("/sync/trigger", h.HandleTrigger)
}

func (h *StatusAPIHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *StatusAPIHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}
	window := h.engine.Window()
	h.writeJSON(w, http.StatusOK, StatusResponse{
		SchedulerRunning: h.scheduler != nil && h.scheduler.IsRunning(),
		WindowStartedAt:  window.StartedAt,
		WindowEndedAt:    window.EndedAt,
		Stats:            h.engine.Stats(),
	})
}

// HandleTrigger starts one round now. mode=full requests a full resync,
// anything else an incremental round.
func (h *StatusAPIHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is allowed")
		return
	}

	kind := "incremental"
	run := h.engine.Sync
	if r.URL.Query().Get("mode") == "full" {
		kind = "full"
		run = h.engine.Resync
	}

	h.logger.Info("manual sync triggered", "kind", kind, "remote_addr", r.RemoteAddr)
	if err := run(r.Context()); err != nil {
		h.logger.Error("triggered sync failed", "kind", kind, "error", err)
		h.writeError(w, http.StatusInternalServerError, "SYNC_FAILED", err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, TriggerResponse{
		Status:    "completed",
		Kind:      kind,
		Timestamp: time.Now(),
	})
}

func (h *StatusAPIHandler) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *StatusAPIHandler) writeError(w http.ResponseWriter, code int, errorCode, message string) {
	h.writeJSON(w, code, ErrorResponse{
		Status:    "error",
		ErrorCode: errorCode,
		Message:   message,
		Timestamp: time.Now(),
	})
}
