package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/picstash/picstash/internal/autosave"
	"github.com/picstash/picstash/internal/cloudsync"
	"github.com/picstash/picstash/internal/command"
	"github.com/picstash/picstash/internal/ingest"
	"github.com/picstash/picstash/internal/state"
	"github.com/picstash/picstash/internal/views"
	"github.com/picstash/picstash/internal/voice"
)

// Handler serves the organizer API. One handler owns the state container,
// the derived-view engine, the upload pipeline, the command dispatcher,
// and the lifecycle of the voice session.
type Handler struct {
	container  *state.Container
	views      *views.Engine
	pipeline   *ingest.Pipeline
	dispatcher *command.Dispatcher
	saved      *autosave.Indicator
	cloud      *cloudsync.Service

	mu          sync.Mutex
	session     *voice.Session
	stopSession context.CancelFunc
}

// New wires a Handler.
func New(c *state.Container, v *views.Engine, p *ingest.Pipeline, d *command.Dispatcher, saved *autosave.Indicator) *Handler {
	return &Handler{
		container:  c,
		views:      v,
		pipeline:   p,
		dispatcher: d,
		saved:      saved,
		cloud:      cloudsync.New(0),
	}
}

// Close shuts down any active voice session.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		h.stopSession()
		h.session.Close()
		h.session = nil
		h.stopSession = nil
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// requestContext bounds slow collaborator calls triggered by a request.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 60*time.Second)
}
