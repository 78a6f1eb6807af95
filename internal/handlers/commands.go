package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/picstash/picstash/internal/command"
	"github.com/picstash/picstash/internal/voice"
)

// HandleVoice starts or stops the voice session:
//
//	POST /api/voice {"action": "start" | "stop"}
//
// Starting is idempotent; stopping an inactive session is a no-op.
func (h *Handler) HandleVoice(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, map[string]any{"listening": h.voiceListening()})
	case "POST":
		var request struct {
			Action string `json:"action"`
		}
		if !h.decodeJSON(w, r, &request) {
			return
		}
		switch request.Action {
		case "start":
			h.startVoice()
		case "stop":
			h.Close()
		default:
			h.writeError(w, "Unknown action: "+request.Action, http.StatusBadRequest)
			return
		}
		h.writeJSON(w, map[string]any{"listening": h.voiceListening()})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCommand is the transport for voice intents. Bodies carry either a
// transcript or a structured tool call:
//
//	{"transcript": "create folder Trips"}
//	{"id": "c1", "name": "create_folder", "args": {"name": "Trips"}}
//
// Intents arriving while no session is listening are acknowledged as
// ignored rather than failed.
func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Transcript string         `json:"transcript"`
		ID         string         `json:"id"`
		Name       string         `json:"name"`
		Args       map[string]any `json:"args"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	session := h.currentSession()
	if session == nil {
		slog.Debug("Command ignored, no voice session", "transcript", request.Transcript, "name", request.Name)
		h.writeJSON(w, map[string]any{"status": "ignored"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if request.Name != "" {
		status, err := session.SubmitToolCall(ctx, command.ToolCall{
			ID:   request.ID,
			Name: request.Name,
			Args: request.Args,
		})
		if err != nil {
			if errors.Is(err, voice.ErrClosed) {
				h.writeJSON(w, map[string]any{"status": "ignored"})
				return
			}
			h.writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, status)
		return
	}

	if err := session.SubmitTranscript(ctx, request.Transcript); err != nil {
		if errors.Is(err, voice.ErrClosed) {
			h.writeJSON(w, map[string]any{"status": "ignored"})
			return
		}
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, map[string]any{"status": "ok"})
}

// HandleCloud runs the simulated cloud transfers.
func (h *Handler) HandleCloud(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var summaryErr error
	switch {
	case r.URL.Path == "/api/cloud/export":
		sum, err := h.cloud.Export(ctx, h.container.App())
		if err == nil {
			h.writeJSON(w, sum)
			return
		}
		summaryErr = err
	case r.URL.Path == "/api/cloud/import":
		sum, err := h.cloud.Import(ctx, h.container.App())
		if err == nil {
			h.writeJSON(w, sum)
			return
		}
		summaryErr = err
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
		return
	}
	h.writeError(w, summaryErr.Error(), http.StatusInternalServerError)
}

func (h *Handler) startVoice() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		return
	}

	session := voice.NewSession(h.dispatcher)
	ctx, cancel := context.WithCancel(context.Background())
	h.session = session
	h.stopSession = cancel

	go func() {
		session.Run(ctx)
		// Run only returns on close or cancellation; make the flag reset
		// observable through the handler as well.
		h.mu.Lock()
		if h.session == session {
			h.session = nil
			h.stopSession = nil
		}
		h.mu.Unlock()
	}()
}

func (h *Handler) currentSession() *voice.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

func (h *Handler) voiceListening() bool {
	session := h.currentSession()
	return session != nil && session.Listening()
}
