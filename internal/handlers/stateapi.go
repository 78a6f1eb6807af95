package handlers

import (
	"net/http"

	"github.com/picstash/picstash/internal/models"
	"github.com/picstash/picstash/internal/state"
)

// HandleState returns the full tree plus its derived projections. The
// front end polls this after every intent.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.container.Snapshot()

	var selected *models.ImageItem
	if snap.Sess.SelectedImageID != "" {
		selected = h.views.SelectedImage(snap.App, snap.Sess.SelectedImageID)
	}

	h.writeJSON(w, map[string]any{
		"state":         snap.App,
		"session":       snap.Sess,
		"visibleImages": h.views.VisibleImages(snap.App),
		"selectedImage": selected,
		"analyzing":     h.pipeline.Busy(),
		"autosave":      h.saved.Active(),
		"listening":     h.voiceListening(),
		"gridView":      h.dispatcher.GridView(),
		"locale":        h.dispatcher.Locale(),
	})
}

// HandleSearch sets the free-text filter.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Query string `json:"query"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	h.container.Apply(func(s state.State) state.State {
		return state.SetSearchQuery(s, request.Query)
	})
	h.writeJSON(w, map[string]any{"status": "ok"})
}

// HandleSelection opens or closes an image; an empty id deselects.
func (h *Handler) HandleSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		ID string `json:"id"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	h.container.Apply(func(s state.State) state.State {
		return state.SelectImage(s, request.ID)
	})
	h.writeJSON(w, map[string]any{"status": "ok"})
}

// HandleBatchMode toggles multi-select mode.
func (h *Handler) HandleBatchMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.container.Apply(state.ToggleMultiSelect)
	h.writeJSON(w, map[string]any{"multiSelect": snap.Sess.MultiSelect})
}
