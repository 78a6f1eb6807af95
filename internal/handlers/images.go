package handlers

import (
	"net/http"
	"strings"

	"github.com/picstash/picstash/internal/models"
	"github.com/picstash/picstash/internal/state"
)

// HandleImages handles the collection-level image operations. Batch
// deletion is the one destructive action with a confirmation gate.
func (h *Handler) HandleImages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.container.App().Images)
	case "DELETE":
		var request struct {
			IDs     []string `json:"ids"`
			Confirm bool     `json:"confirm"`
		}
		if !h.decodeJSON(w, r, &request) {
			return
		}
		if !request.Confirm {
			h.writeError(w, "Deletion requires confirmation", http.StatusBadRequest)
			return
		}
		h.container.Apply(func(s state.State) state.State {
			return state.DeleteImages(s, request.IDs)
		})
		h.writeJSON(w, map[string]any{"status": "ok", "deleted": len(request.IDs)})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleImageMove reassigns a set of images to an existing folder.
func (h *Handler) HandleImageMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		IDs      []string `json:"ids"`
		FolderID string   `json:"folderId"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	h.container.Apply(func(s state.State) state.State {
		return state.MoveImages(s, request.IDs, request.FolderID)
	})
	h.writeJSON(w, map[string]any{"status": "ok"})
}

// HandleImageDetail routes the item-level operations:
//
//	PATCH  /api/images/{id}                  edit name/category/description
//	POST   /api/images/{id}/batch            toggle batch membership
//	POST   /api/images/{id}/texts            add an OCR text region
//	PATCH  /api/images/{id}/texts/{textID}   edit a region's text
//	DELETE /api/images/{id}/texts/{textID}   remove a region
func (h *Handler) HandleImageDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/images/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		h.writeError(w, "Image id required", http.StatusBadRequest)
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1 && r.Method == "PATCH":
		h.patchImage(w, r, id)
	case len(parts) == 2 && parts[1] == "batch" && r.Method == "POST":
		snap := h.container.Apply(func(s state.State) state.State {
			return state.ToggleBatchSelection(s, id)
		})
		h.writeJSON(w, map[string]any{"batchSelection": snap.Sess.BatchSelection})
	case len(parts) == 2 && parts[1] == "texts" && r.Method == "POST":
		h.addText(w, r, id)
	case len(parts) == 3 && parts[1] == "texts" && r.Method == "PATCH":
		h.updateText(w, r, id, parts[2])
	case len(parts) == 3 && parts[1] == "texts" && r.Method == "DELETE":
		h.container.Apply(func(s state.State) state.State {
			return state.RemoveOCRText(s, id, parts[2])
		})
		h.writeJSON(w, map[string]any{"status": "ok"})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) patchImage(w http.ResponseWriter, r *http.Request, id string) {
	var request struct {
		Name        *string `json:"name"`
		Category    *string `json:"category"`
		Description *string `json:"description"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	h.container.Apply(func(s state.State) state.State {
		if request.Name != nil {
			s = state.UpdateImageName(s, id, *request.Name)
		}
		if request.Category != nil {
			s = state.UpdateImageCategory(s, id, *request.Category)
		}
		if request.Description != nil {
			s = state.UpdateImageDescription(s, id, *request.Description)
		}
		return s
	})
	h.writeJSON(w, map[string]any{"status": "ok"})
}

func (h *Handler) addText(w http.ResponseWriter, r *http.Request, imageID string) {
	var request struct {
		Text string  `json:"text"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}
	if request.Text == "" {
		// Click-to-add gesture.
		request.Text = "New Text"
	}

	text := models.OCRText{
		ID:   models.NewID(),
		Text: request.Text,
		X:    request.X,
		Y:    request.Y,
	}
	h.container.Apply(func(s state.State) state.State {
		return state.AddOCRText(s, imageID, text)
	})
	h.writeJSON(w, text)
}

func (h *Handler) updateText(w http.ResponseWriter, r *http.Request, imageID, textID string) {
	var request struct {
		Text string `json:"text"`
	}
	if !h.decodeJSON(w, r, &request) {
		return
	}

	h.container.Apply(func(s state.State) state.State {
		return state.UpdateOCRText(s, imageID, textID, request.Text)
	})
	h.writeJSON(w, map[string]any{"status": "ok"})
}
