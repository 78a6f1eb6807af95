package handlers

import (
	"net/http"
	"strings"

	"github.com/picstash/picstash/internal/models"
	"github.com/picstash/picstash/internal/state"
)

// HandleFolders lists folders or creates one.
func (h *Handler) HandleFolders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.container.App().Folders)
	case "POST":
		var request struct {
			Name string `json:"name"`
		}
		if !h.decodeJSON(w, r, &request) {
			return
		}
		id := models.NewID()
		snap := h.container.Apply(func(s state.State) state.State {
			return state.CreateFolder(s, id, request.Name)
		})
		// Empty names and duplicates are absorbed; report what exists.
		if folder, ok := snap.App.FolderByName(strings.TrimSpace(request.Name)); ok {
			h.writeJSON(w, folder)
			return
		}
		h.writeJSON(w, map[string]any{"status": "ignored"})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleFolderDetail routes /api/folders/{id} and /api/folders/{id}/select.
func (h *Handler) HandleFolderDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/folders/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		h.writeError(w, "Folder id required", http.StatusBadRequest)
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1 && r.Method == "DELETE":
		if id == models.AllFolderID {
			h.writeError(w, "The all folder cannot be deleted", http.StatusBadRequest)
			return
		}
		h.container.Apply(func(s state.State) state.State {
			return state.DeleteFolder(s, id)
		})
		h.writeJSON(w, map[string]any{"status": "ok"})
	case len(parts) == 2 && parts[1] == "select" && r.Method == "PUT":
		snap := h.container.Apply(func(s state.State) state.State {
			return state.SelectFolder(s, id)
		})
		h.writeJSON(w, map[string]any{"currentFolderId": snap.App.CurrentFolderID})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
