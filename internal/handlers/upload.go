package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/picstash/picstash/internal/ingest"
)

// HandleUpload accepts one multipart file, runs it through the analysis
// pipeline, and returns the new image record. While an analysis is in
// flight, concurrent uploads are refused.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, ingest.MaxUploadBytes+1))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) > ingest.MaxUploadBytes {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	img, err := h.pipeline.Ingest(ctx, fileData, header.Filename)
	if err != nil {
		if errors.Is(err, ingest.ErrBusy) {
			h.writeError(w, "Another upload is still being analyzed", http.StatusConflict)
			return
		}
		h.writeError(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, map[string]any{
		"message": "Successfully uploaded 1 image",
		"image":   img,
	})
}
