// Package ingest turns an uploaded file into a persisted image record:
// encode the bytes to a data URL, hand them to the analysis collaborator,
// then merge the result into the state tree as one prepend transition.
package ingest

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/picstash/picstash/internal/analysis"
	"github.com/picstash/picstash/internal/models"
	"github.com/picstash/picstash/internal/state"
)

// ErrBusy is returned while another upload is still being analyzed; one
// in-flight upload at a time is the policy.
var ErrBusy = errors.New("an upload is already being analyzed")

// MaxUploadBytes caps a single uploaded file.
const MaxUploadBytes = 10 * 1024 * 1024

// Pipeline is the single-in-flight upload unit of work.
type Pipeline struct {
	analyzer  analysis.Analyzer
	container *state.Container
	busy      atomic.Bool
}

// NewPipeline wires the pipeline to its analyzer and state container.
func NewPipeline(a analysis.Analyzer, c *state.Container) *Pipeline {
	return &Pipeline{analyzer: a, container: c}
}

// Busy reports whether an analysis is in progress.
func (p *Pipeline) Busy() bool {
	return p.busy.Load()
}

// Ingest analyzes one file and prepends the resulting image record to the
// tree, filed under the folder that was active when the upload started.
// On analyzer failure no record is created. The in-progress flag clears
// on every exit path.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, filename string) (models.ImageItem, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return models.ImageItem{}, ErrBusy
	}
	defer p.busy.Store(false)

	if len(data) == 0 {
		return models.ImageItem{}, fmt.Errorf("empty file %q", filename)
	}
	if len(data) > MaxUploadBytes {
		return models.ImageItem{}, fmt.Errorf("file %q too large (max %d bytes)", filename, MaxUploadBytes)
	}

	folderID := p.container.App().CurrentFolderID

	result, err := p.analyzer.Analyze(ctx, data, filename)
	if err != nil {
		slog.Error("Image analysis failed", "filename", filename, "err", err)
		return models.ImageItem{}, fmt.Errorf("failed to analyze %q: %w", filename, err)
	}
	result = result.Normalize()

	texts := make([]models.OCRText, 0, len(result.Texts))
	for _, t := range result.Texts {
		texts = append(texts, models.OCRText{
			ID:   models.NewID(),
			Text: t.Text,
			X:    t.X,
			Y:    t.Y,
		})
	}

	img := models.ImageItem{
		ID:          models.NewID(),
		URL:         dataURL(data, filename),
		Name:        filename,
		Category:    result.Category,
		Description: result.Description,
		OCRTexts:    texts,
		FolderID:    folderID,
	}

	p.container.Apply(func(s state.State) state.State {
		return state.AddImage(s, img)
	})

	slog.Info("Image ingested", "id", img.ID, "filename", filename, "category", img.Category, "texts", len(texts))
	return img, nil
}

func dataURL(data []byte, filename string) string {
	return fmt.Sprintf("data:image/%s;base64,%s",
		analysis.ImageFormat(filename),
		base64.StdEncoding.EncodeToString(data))
}
