// Package views computes the derived, read-only projections of the state
// tree: the set of images visible under the current folder and search
// filter, and the currently open image.
package views

import (
	"strings"
	"sync"

	"github.com/picstash/picstash/internal/models"
)

// Visible filters images by the current folder (unless it is the "all"
// pseudo-folder) and by a case-insensitive substring match of the search
// query against name, category, description, or any OCR text. Matches are
// OR-combined and never ranked; result order equals the input order.
func Visible(app models.AppState) []models.ImageItem {
	return filterImages(app.Images, app.CurrentFolderID, app.SearchQuery)
}

func filterImages(images []models.ImageItem, folderID, query string) []models.ImageItem {
	query = strings.ToLower(query)

	out := make([]models.ImageItem, 0, len(images))
	for _, img := range images {
		if folderID != models.AllFolderID && img.FolderID != folderID {
			continue
		}
		if query != "" && !matches(img, query) {
			continue
		}
		out = append(out, img)
	}
	return out
}

func matches(img models.ImageItem, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(img.Name), loweredQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(img.Category), loweredQuery) {
		return true
	}
	if img.Description != "" && strings.Contains(strings.ToLower(img.Description), loweredQuery) {
		return true
	}
	for _, t := range img.OCRTexts {
		if strings.Contains(strings.ToLower(t.Text), loweredQuery) {
			return true
		}
	}
	return false
}

// Engine memoizes the derived projections. The gallery recomputes per
// keystroke, so a call with unchanged inputs must return the previously
// computed slice without filtering or allocating again.
type Engine struct {
	mu sync.Mutex

	visImages []models.ImageItem
	visFolder string
	visQuery  string
	visValid  bool
	visResult []models.ImageItem

	selImages []models.ImageItem
	selID     string
	selValid  bool
	selResult *models.ImageItem
}

// NewEngine returns an empty memoizing engine.
func NewEngine() *Engine {
	return &Engine{}
}

// VisibleImages is the memoized form of Visible.
func (e *Engine) VisibleImages(app models.AppState) []models.ImageItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.visValid &&
		sameImages(e.visImages, app.Images) &&
		e.visFolder == app.CurrentFolderID &&
		e.visQuery == app.SearchQuery {
		return e.visResult
	}

	e.visImages = app.Images
	e.visFolder = app.CurrentFolderID
	e.visQuery = app.SearchQuery
	e.visResult = filterImages(app.Images, app.CurrentFolderID, app.SearchQuery)
	e.visValid = true
	return e.visResult
}

// SelectedImage returns the image whose id equals selectedID, or nil.
// Memoized on (images, selectedID).
func (e *Engine) SelectedImage(app models.AppState, selectedID string) *models.ImageItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.selValid && sameImages(e.selImages, app.Images) && e.selID == selectedID {
		return e.selResult
	}

	e.selImages = app.Images
	e.selID = selectedID
	e.selResult = nil
	if selectedID != "" {
		for i := range app.Images {
			if app.Images[i].ID == selectedID {
				img := app.Images[i]
				e.selResult = &img
				break
			}
		}
	}
	e.selValid = true
	return e.selResult
}

// Transitions replace the images slice whenever any image changes, so slice
// identity is enough to detect "unchanged".
func sameImages(a, b []models.ImageItem) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
