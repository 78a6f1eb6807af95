// Package state holds the canonical application state tree and the pure
// transition functions that produce a new tree from an old tree plus an
// intent. Transitions never mutate their input; adversarial arguments
// (unknown ids, empty names) are no-ops rather than errors. A no-op
// returns its input unchanged so derived-view memoization stays valid.
package state

import (
	"strings"

	"github.com/picstash/picstash/internal/models"
	"github.com/picstash/picstash/internal/views"
)

// State combines the persisted AppState tree with the per-session UI slice.
type State struct {
	App  models.AppState
	Sess models.Session
}

// CreateFolder appends a new folder. Empty names and exact-name
// collisions are absorbed as no-ops.
func CreateFolder(s State, id, name string) State {
	name = strings.TrimSpace(name)
	if name == "" {
		return s
	}
	if _, exists := s.App.FolderByName(name); exists {
		return s
	}
	s.App.Folders = append(cloneFolders(s.App.Folders), models.Folder{ID: id, Name: name})
	return s
}

// DeleteFolder removes a folder and, in the same transition, reassigns
// every image it held to the "all" pseudo-folder and repairs the current
// folder if it pointed at the deleted id. The "all" folder itself is
// never deletable.
func DeleteFolder(s State, id string) State {
	if id == models.AllFolderID {
		return s
	}
	if _, ok := s.App.Folder(id); !ok {
		return s
	}

	folders := make([]models.Folder, 0, len(s.App.Folders)-1)
	for _, f := range s.App.Folders {
		if f.ID != id {
			folders = append(folders, f)
		}
	}
	s.App.Folders = folders

	orphaned := false
	for _, img := range s.App.Images {
		if img.FolderID == id {
			orphaned = true
			break
		}
	}
	if orphaned {
		images := cloneImages(s.App.Images)
		for i := range images {
			if images[i].FolderID == id {
				images[i].FolderID = models.AllFolderID
			}
		}
		s.App.Images = images
	}

	if s.App.CurrentFolderID == id {
		s.App.CurrentFolderID = models.AllFolderID
	}
	return s
}

// SelectFolder makes an existing folder the current one.
func SelectFolder(s State, id string) State {
	if _, ok := s.App.Folder(id); !ok {
		return s
	}
	s.App.CurrentFolderID = id
	return s
}

// SetSearchQuery replaces the free-text filter. Empty means no filtering.
func SetSearchQuery(s State, query string) State {
	s.App.SearchQuery = query
	return s
}

// AddImage prepends a new image record; the gallery is newest-first.
func AddImage(s State, img models.ImageItem) State {
	images := make([]models.ImageItem, 0, len(s.App.Images)+1)
	images = append(images, img)
	images = append(images, s.App.Images...)
	s.App.Images = images
	return s
}

// DeleteImages removes every image whose id is in ids in one transition,
// then clears batch selection and multi-select mode. The open image is
// deselected if it was deleted.
func DeleteImages(s State, ids []string) State {
	doomed := toSet(ids)
	if len(doomed) == 0 {
		return clearBatch(s)
	}

	hit := false
	for _, img := range s.App.Images {
		if doomed[img.ID] {
			hit = true
			break
		}
	}
	if hit {
		images := make([]models.ImageItem, 0, len(s.App.Images))
		for _, img := range s.App.Images {
			if !doomed[img.ID] {
				images = append(images, img)
			}
		}
		s.App.Images = images
	}

	if doomed[s.Sess.SelectedImageID] {
		s.Sess.SelectedImageID = ""
	}
	return clearBatch(s)
}

// UpdateImageName renames an image.
func UpdateImageName(s State, id, name string) State {
	return updateImage(s, id, func(img *models.ImageItem) { img.Name = name })
}

// UpdateImageCategory replaces an image's single-label classification.
func UpdateImageCategory(s State, id, category string) State {
	return updateImage(s, id, func(img *models.ImageItem) { img.Category = category })
}

// UpdateImageDescription replaces the machine-generated description.
func UpdateImageDescription(s State, id, description string) State {
	return updateImage(s, id, func(img *models.ImageItem) { img.Description = description })
}

// AddOCRText appends a text region to an image.
func AddOCRText(s State, imageID string, text models.OCRText) State {
	return updateImage(s, imageID, func(img *models.ImageItem) {
		texts := make([]models.OCRText, 0, len(img.OCRTexts)+1)
		texts = append(texts, img.OCRTexts...)
		img.OCRTexts = append(texts, text)
	})
}

// UpdateOCRText rewrites the text of one region.
func UpdateOCRText(s State, imageID, textID, text string) State {
	return updateImage(s, imageID, func(img *models.ImageItem) {
		texts := make([]models.OCRText, len(img.OCRTexts))
		copy(texts, img.OCRTexts)
		for i := range texts {
			if texts[i].ID == textID {
				texts[i].Text = text
			}
		}
		img.OCRTexts = texts
	})
}

// RemoveOCRText deletes one region from an image.
func RemoveOCRText(s State, imageID, textID string) State {
	return updateImage(s, imageID, func(img *models.ImageItem) {
		texts := make([]models.OCRText, 0, len(img.OCRTexts))
		for _, t := range img.OCRTexts {
			if t.ID != textID {
				texts = append(texts, t)
			}
		}
		img.OCRTexts = texts
	})
}

// MoveImages reassigns the given images to an existing folder.
func MoveImages(s State, ids []string, folderID string) State {
	if _, ok := s.App.Folder(folderID); !ok {
		return s
	}
	targets := toSet(ids)
	changed := false
	for _, img := range s.App.Images {
		if targets[img.ID] && img.FolderID != folderID {
			changed = true
			break
		}
	}
	if !changed {
		return s
	}
	images := cloneImages(s.App.Images)
	for i := range images {
		if targets[images[i].ID] {
			images[i].FolderID = folderID
		}
	}
	s.App.Images = images
	return s
}

// SelectImage opens an image; an empty id closes the current one.
func SelectImage(s State, id string) State {
	if id != "" {
		if _, ok := s.App.Image(id); !ok {
			return s
		}
	}
	s.Sess.SelectedImageID = id
	return s
}

// ToggleMultiSelect flips multi-select mode; leaving it discards the batch.
func ToggleMultiSelect(s State) State {
	s.Sess.MultiSelect = !s.Sess.MultiSelect
	if !s.Sess.MultiSelect {
		s.Sess.BatchSelection = nil
	}
	return s
}

// ToggleBatchSelection adds or removes one image from the batch.
func ToggleBatchSelection(s State, id string) State {
	if _, ok := s.App.Image(id); !ok {
		return s
	}
	for i, b := range s.Sess.BatchSelection {
		if b == id {
			batch := make([]string, 0, len(s.Sess.BatchSelection)-1)
			batch = append(batch, s.Sess.BatchSelection[:i]...)
			batch = append(batch, s.Sess.BatchSelection[i+1:]...)
			s.Sess.BatchSelection = batch
			return s
		}
	}
	batch := make([]string, 0, len(s.Sess.BatchSelection)+1)
	batch = append(batch, s.Sess.BatchSelection...)
	s.Sess.BatchSelection = append(batch, id)
	return s
}

// CreateFolderAndMove creates a folder and reassigns images into it in one
// transition. The move set is decided by a strict three-tier precedence:
// a non-empty multi-select batch wins; otherwise the single open image;
// otherwise every image visible under the current folder and search filter
// of the input tree. Afterwards the batch, multi-select mode, and open
// image are all cleared and the new folder becomes current.
func CreateFolderAndMove(s State, id, name string) State {
	name = strings.TrimSpace(name)
	if name == "" {
		return s
	}
	if _, exists := s.App.FolderByName(name); exists {
		return s
	}

	var ids []string
	switch {
	case s.Sess.MultiSelect && len(s.Sess.BatchSelection) > 0:
		ids = s.Sess.BatchSelection
	case s.Sess.SelectedImageID != "":
		ids = []string{s.Sess.SelectedImageID}
	default:
		for _, img := range views.Visible(s.App) {
			ids = append(ids, img.ID)
		}
	}

	s = CreateFolder(s, id, name)
	s = MoveImages(s, ids, id)
	s.App.CurrentFolderID = id
	s.Sess = models.Session{}
	return s
}

func updateImage(s State, id string, mutate func(*models.ImageItem)) State {
	if _, ok := s.App.Image(id); !ok {
		return s
	}
	images := cloneImages(s.App.Images)
	for i := range images {
		if images[i].ID == id {
			mutate(&images[i])
		}
	}
	s.App.Images = images
	return s
}

func clearBatch(s State) State {
	s.Sess.BatchSelection = nil
	s.Sess.MultiSelect = false
	return s
}

func cloneImages(in []models.ImageItem) []models.ImageItem {
	out := make([]models.ImageItem, len(in))
	copy(out, in)
	return out
}

func cloneFolders(in []models.Folder) []models.Folder {
	out := make([]models.Folder, len(in))
	copy(out, in)
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}
