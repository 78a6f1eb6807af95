package models

// AllFolderID is the reserved id of the virtual "all images" pseudo-folder.
// It is always present, always first in Folders, and can never be deleted.
const AllFolderID = "all"

// OCRText is one recognized or manually-added text region anchored to an image.
// X and Y are percentages of the image width/height in [0,100]; the model does
// not validate them against image bounds.
type OCRText struct {
	ID   string  `json:"id"`
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ImageItem is one uploaded and analyzed image.
type ImageItem struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"` // data URL; the item exclusively owns this payload
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	OCRTexts    []OCRText `json:"ocrTexts"`
	FolderID    string    `json:"folderId"`
}

// Folder is a named grouping of images. Names may collide; the command
// dispatcher treats an exact-name collision as a conflict.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppState is the root aggregate persisted to local storage. Images are kept
// newest-first; Folders keep the "all" pseudo-folder first. CurrentFolderID
// always resolves to an existing folder.
type AppState struct {
	Images          []ImageItem `json:"images"`
	Folders         []Folder    `json:"folders"`
	CurrentFolderID string      `json:"currentFolderId"`
	SearchQuery     string      `json:"searchQuery"`
}

// Session holds the per-session UI slice of state. It is never persisted;
// a fresh session starts with nothing selected.
type Session struct {
	SelectedImageID string   `json:"selectedImageId"`
	MultiSelect     bool     `json:"multiSelect"`
	BatchSelection  []string `json:"batchSelection"`
}

// DefaultAppState returns the fixed first-run state tree.
func DefaultAppState() AppState {
	return AppState{
		Images:          []ImageItem{},
		Folders:         []Folder{{ID: AllFolderID, Name: "All Images"}},
		CurrentFolderID: AllFolderID,
		SearchQuery:     "",
	}
}

// Folder returns the folder with the given id, if present.
func (a AppState) Folder(id string) (Folder, bool) {
	for _, f := range a.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return Folder{}, false
}

// FolderByName returns the first folder whose name matches exactly.
func (a AppState) FolderByName(name string) (Folder, bool) {
	for _, f := range a.Folders {
		if f.Name == name {
			return f, true
		}
	}
	return Folder{}, false
}

// Image returns the image with the given id, if present.
func (a AppState) Image(id string) (ImageItem, bool) {
	for _, img := range a.Images {
		if img.ID == id {
			return img, true
		}
	}
	return ImageItem{}, false
}

// Normalize repairs a tree loaded from storage so that the reserved "all"
// folder exists and comes first and CurrentFolderID points at a real folder.
func (a AppState) Normalize() AppState {
	if a.Images == nil {
		a.Images = []ImageItem{}
	}
	hasAll := false
	for _, f := range a.Folders {
		if f.ID == AllFolderID {
			hasAll = true
			break
		}
	}
	if !hasAll {
		a.Folders = append([]Folder{{ID: AllFolderID, Name: "All Images"}}, a.Folders...)
	}
	if _, ok := a.Folder(a.CurrentFolderID); !ok {
		a.CurrentFolderID = AllFolderID
	}
	return a
}
