package state

import (
	"testing"

	"github.com/picstash/picstash/internal/models"
)

func testState() State {
	return State{
		App: models.AppState{
			Images: []models.ImageItem{
				{ID: "img-c", Name: "cat.jpg", Category: "Photos", FolderID: "f1"},
				{ID: "img-b", Name: "bill.png", Category: "Receipts", FolderID: models.AllFolderID},
				{ID: "img-a", Name: "art.png", Category: "Art", FolderID: "f1"},
			},
			Folders: []models.Folder{
				{ID: models.AllFolderID, Name: "All Images"},
				{ID: "f1", Name: "Trips"},
			},
			CurrentFolderID: models.AllFolderID,
		},
	}
}

func TestCreateFolder(t *testing.T) {
	tests := []struct {
		name        string
		folderName  string
		wantFolders int
	}{
		{name: "creates folder", folderName: "Work", wantFolders: 3},
		{name: "trims whitespace", folderName: "  Work  ", wantFolders: 3},
		{name: "empty name is a no-op", folderName: "   ", wantFolders: 2},
		{name: "duplicate name is a no-op", folderName: "Trips", wantFolders: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testState()
			got := CreateFolder(s, "new-id", tt.folderName)

			if len(got.App.Folders) != tt.wantFolders {
				t.Errorf("Expected %d folders, got %d", tt.wantFolders, len(got.App.Folders))
			}
			if len(s.App.Folders) != 2 {
				t.Errorf("Input state was mutated: %d folders", len(s.App.Folders))
			}
			if tt.wantFolders == 3 {
				last := got.App.Folders[len(got.App.Folders)-1]
				if last.ID != "new-id" || last.Name != "Work" {
					t.Errorf("Expected appended folder {new-id Work}, got %+v", last)
				}
			}
		})
	}
}

func TestDeleteFolder(t *testing.T) {
	t.Run("reassigns images and repairs current folder in one transition", func(t *testing.T) {
		s := testState()
		s.App.CurrentFolderID = "f1"
		got := DeleteFolder(s, "f1")

		if _, ok := got.App.Folder("f1"); ok {
			t.Error("Folder f1 still present after deletion")
		}
		for _, img := range got.App.Images {
			if img.FolderID == "f1" {
				t.Errorf("Image %s still references deleted folder", img.ID)
			}
		}
		if got.App.CurrentFolderID != models.AllFolderID {
			t.Errorf("Expected current folder %q, got %q", models.AllFolderID, got.App.CurrentFolderID)
		}
	})

	t.Run("images are reassigned, not deleted", func(t *testing.T) {
		got := DeleteFolder(testState(), "f1")
		if len(got.App.Images) != 3 {
			t.Errorf("Expected 3 images after folder deletion, got %d", len(got.App.Images))
		}
	})

	t.Run("the all folder cannot be deleted", func(t *testing.T) {
		s := testState()
		got := DeleteFolder(s, models.AllFolderID)
		if len(got.App.Folders) != len(s.App.Folders) {
			t.Error("The all folder was deleted")
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := testState()
		got := DeleteFolder(s, "missing")
		if len(got.App.Folders) != 2 || len(got.App.Images) != 3 {
			t.Error("State changed for unknown folder id")
		}
	})
}

func TestAddImagePrepends(t *testing.T) {
	s := testState()
	got := AddImage(s, models.ImageItem{ID: "img-new", Name: "new.jpg"})

	if len(got.App.Images) != 4 {
		t.Fatalf("Expected 4 images, got %d", len(got.App.Images))
	}
	if got.App.Images[0].ID != "img-new" {
		t.Errorf("Expected new image first, got %s", got.App.Images[0].ID)
	}
	if s.App.Images[0].ID != "img-c" {
		t.Error("Input state was mutated")
	}
}

func TestDeleteImages(t *testing.T) {
	t.Run("removes the whole batch in one transition", func(t *testing.T) {
		s := testState()
		s.Sess.MultiSelect = true
		s.Sess.BatchSelection = []string{"img-a", "img-b"}

		got := DeleteImages(s, []string{"img-a", "img-b"})

		if len(got.App.Images) != 1 || got.App.Images[0].ID != "img-c" {
			t.Errorf("Expected exactly img-c to survive, got %+v", got.App.Images)
		}
		if got.Sess.MultiSelect || got.Sess.BatchSelection != nil {
			t.Error("Batch selection and multi-select mode were not cleared")
		}
	})

	t.Run("clears selection when the open image is deleted", func(t *testing.T) {
		s := testState()
		s.Sess.SelectedImageID = "img-b"
		got := DeleteImages(s, []string{"img-b"})
		if got.Sess.SelectedImageID != "" {
			t.Errorf("Expected selection cleared, got %q", got.Sess.SelectedImageID)
		}
	})

	t.Run("keeps selection when another image is deleted", func(t *testing.T) {
		s := testState()
		s.Sess.SelectedImageID = "img-c"
		got := DeleteImages(s, []string{"img-b"})
		if got.Sess.SelectedImageID != "img-c" {
			t.Errorf("Expected selection kept, got %q", got.Sess.SelectedImageID)
		}
	})

	t.Run("unknown ids are a no-op on images", func(t *testing.T) {
		got := DeleteImages(testState(), []string{"missing"})
		if len(got.App.Images) != 3 {
			t.Errorf("Expected 3 images, got %d", len(got.App.Images))
		}
	})
}

func TestUpdateImageFields(t *testing.T) {
	s := testState()

	got := UpdateImageName(s, "img-b", "invoice.png")
	if img, _ := got.App.Image("img-b"); img.Name != "invoice.png" {
		t.Errorf("Expected renamed image, got %q", img.Name)
	}
	if img, _ := s.App.Image("img-b"); img.Name != "bill.png" {
		t.Error("Input state was mutated")
	}

	got = UpdateImageCategory(s, "img-b", "Finance")
	if img, _ := got.App.Image("img-b"); img.Category != "Finance" {
		t.Errorf("Expected updated category, got %q", img.Category)
	}

	got = UpdateImageName(s, "missing", "x")
	if len(got.App.Images) != 3 {
		t.Error("Unknown image id changed the tree")
	}
}

func TestOCRTextLifecycle(t *testing.T) {
	s := testState()

	s = AddOCRText(s, "img-b", models.OCRText{ID: "t1", Text: "Total: 42", X: 50, Y: 80})
	img, _ := s.App.Image("img-b")
	if len(img.OCRTexts) != 1 || img.OCRTexts[0].Text != "Total: 42" {
		t.Fatalf("Expected one text region, got %+v", img.OCRTexts)
	}

	s = UpdateOCRText(s, "img-b", "t1", "Total: 43")
	img, _ = s.App.Image("img-b")
	if img.OCRTexts[0].Text != "Total: 43" {
		t.Errorf("Expected updated text, got %q", img.OCRTexts[0].Text)
	}

	s = RemoveOCRText(s, "img-b", "t1")
	img, _ = s.App.Image("img-b")
	if len(img.OCRTexts) != 0 {
		t.Errorf("Expected no text regions, got %d", len(img.OCRTexts))
	}
}

func TestMoveImages(t *testing.T) {
	t.Run("moves into an existing folder", func(t *testing.T) {
		got := MoveImages(testState(), []string{"img-b"}, "f1")
		if img, _ := got.App.Image("img-b"); img.FolderID != "f1" {
			t.Errorf("Expected folder f1, got %q", img.FolderID)
		}
	})

	t.Run("unknown folder is a no-op", func(t *testing.T) {
		s := testState()
		got := MoveImages(s, []string{"img-b"}, "missing")
		if img, _ := got.App.Image("img-b"); img.FolderID != models.AllFolderID {
			t.Errorf("Image moved to nonexistent folder: %q", img.FolderID)
		}
	})
}

func TestSelectImage(t *testing.T) {
	s := testState()

	got := SelectImage(s, "img-a")
	if got.Sess.SelectedImageID != "img-a" {
		t.Errorf("Expected img-a selected, got %q", got.Sess.SelectedImageID)
	}

	got = SelectImage(got, "")
	if got.Sess.SelectedImageID != "" {
		t.Error("Expected deselection")
	}

	got = SelectImage(s, "missing")
	if got.Sess.SelectedImageID != "" {
		t.Error("Unknown id changed the selection")
	}
}

func TestToggleBatchSelection(t *testing.T) {
	s := testState()
	s = ToggleMultiSelect(s)

	s = ToggleBatchSelection(s, "img-a")
	s = ToggleBatchSelection(s, "img-b")
	if len(s.Sess.BatchSelection) != 2 {
		t.Fatalf("Expected 2 in batch, got %d", len(s.Sess.BatchSelection))
	}

	s = ToggleBatchSelection(s, "img-a")
	if len(s.Sess.BatchSelection) != 1 || s.Sess.BatchSelection[0] != "img-b" {
		t.Errorf("Expected only img-b in batch, got %v", s.Sess.BatchSelection)
	}

	s = ToggleMultiSelect(s)
	if s.Sess.BatchSelection != nil {
		t.Error("Leaving multi-select mode kept the batch")
	}
}

func TestCreateFolderAndMovePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(State) State
		wantMoved []string
		wantKept  []string
	}{
		{
			name: "batch selection wins over open image and visible set",
			setup: func(s State) State {
				s.Sess.MultiSelect = true
				s.Sess.BatchSelection = []string{"img-a"}
				s.Sess.SelectedImageID = "img-b"
				return s
			},
			wantMoved: []string{"img-a"},
			wantKept:  []string{"img-b", "img-c"},
		},
		{
			name: "open image wins when no batch",
			setup: func(s State) State {
				s.Sess.SelectedImageID = "img-b"
				return s
			},
			wantMoved: []string{"img-b"},
			wantKept:  []string{"img-a", "img-c"},
		},
		{
			name: "empty batch falls through to open image",
			setup: func(s State) State {
				s.Sess.MultiSelect = true
				s.Sess.SelectedImageID = "img-c"
				return s
			},
			wantMoved: []string{"img-c"},
			wantKept:  []string{"img-a", "img-b"},
		},
		{
			name: "visible set moves when nothing is selected",
			setup: func(s State) State {
				s.App.CurrentFolderID = "f1"
				return s
			},
			wantMoved: []string{"img-a", "img-c"},
			wantKept:  []string{"img-b"},
		},
		{
			name: "visible set honors the search filter",
			setup: func(s State) State {
				s.App.SearchQuery = "art"
				return s
			},
			wantMoved: []string{"img-a"},
			wantKept:  []string{"img-b", "img-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.setup(testState())
			got := CreateFolderAndMove(s, "new-folder", "Sorted")

			for _, id := range tt.wantMoved {
				if img, _ := got.App.Image(id); img.FolderID != "new-folder" {
					t.Errorf("Expected %s moved to new folder, got %q", id, img.FolderID)
				}
			}
			for _, id := range tt.wantKept {
				if img, _ := got.App.Image(id); img.FolderID == "new-folder" {
					t.Errorf("Expected %s untouched, but it was moved", id)
				}
			}

			if got.App.CurrentFolderID != "new-folder" {
				t.Errorf("Expected new folder active, got %q", got.App.CurrentFolderID)
			}
			if got.Sess.SelectedImageID != "" || got.Sess.MultiSelect || got.Sess.BatchSelection != nil {
				t.Errorf("Session not cleared: %+v", got.Sess)
			}
		})
	}

	t.Run("duplicate folder name is a no-op", func(t *testing.T) {
		s := testState()
		s.Sess.SelectedImageID = "img-b"
		got := CreateFolderAndMove(s, "new-folder", "Trips")

		if len(got.App.Folders) != 2 {
			t.Errorf("Expected no new folder, got %d folders", len(got.App.Folders))
		}
		if img, _ := got.App.Image("img-b"); img.FolderID != models.AllFolderID {
			t.Error("Images moved despite the name conflict")
		}
	})
}
