package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/picstash/picstash/internal/models"
)

func exportState() models.AppState {
	return models.AppState{
		Images: []models.ImageItem{
			{
				ID:       "img-1",
				Name:     "invoice.png",
				Category: "Finance",
				OCRTexts: []models.OCRText{{ID: "t1", Text: "Total: 42"}, {ID: "t2", Text: "Paid"}},
				FolderID: "f1",
			},
			{ID: "img-2", Name: "beach.jpg", Category: "Photos", FolderID: models.AllFolderID},
		},
		Folders: []models.Folder{
			{ID: models.AllFolderID, Name: "All Images"},
			{ID: "f1", Name: "Paperwork"},
		},
		CurrentFolderID: models.AllFolderID,
	}
}

func TestWriteParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.parquet")
	if err := WriteParquet(path, exportState()); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open parquet file: %v", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		t.Fatalf("Failed to open parquet: %v", err)
	}

	reader := parquet.NewGenericReader[ImageRow](pf)
	defer reader.Close()

	rows := make([]ImageRow, 4)
	n, _ := reader.Read(rows)
	if n != 2 {
		t.Fatalf("Expected 2 rows, got %d", n)
	}
	if rows[0].ID != "img-1" || rows[0].FolderName != "Paperwork" {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}
	if rows[0].OCRText != "Total: 42\nPaid" {
		t.Errorf("Expected joined OCR text, got %q", rows[0].OCRText)
	}
}

func TestWriteParquetEmptyLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := WriteParquet(path, models.DefaultAppState()); err != nil {
		t.Fatalf("WriteParquet failed for empty library: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(exportState())

	if report.ImageCount != 2 || report.FolderCount != 2 {
		t.Errorf("Unexpected counts: %+v", report)
	}
	if len(report.Folders) != 2 {
		t.Fatalf("Expected 2 folder reports, got %d", len(report.Folders))
	}

	// The all pseudo-folder lists only unfiled images.
	all := report.Folders[0]
	if all.ID != models.AllFolderID || len(all.Images) != 1 || all.Images[0].ID != "img-2" {
		t.Errorf("Unexpected all-folder report: %+v", all)
	}

	paperwork := report.Folders[1]
	if len(paperwork.Images) != 1 || paperwork.Images[0].ID != "img-1" {
		t.Errorf("Unexpected folder report: %+v", paperwork)
	}
	if len(paperwork.Images[0].OCRTexts) != 2 {
		t.Errorf("Expected 2 OCR texts in report, got %d", len(paperwork.Images[0].OCRTexts))
	}
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	if err := WriteYAML(path, exportState()); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected a non-empty report")
	}
}
