// Package export snapshots the library metadata to local files: a Parquet
// table for downstream tooling and a YAML report for humans. Image
// payloads are not exported, only metadata.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/picstash/picstash/internal/models"
)

// ImageRow is one Parquet row per image. OCR texts are joined with
// newlines; positions are dropped.
type ImageRow struct {
	ID          string `parquet:"id"`
	Name        string `parquet:"name"`
	Category    string `parquet:"category"`
	Description string `parquet:"description"`
	FolderID    string `parquet:"folder_id"`
	FolderName  string `parquet:"folder_name"`
	OCRText     string `parquet:"ocr_text"`
}

// WriteParquet writes one row per image to path.
func WriteParquet(path string, app models.AppState) error {
	rows := make([]ImageRow, 0, len(app.Images))
	for _, img := range app.Images {
		folderName := ""
		if f, ok := app.Folder(img.FolderID); ok {
			folderName = f.Name
		}

		texts := make([]string, 0, len(img.OCRTexts))
		for _, t := range img.OCRTexts {
			texts = append(texts, t.Text)
		}

		rows = append(rows, ImageRow{
			ID:          img.ID,
			Name:        img.Name,
			Category:    img.Category,
			Description: img.Description,
			FolderID:    img.FolderID,
			FolderName:  folderName,
			OCRText:     strings.Join(texts, "\n"),
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ImageRow](file)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write parquet rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return nil
}
