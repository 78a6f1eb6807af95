package export

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/picstash/picstash/internal/models"
)

// Report is the YAML snapshot of the library.
type Report struct {
	GeneratedAt string         `yaml:"generatedat"`
	ImageCount  int            `yaml:"imagecount"`
	FolderCount int            `yaml:"foldercount"`
	Folders     []FolderReport `yaml:"folders"`
}

// FolderReport summarizes one folder.
type FolderReport struct {
	ID     string        `yaml:"id"`
	Name   string        `yaml:"name"`
	Images []ImageReport `yaml:"images"`
}

// ImageReport summarizes one image.
type ImageReport struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description,omitempty"`
	OCRTexts    []string `yaml:"ocrtexts,omitempty"`
}

// BuildReport assembles the report from a state tree. Images are grouped
// under their owning folder; the "all" pseudo-folder lists only unfiled
// images so nothing appears twice.
func BuildReport(app models.AppState) Report {
	report := Report{
		GeneratedAt: time.Now().Format("2006-01-02_15-04-05"),
		ImageCount:  len(app.Images),
		FolderCount: len(app.Folders),
	}

	for _, f := range app.Folders {
		fr := FolderReport{ID: f.ID, Name: f.Name}
		for _, img := range app.Images {
			if img.FolderID != f.ID {
				continue
			}
			texts := make([]string, 0, len(img.OCRTexts))
			for _, t := range img.OCRTexts {
				texts = append(texts, t.Text)
			}
			fr.Images = append(fr.Images, ImageReport{
				ID:          img.ID,
				Name:        img.Name,
				Category:    img.Category,
				Description: img.Description,
				OCRTexts:    texts,
			})
		}
		report.Folders = append(report.Folders, fr)
	}

	return report
}

// WriteYAML writes the report to path.
func WriteYAML(path string, app models.AppState) error {
	data, err := yaml.Marshal(BuildReport(app))
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
