package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/picstash/picstash/internal/models"
	"github.com/picstash/picstash/internal/storage"
	"github.com/picstash/picstash/internal/views"
)

func newLibraryCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect the persisted image library",
		Example: `  # List all folders and their images
  picstash library

  # Search across names, categories, descriptions, and OCR text
  picstash library --search receipt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(nil)
			if err != nil {
				return err
			}
			app := store.Load()

			title := color.New(color.Bold, color.Underline)
			faint := color.New(color.Faint)
			label := color.New(color.FgHiYellow)

			if search != "" {
				app.SearchQuery = search
				app.CurrentFolderID = models.AllFolderID
				matches := views.Visible(app)
				title.Printf("Search %q\n", search)
				if len(matches) == 0 {
					faint.Println("  no matches")
					return nil
				}
				for _, img := range matches {
					printImage(img, label, faint)
				}
				return nil
			}

			for _, f := range app.Folders {
				var imgs []models.ImageItem
				for _, img := range app.Images {
					if f.ID == models.AllFolderID || img.FolderID == f.ID {
						imgs = append(imgs, img)
					}
				}
				title.Printf("%s (%d)\n", f.Name, len(imgs))
				if f.ID == models.AllFolderID {
					// The all folder repeats everything; keep the listing short.
					faint.Printf("  current folder: %s, search: %q\n", app.CurrentFolderID, app.SearchQuery)
					continue
				}
				for _, img := range imgs {
					printImage(img, label, faint)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter images by text")

	return cmd
}

func printImage(img models.ImageItem, label, faint *color.Color) {
	fmt.Printf("  %s ", img.Name)
	label.Printf("[%s]\n", img.Category)
	if img.Description != "" {
		faint.Printf("    %s\n", img.Description)
	}
	if len(img.OCRTexts) > 0 {
		texts := make([]string, 0, len(img.OCRTexts))
		for _, t := range img.OCRTexts {
			texts = append(texts, t.Text)
		}
		faint.Printf("    text: %s\n", strings.Join(texts, " | "))
	}
}
