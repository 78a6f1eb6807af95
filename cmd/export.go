package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picstash/picstash/internal/export"
	"github.com/picstash/picstash/internal/storage"
)

func newExportCmd() *cobra.Command {
	var out string
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot library metadata to a file",
		Long: `Writes the library metadata (names, categories, descriptions, OCR
text, folder assignments) to a Parquet table or a YAML report. Image
payloads are not included.`,
		Example: `  # Parquet snapshot
  picstash export --out library.parquet

  # YAML report
  picstash export --format yaml --out library.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(nil)
			if err != nil {
				return err
			}
			app := store.Load()

			switch format {
			case "parquet":
				if err := export.WriteParquet(out, app); err != nil {
					return err
				}
			case "yaml":
				if err := export.WriteYAML(out, app); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format: %s (supported: parquet, yaml)", format)
			}

			fmt.Printf("Exported %d images to %s\n", len(app.Images), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "library.parquet", "Output file path")
	cmd.Flags().StringVarP(&format, "format", "f", "parquet", "Output format: parquet or yaml")

	return cmd
}
