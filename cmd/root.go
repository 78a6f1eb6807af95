package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picstash",
		Short: "Personal image organizer with AI-powered classification",
		Long: `Picstash organizes uploaded images into searchable folders.

An external multimodal model classifies each image, writes a description,
and extracts on-image text with positions. The library is kept in a local
store and browsed through the web API or inspected from the CLI.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLibraryCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
