package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/picstash/picstash/internal/analysis"
	"github.com/picstash/picstash/internal/analysis/gemini"
	"github.com/picstash/picstash/internal/analysis/offline"
	"github.com/picstash/picstash/internal/analysis/ollama"
	"github.com/picstash/picstash/internal/analysis/openai"
	"github.com/picstash/picstash/internal/autosave"
	"github.com/picstash/picstash/internal/command"
	"github.com/picstash/picstash/internal/handlers"
	"github.com/picstash/picstash/internal/ingest"
	"github.com/picstash/picstash/internal/state"
	"github.com/picstash/picstash/internal/storage"
	"github.com/picstash/picstash/internal/views"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the organizer web API",
		Long: `Starts the Picstash API on the specified port.

Uploads are classified by the configured analysis provider
(PICSTASH_PROVIDER: offline, gemini, ollama, or openai; offline needs no
credentials). State persists to the local store after every change.`,
		Example: `  # Start server on default port 8787
  picstash serve

  # Start server on custom port
  picstash serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(nil)
			if err != nil {
				return err
			}

			saved := autosave.New(0)
			defer saved.Stop()

			container := state.NewContainer(store.Load(), store, saved.Touch)
			engine := views.NewEngine()
			dispatcher := command.NewDispatcher(container)
			pipeline := ingest.NewPipeline(analyzerFromEnv(), container)

			handler := handlers.New(container, engine, pipeline, dispatcher, saved)
			defer handler.Close()

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/state", handler.HandleState)
			mux.HandleFunc("/api/upload", handler.HandleUpload)
			mux.HandleFunc("/api/search", handler.HandleSearch)
			mux.HandleFunc("/api/selection", handler.HandleSelection)
			mux.HandleFunc("/api/batchmode", handler.HandleBatchMode)
			mux.HandleFunc("/api/folders", handler.HandleFolders)
			mux.HandleFunc("/api/folders/", handler.HandleFolderDetail)
			mux.HandleFunc("/api/images", handler.HandleImages)
			mux.HandleFunc("/api/images/move", handler.HandleImageMove)
			mux.HandleFunc("/api/images/", handler.HandleImageDetail)
			mux.HandleFunc("/api/voice", handler.HandleVoice)
			mux.HandleFunc("/api/command", handler.HandleCommand)
			mux.HandleFunc("/api/cloud/", handler.HandleCloud)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Picstash API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8787", "Port to listen on")

	return cmd
}

func analyzerFromEnv() analysis.Analyzer {
	provider := os.Getenv("PICSTASH_PROVIDER")
	switch provider {
	case "gemini":
		return gemini.New()
	case "ollama":
		return ollama.New()
	case "openai":
		return openai.New()
	case "", "offline":
		return offline.New()
	default:
		slog.Warn("Unknown analysis provider, using offline", "provider", provider)
		return offline.New()
	}
}
