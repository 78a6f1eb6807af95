package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/peterbourgon/diskv/v3"

	"github.com/picstash/picstash/internal/models"
)

// StateKey is the single fixed key the whole AppState blob lives under.
const StateKey = "picstash-app-state"

// Store persists the serialized AppState in a local key-value store.
type Store struct {
	d *diskv.Diskv
}

// Open creates a Store rooted at the configured base path.
func Open(cfg Config) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load storage config: %w", err)
		}
	}

	return &Store{d: diskv.New(diskv.Options{
		BasePath:     cfg.BasePath(),
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

// Load reads the persisted AppState. Missing or unparseable content falls
// back to the default tree; it is never an error.
func (s *Store) Load() models.AppState {
	raw, err := s.d.Read(StateKey)
	if err != nil {
		slog.Debug("No saved state, starting from defaults", "key", StateKey)
		return models.DefaultAppState()
	}

	var app models.AppState
	if err := json.Unmarshal(raw, &app); err != nil {
		slog.Warn("Saved state is unreadable, starting from defaults", "key", StateKey, "err", err)
		return models.DefaultAppState()
	}

	return app.Normalize()
}

// Save writes the complete AppState blob. Every save replaces the whole
// tree; there are no partial writes.
func (s *Store) Save(app models.AppState) error {
	raw, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if err := s.d.Write(StateKey, raw); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// Erase removes the persisted blob. Used by tests and the reset path.
func (s *Store) Erase() error {
	if err := s.d.Erase(StateKey); err != nil {
		return fmt.Errorf("failed to erase state: %w", err)
	}
	return nil
}
