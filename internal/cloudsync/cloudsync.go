// Package cloudsync is the stand-in for cloud import/export. There is no
// real protocol behind it; operations only simulate transfer latency and
// report what would have moved.
package cloudsync

import (
	"context"
	"log/slog"
	"time"

	"github.com/picstash/picstash/internal/models"
)

// Summary describes one simulated transfer.
type Summary struct {
	Images  int           `json:"images"`
	Folders int           `json:"folders"`
	Took    time.Duration `json:"took"`
}

// Service simulates cloud transfers with a fixed delay.
type Service struct {
	delay time.Duration
}

// New creates a service; zero delay means the 1200ms default.
func New(delay time.Duration) *Service {
	if delay <= 0 {
		delay = 1200 * time.Millisecond
	}
	return &Service{delay: delay}
}

// Export pretends to push the library to the cloud.
func (s *Service) Export(ctx context.Context, app models.AppState) (Summary, error) {
	if err := s.wait(ctx); err != nil {
		return Summary{}, err
	}
	sum := Summary{Images: len(app.Images), Folders: len(app.Folders), Took: s.delay}
	slog.Info("Simulated cloud export", "images", sum.Images, "folders", sum.Folders)
	return sum, nil
}

// Import pretends to pull from the cloud. Nothing arrives; the local
// tree stays authoritative.
func (s *Service) Import(ctx context.Context, app models.AppState) (Summary, error) {
	if err := s.wait(ctx); err != nil {
		return Summary{}, err
	}
	sum := Summary{Images: len(app.Images), Folders: len(app.Folders), Took: s.delay}
	slog.Info("Simulated cloud import", "images", sum.Images, "folders", sum.Folders)
	return sum, nil
}

func (s *Service) wait(ctx context.Context) error {
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
