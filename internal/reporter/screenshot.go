package reporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go-jobpulse/internal/browser"

	"github.com/phuslu/log"
)

// Screenshotter writes a full-page PNG to one fixed path, replacing the
// previous run's file.
type Screenshotter struct {
	path string
}

func NewScreenshotter(path string) *Screenshotter {
	return &Screenshotter{path: path}
}

func (s *Screenshotter) Path() string {
	return s.path
}

func (s *Screenshotter) Capture(ctx context.Context, page browser.Page) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create screenshot directory: %w", err)
		}
	}

	if err := page.Screenshot(ctx, s.path, true); err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to capture screenshot")
		return fmt.Errorf("screenshot: %w", err)
	}

	log.Info().Str("path", s.path).Msg("📸 Screenshot saved")
	return nil
}
