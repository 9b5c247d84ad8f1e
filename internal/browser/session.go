package browser

import (
	"context"
	"fmt"

	"github.com/phuslu/log"
)

// WithSession launches a session, runs fn and closes the session exactly
// once on every exit path of fn, panics included. When Launch fails fn is
// not called and there is nothing to close.
// A failed Close is logged and does not change the result of fn.
func WithSession(ctx context.Context, engine Engine, opts LaunchOptions, fn func(Session) error) error {
	log.Info().Str("engine", engine.Name()).Bool("headless", opts.Headless).Msg("🌐 Launching browser...")
	sess, err := engine.Launch(ctx, opts)
	if err != nil {
		return fmt.Errorf("launch %s: %w", engine.Name(), err)
	}

	defer func() {
		if err := sess.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️ Failed to close browser")
			return
		}
		log.Info().Msg("🧹 Browser closed")
	}()

	return fn(sess)
}
