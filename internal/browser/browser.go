// Package browser is the boundary to the headless browser: the engine
// contract the rest of the job depends on, executable resolution, the
// scoped session and the concrete playwright and chromedp engines.
package browser

import (
	"context"
	"fmt"
	"time"

	"go-jobpulse/internal/config"
)

// LaunchOptions configure a browser process.
type LaunchOptions struct {
	ExecutablePath string
	Headless       bool
	Args           []string
}

// PageOptions configure a new page.
type PageOptions struct {
	Width     int
	Height    int
	UserAgent string
}

// Engine launches browser sessions.
type Engine interface {
	Name() string
	Launch(ctx context.Context, opts LaunchOptions) (Session, error)
}

// Session is one running browser. Close must be safe to call once per
// successful Launch.
type Session interface {
	NewPage(ctx context.Context, opts PageOptions) (Page, error)
	Close() error
}

// Page is the subset of page automation the scraper uses.
type Page interface {
	// Goto waits for DOMContentLoaded only, bounded by timeout.
	Goto(ctx context.Context, url string, timeout time.Duration) error
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	// Content returns the serialized DOM of the current document.
	Content(ctx context.Context) (string, error)
	URL() string
	Screenshot(ctx context.Context, path string, fullPage bool) error
}

// LaunchArgs are the flags every engine passes to Chromium: sandbox off for
// containers, shared memory off for small /dev/shm, automation banner off.
var LaunchArgs = []string{
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-dev-shm-usage",
	"--disable-blink-features=AutomationControlled",
}

// NewEngine returns the engine named in cfg.
func NewEngine(cfg config.Browser) (Engine, error) {
	switch cfg.Engine {
	case config.EnginePlaywright:
		return NewPlaywright(), nil
	case config.EngineChromedp:
		return NewChromedp(), nil
	default:
		return nil, fmt.Errorf("unknown browser engine %q", cfg.Engine)
	}
}

// remaining returns the smaller of timeout and the time left on ctx.
func remaining(ctx context.Context, timeout time.Duration) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout || timeout <= 0 {
			return left
		}
	}
	return timeout
}
