// Package browsertest provides an in-memory browser engine for tests.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go-jobpulse/internal/browser"
)

// PNGHeader is written by Page.Screenshot.
var PNGHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Engine records launches and closes.
type Engine struct {
	LaunchErr error
	PageErr   error
	Page      *Page

	mu          sync.Mutex
	launches    int
	closes      int
	launchOpts  browser.LaunchOptions
	pageOptions browser.PageOptions
}

func (e *Engine) Name() string { return "fake" }

func (e *Engine) Launch(ctx context.Context, opts browser.LaunchOptions) (browser.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.launches++
	e.launchOpts = opts
	if e.LaunchErr != nil {
		return nil, e.LaunchErr
	}
	return &session{e: e}, nil
}

func (e *Engine) Launches() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.launches
}

func (e *Engine) Closes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closes
}

func (e *Engine) LaunchOptions() browser.LaunchOptions {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.launchOpts
}

func (e *Engine) PageOptions() browser.PageOptions {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pageOptions
}

type session struct {
	e *Engine
}

func (s *session) NewPage(ctx context.Context, opts browser.PageOptions) (browser.Page, error) {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	s.e.pageOptions = opts
	if s.e.PageErr != nil {
		return nil, s.e.PageErr
	}
	if s.e.Page == nil {
		s.e.Page = &Page{}
	}
	return s.e.Page, nil
}

func (s *session) Close() error {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	s.e.closes++
	return nil
}

// Page serves HTML and reports the selectors listed in Ready as present.
// Any other selector blocks until its timeout.
type Page struct {
	HTML    string
	Ready   map[string]bool
	BaseURL string

	GotoErr       error
	ContentErr    error
	ScreenshotErr error
	// ContentPanic makes Content panic with this value when non-nil.
	ContentPanic any

	mu          sync.Mutex
	visited     []string
	waited      []string
	screenshots []string
	current     string
}

func (p *Page) Goto(ctx context.Context, url string, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visited = append(p.visited, url)
	if p.GotoErr != nil {
		return p.GotoErr
	}
	p.current = url
	return nil
}

func (p *Page) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	p.mu.Lock()
	p.waited = append(p.waited, selector)
	ready := p.Ready[selector]
	p.mu.Unlock()

	if ready {
		return nil
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return fmt.Errorf("waiting for %q: %w", selector, context.DeadlineExceeded)
	}
}

func (p *Page) Content(ctx context.Context) (string, error) {
	if p.ContentPanic != nil {
		panic(p.ContentPanic)
	}
	if p.ContentErr != nil {
		return "", p.ContentErr
	}
	return p.HTML, nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.BaseURL != "" {
		return p.BaseURL
	}
	return p.current
}

func (p *Page) Screenshot(ctx context.Context, path string, fullPage bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ScreenshotErr != nil {
		return p.ScreenshotErr
	}
	if path == "" {
		return errors.New("empty screenshot path")
	}
	if err := os.WriteFile(path, PNGHeader, 0o644); err != nil {
		return err
	}
	p.screenshots = append(p.screenshots, path)
	return nil
}

func (p *Page) Visited() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.visited...)
}

func (p *Page) Waited() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.waited...)
}

func (p *Page) Screenshots() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.screenshots...)
}
