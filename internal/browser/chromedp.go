package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/phuslu/log"
)

// ChromedpEngine drives the resolved Chromium directly over the DevTools
// protocol, without a driver process.
type ChromedpEngine struct{}

func NewChromedp() *ChromedpEngine {
	return &ChromedpEngine{}
}

func (e *ChromedpEngine) Name() string {
	return "chromedp"
}

func (e *ChromedpEngine) Launch(ctx context.Context, opts LaunchOptions) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", opts.Headless),
	)
	if opts.ExecutablePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecutablePath))
	}
	for _, arg := range opts.Args {
		name, value := splitFlag(arg)
		allocOpts = append(allocOpts, chromedp.Flag(name, value))
	}

	// the session outlives ctx until Close
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			log.Debug().Msgf("CHROME: "+format, args...)
		}),
	)

	// abort the startup, not the session, when ctx ends
	stop := context.AfterFunc(ctx, browserCancel)
	err := chromedp.Run(browserCtx)
	stop()
	if err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("could not start chromium: %w", err)
	}

	return &chromedpSession{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

type chromedpSession struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

func (s *chromedpSession) NewPage(ctx context.Context, opts PageOptions) (Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	p := &chromedpPage{tabCtx: tabCtx, tabCancel: tabCancel}

	// the first Run creates the target and must not carry a deadline,
	// otherwise the tab dies with it
	stop := context.AfterFunc(ctx, tabCancel)
	err := chromedp.Run(tabCtx)
	stop()
	if err != nil {
		tabCancel()
		return nil, fmt.Errorf("create tab: %w", err)
	}

	actions := []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(StealthScript).Do(ctx)
			return err
		}),
	}
	if opts.Width > 0 && opts.Height > 0 {
		actions = append(actions, chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)))
	}
	if opts.UserAgent != "" {
		actions = append(actions, emulation.SetUserAgentOverride(opts.UserAgent))
	}

	if err := p.run(ctx, 30*time.Second, actions...); err != nil {
		tabCancel()
		return nil, fmt.Errorf("create page: %w", err)
	}
	return p, nil
}

func (s *chromedpSession) Close() error {
	err := chromedp.Cancel(s.browserCtx)
	s.browserCancel()
	s.allocCancel()
	return err
}

type chromedpPage struct {
	tabCtx    context.Context
	tabCancel context.CancelFunc
	url       string
}

// run executes actions on the tab bounded by timeout and by ctx.
func (p *chromedpPage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(p.tabCtx, remaining(ctx, timeout))
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Goto waits for the load event; chromedp has no DOMContentLoaded-only
// navigation action.
func (p *chromedpPage) Goto(ctx context.Context, url string, timeout time.Duration) error {
	var current string
	if err := p.run(ctx, timeout, chromedp.Navigate(url), chromedp.Location(&current)); err != nil {
		return err
	}
	p.url = current
	return nil
}

func (p *chromedpPage) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	return p.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery))
}

func (p *chromedpPage) Content(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, 30*time.Second, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (p *chromedpPage) URL() string {
	return p.url
}

func (p *chromedpPage) Screenshot(ctx context.Context, path string, fullPage bool) error {
	var buf []byte
	action := chromedp.CaptureScreenshot(&buf)
	if fullPage {
		// quality 100 keeps PNG encoding
		action = chromedp.FullScreenshot(&buf, 100)
	}
	if err := p.run(ctx, 30*time.Second, action); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// splitFlag turns "--name=value" into a chromedp flag pair.
func splitFlag(arg string) (string, any) {
	name, value, ok := strings.Cut(strings.TrimLeft(arg, "-"), "=")
	if !ok {
		return name, true
	}
	return name, value
}
