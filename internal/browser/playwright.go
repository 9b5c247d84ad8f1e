package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightEngine drives the resolved system Chromium through the
// playwright driver. Bundled browsers are never downloaded.
type PlaywrightEngine struct{}

func NewPlaywright() *PlaywrightEngine {
	return &PlaywrightEngine{}
}

func (e *PlaywrightEngine) Name() string {
	return "playwright"
}

func (e *PlaywrightEngine) Launch(ctx context.Context, opts LaunchOptions) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run(&playwright.RunOptions{SkipInstallBrowsers: true})
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     opts.Args,
	}
	if opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ExecutablePath)
	}

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// PlaywrightManager owns the driver and the browser process.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func (pm *PlaywrightManager) NewPage(ctx context.Context, opts PageOptions) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctxOpts := playwright.BrowserNewContextOptions{}
	if opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	if opts.Width > 0 && opts.Height > 0 {
		ctxOpts.Viewport = &playwright.Size{Width: opts.Width, Height: opts.Height}
	}

	browserCtx, err := pm.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	if err := browserCtx.AddInitScript(playwright.Script{Content: playwright.String(StealthScript)}); err != nil {
		return nil, fmt.Errorf("install stealth script: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &playwrightPage{page: page}, nil
}

func (pm *PlaywrightManager) Close() error {
	return errors.Join(pm.browser.Close(), pm.pw.Stop())
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Goto(ctx context.Context, url string, timeout time.Duration) error {
	ms, err := millis(ctx, timeout)
	if err != nil {
		return err
	}
	// a cancelled run abandons the load by closing the page
	stop := context.AfterFunc(ctx, func() { _ = p.page.Close() })
	defer stop()

	return awaitCtx(ctx, func() error {
		_, err := p.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(ms),
		})
		return err
	})
}

func (p *playwrightPage) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	ms, err := millis(ctx, timeout)
	if err != nil {
		return err
	}
	// the page stays open on cancel; the abandoned call ends at its own timeout
	return awaitCtx(ctx, func() error {
		_, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
			State:   playwright.WaitForSelectorStateAttached,
			Timeout: playwright.Float(ms),
		})
		return err
	})
}

func (p *playwrightPage) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.page.Content()
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Screenshot(ctx context.Context, path string, fullPage bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(fullPage),
		Type:     playwright.ScreenshotTypePng,
	})
	return err
}

// awaitCtx runs a blocking playwright call and returns when it finishes
// or when ctx is done, whichever comes first.
func awaitCtx(ctx context.Context, call func() error) error {
	done := make(chan error, 1)
	go func() { done <- call() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// millis converts the effective timeout into playwright's milliseconds.
func millis(ctx context.Context, timeout time.Duration) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	d := remaining(ctx, timeout)
	if d <= 0 {
		return 0, context.DeadlineExceeded
	}
	// 0 would mean "no timeout" to playwright
	return max(1, float64(d)/float64(time.Millisecond)), nil
}
