// Package job runs one scrape from log entry to browser teardown.
package job

import (
	"context"
	"fmt"
	"time"

	"go-jobpulse/internal/browser"
	"go-jobpulse/internal/config"
	"go-jobpulse/internal/reporter"
	"go-jobpulse/internal/runlog"
	"go-jobpulse/internal/scraper"

	"github.com/phuslu/log"
)

// State is a step of a run. Every run ends with ClosingBrowser then Done.
type State int

const (
	Idle State = iota
	LoggingStart
	BrowserLaunch
	Navigating
	Waiting
	Extracting
	Reporting
	ClosingBrowser
	Done
)

var stateNames = [...]string{
	Idle:           "Idle",
	LoggingStart:   "LoggingStart",
	BrowserLaunch:  "BrowserLaunch",
	Navigating:     "Navigating",
	Waiting:        "Waiting",
	Extracting:     "Extracting",
	Reporting:      "Reporting",
	ClosingBrowser: "ClosingBrowser",
	Done:           "Done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Resolver finds the browser executable.
type Resolver interface {
	Resolve() (string, error)
}

// Result describes a finished run.
type Result struct {
	Entry      runlog.Entry
	Listings   []scraper.Listing
	Screenshot string
	Trace      []State
}

// Runner wires the run steps together. Notifiers are optional.
type Runner struct {
	Config     *config.Config
	Log        *runlog.Store
	Resolver   Resolver
	Engine     browser.Engine
	Scraper    scraper.Scraper
	Console    *reporter.ConsoleReporter
	Screenshot *reporter.Screenshotter
	Notifiers  []reporter.Notifier
	Now        func() time.Time

	result Result
}

func (r *Runner) enter(s State) {
	r.result.Trace = append(r.result.Trace, s)
	log.Debug().Str("state", s.String()).Msg("job state")
}

func (r *Runner) current() State {
	if len(r.result.Trace) == 0 {
		return Idle
	}
	return r.result.Trace[len(r.result.Trace)-1]
}

// Run performs the single run. The start entry is logged before anything
// can fail, so failed runs are counted too. The browser, once launched, is
// closed on every path.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	r.result = Result{}
	r.enter(Idle)
	log.Info().Msg("🚀 Job started")

	err := r.run(ctx)

	if r.current() != ClosingBrowser {
		r.enter(ClosingBrowser)
	}
	r.enter(Done)

	if err != nil {
		log.Error().Err(err).Msg("❌ Error")
	}
	r.notify(err)
	log.Info().Msg("🎯 Job finished")

	return r.result, err
}

func (r *Runner) run(ctx context.Context) error {
	r.enter(LoggingStart)
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	entry, err := r.Log.AddEntry(now())
	if err != nil {
		return fmt.Errorf("log run start: %w", err)
	}
	r.result.Entry = entry

	r.enter(BrowserLaunch)
	executable, err := r.Resolver.Resolve()
	if err != nil {
		return fmt.Errorf("resolve browser: %w", err)
	}

	launch := browser.LaunchOptions{
		ExecutablePath: executable,
		Headless:       r.Config.Browser.IsHeadless(),
		Args:           browser.LaunchArgs,
	}
	return browser.WithSession(ctx, r.Engine, launch, func(sess browser.Session) (err error) {
		// ClosingBrowser is entered before the session closes
		defer r.enter(ClosingBrowser)
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic during %s: %v", r.current(), p)
			}
		}()
		return r.scrape(ctx, sess)
	})
}

func (r *Runner) scrape(ctx context.Context, sess browser.Session) error {
	page, err := sess.NewPage(ctx, browser.PageOptions{
		Width:     r.Config.Browser.Viewport.Width,
		Height:    r.Config.Browser.Viewport.Height,
		UserAgent: r.Config.Browser.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}

	r.enter(Navigating)
	if err := r.Scraper.Navigate(ctx, page); err != nil {
		return err
	}

	r.enter(Waiting)
	if err := r.Scraper.AwaitResults(ctx, page); err != nil {
		return fmt.Errorf("wait for results: %w", err)
	}

	r.enter(Extracting)
	listings, err := r.Scraper.Extract(ctx, page)
	if err != nil {
		return fmt.Errorf("extract listings from %s: %w", r.Scraper.Name(), err)
	}
	r.result.Listings = listings

	r.enter(Reporting)
	if err := r.Console.PrintListings(listings); err != nil {
		return fmt.Errorf("print listings: %w", err)
	}
	if err := r.Screenshot.Capture(ctx, page); err != nil {
		return err
	}
	r.result.Screenshot = r.Screenshot.Path()
	return nil
}

// notify forwards the outcome; delivery failures never fail the run.
func (r *Runner) notify(runErr error) {
	for _, n := range r.Notifiers {
		var err error
		if runErr != nil {
			err = n.NotifyError(runErr)
		} else {
			err = n.NotifyListings(r.Scraper.SearchURL(), r.result.Listings)
		}
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ Failed to send notification")
		}
	}
}
