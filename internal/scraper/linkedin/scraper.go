package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go-jobpulse/internal/browser"
	"go-jobpulse/internal/config"
	"go-jobpulse/internal/scraper"
	"go-jobpulse/internal/wait"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"
)

const searchBase = "https://www.linkedin.com/jobs/search/"

type LinkedInScraper struct {
	cfg   *config.Config
	sleep func(ctx context.Context, d time.Duration) error
}

func NewLinkedInScraper(cfg *config.Config) *LinkedInScraper {
	return &LinkedInScraper{cfg: cfg, sleep: sleepCtx}
}

func (s *LinkedInScraper) Name() string {
	return "LinkedIn"
}

func (s *LinkedInScraper) SearchURL() string {
	return fmt.Sprintf("%s?keywords=%s&location=%s", searchBase, encodeComponent(s.cfg.Keyword), encodeComponent(s.cfg.Location))
}

func (s *LinkedInScraper) Navigate(ctx context.Context, page browser.Page) error {
	jobSearchURL := s.SearchURL()
	log.Info().Str("keyword", s.cfg.Keyword).Str("location", s.cfg.Location).Msgf("🌐 Visiting Job Search: %s", jobSearchURL)

	if err := page.Goto(ctx, jobSearchURL, s.cfg.Timeouts.Navigation); err != nil {
		return fmt.Errorf("failed to load job search page: %w", err)
	}
	return nil
}

func (s *LinkedInScraper) AwaitResults(ctx context.Context, page browser.Page) error {
	timeout := s.cfg.Timeouts.Selector

	waits := make([]wait.Func, len(ResultContainers))
	for i, sel := range ResultContainers {
		waits[i] = func(ctx context.Context) error {
			return page.WaitForSelector(ctx, sel, timeout)
		}
	}

	idx, err := wait.FirstOf(ctx, timeout, waits...)
	if err == nil {
		log.Debug().Str("selector", ResultContainers[idx]).Msg("✅ Job list found")
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	log.Warn().Err(err).Dur("fallback", s.cfg.Timeouts.Fallback).Msg("⚠️ Job list not found, waiting before extracting anyway")
	return s.sleep(ctx, s.cfg.Timeouts.Fallback)
}

func (s *LinkedInScraper) Extract(ctx context.Context, page browser.Page) ([]scraper.Listing, error) {
	html, err := page.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("read page content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page content: %w", err)
	}

	// unparseable page URL leaves links as found
	base, _ := url.Parse(page.URL())

	listings := ExtractListings(doc, base, s.cfg.MaxListings)
	log.Info().Int("count", len(listings)).Msg("📄 Extracted job listings")
	return listings, nil
}

// encodeComponent escapes like JavaScript's encodeURIComponent, so spaces
// become %20 rather than +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
