package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go-jobpulse/internal/browser"
	"go-jobpulse/internal/config"
)

// Launches the configured engine against a URL (default example.com) and
// saves a screenshot, to check the browser setup on a new machine.
func main() {
	fmt.Println("🌐 Testing Browser Manager...")

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	target := "https://example.com"
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	exe, err := browser.NewResolver(cfg.Browser.Executable, cfg.Browser.Candidates).Resolve()
	if err != nil {
		log.Fatalf("Failed to resolve browser: %v", err)
	}
	fmt.Printf("✅ Browser found: %s\n", exe)

	engine, err := browser.NewEngine(cfg.Browser)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	err = browser.WithSession(ctx, engine, browser.LaunchOptions{
		ExecutablePath: exe,
		Headless:       cfg.Browser.IsHeadless(),
		Args:           browser.LaunchArgs,
	}, func(sess browser.Session) error {
		fmt.Printf("✅ %s started\n", engine.Name())

		page, err := sess.NewPage(ctx, browser.PageOptions{
			Width:     cfg.Browser.Viewport.Width,
			Height:    cfg.Browser.Viewport.Height,
			UserAgent: cfg.Browser.UserAgent,
		})
		if err != nil {
			return err
		}

		fmt.Printf("🔍 Navigating to %s...\n", target)
		if err := page.Goto(ctx, target, cfg.Timeouts.Navigation); err != nil {
			return err
		}

		if err := page.Screenshot(ctx, "browser-test.png", false); err != nil {
			log.Printf("Failed to take screenshot: %v", err)
		} else {
			fmt.Println("📸 Screenshot saved: browser-test.png")
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Browser test failed: %v", err)
	}
	fmt.Println("✨ Test complete!")
}
