package main

import (
	"fmt"
	"log"

	"go-jobpulse/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Keyword: %s\n", cfg.Keyword)
	fmt.Printf("   Location: %s\n", cfg.Location)
	fmt.Printf("   Max Listings: %d\n", cfg.MaxListings)
	fmt.Printf("   Log Path: %s\n", cfg.LogPath)
	fmt.Printf("   Screenshot Path: %s\n", cfg.ScreenshotPath)
	fmt.Printf("   Engine: %s (headless: %t)\n", cfg.Browser.Engine, cfg.Browser.IsHeadless())
	fmt.Printf("   Browser Candidates: %v\n", cfg.Browser.Candidates)
	fmt.Printf("   Timeouts: nav=%s selector=%s fallback=%s\n", cfg.Timeouts.Navigation, cfg.Timeouts.Selector, cfg.Timeouts.Fallback)
	fmt.Printf("   Telegram: %t\n", cfg.TelegramEnabled())
}
