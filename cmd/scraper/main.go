package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobpulse/internal/browser"
	"go-jobpulse/internal/config"
	"go-jobpulse/internal/job"
	"go-jobpulse/internal/logger"
	"go-jobpulse/internal/reporter"
	"go-jobpulse/internal/runlog"
	"go-jobpulse/internal/scraper/linkedin"

	"github.com/phuslu/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger.Init(os.Getenv("LOG_LEVEL"))

	//load config
	cfg, err := config.Load("")
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to load config")
		return 1
	}
	logger.Init(cfg.LogLevel)
	log.Info().Str("keyword", cfg.Keyword).Str("location", cfg.Location).Str("engine", cfg.Browser.Engine).Msg("🔧 Config loaded")

	//SIGINT/SIGTERM still let the browser close
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tz, _ := time.LoadLocation(cfg.Timezone) // validated by config.Load
	store, err := runlog.Open(cfg.LogPath, runlog.WithFormatter(runlog.NewFormatter(cfg.Locale, tz)))
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to open run log")
		return 1
	}

	engine, err := browser.NewEngine(cfg.Browser)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to select browser engine")
		return 1
	}

	var notifiers []reporter.Notifier
	if cfg.TelegramEnabled() {
		tg, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ Telegram disabled")
		} else {
			log.Info().Msg("🤖 Telegram reporter initialized")
			notifiers = append(notifiers, tg)
		}
	}

	runner := &job.Runner{
		Config:     cfg,
		Log:        store,
		Resolver:   browser.NewResolver(cfg.Browser.Executable, cfg.Browser.Candidates),
		Engine:     engine,
		Scraper:    linkedin.NewLinkedInScraper(cfg),
		Console:    reporter.NewConsoleReporter(os.Stdout),
		Screenshot: reporter.NewScreenshotter(cfg.ScreenshotPath),
		Notifiers:  notifiers,
	}

	if _, err := runner.Run(ctx); err != nil {
		return 1
	}
	return 0
}
