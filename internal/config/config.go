// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "configs/config.yaml"

	// DefaultUserAgent presents the run as a regular desktop Chrome.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// ListingLimit caps how many listings one run reports.
	ListingLimit = 2

	EnginePlaywright = "playwright"
	EngineChromedp   = "chromedp"
)

type Config struct {
	//Search criteria
	Keyword     string `yaml:"keyword"`
	Location    string `yaml:"location"`
	MaxListings int    `yaml:"max_listings"`

	//Paths
	LogPath        string `yaml:"log_path"`
	ScreenshotPath string `yaml:"screenshot_path"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	Locale   string `yaml:"locale"`
	Timezone string `yaml:"timezone" env:"TZ_NAME"`

	Browser  Browser  `yaml:"browser"`
	Timeouts Timeouts `yaml:"timeouts"`

	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

type Browser struct {
	Engine     string   `yaml:"engine"`
	Executable string   `yaml:"executable" env:"BROWSER_EXECUTABLE"`
	Candidates []string `yaml:"candidates"`
	Headless   *bool    `yaml:"headless"`
	UserAgent  string   `yaml:"user_agent"`
	Viewport   Viewport `yaml:"viewport"`
}

type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Timeouts struct {
	Navigation time.Duration `yaml:"navigation"`
	Selector   time.Duration `yaml:"selector"`
	Fallback   time.Duration `yaml:"fallback"`
}

// IsHeadless reports the headless setting, true unless explicitly disabled.
func (b Browser) IsHeadless() bool {
	return b.Headless == nil || *b.Headless
}

// TelegramEnabled reports whether both Telegram credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Load reads .env, then the YAML file at path (or JOBPULSE_CONFIG, or
// DefaultPath when path is empty), then environment overrides.
// A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("JOBPULSE_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	// seeded before decoding so an explicit max_listings: 0 is kept
	cfg := &Config{MaxListings: ListingLimit}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warn().Str("path", path).Msg("⚠️ Config file not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TZ_NAME"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("BROWSER_EXECUTABLE"); v != "" {
		c.Browser.Executable = v
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Keyword == "" {
		c.Keyword = "cybersecurity"
	}
	if c.Location == "" {
		c.Location = "India"
	}
	if c.LogPath == "" {
		c.LogPath = "latest_log.txt"
	}
	if c.ScreenshotPath == "" {
		c.ScreenshotPath = "screenshot.png"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Locale == "" {
		c.Locale = "en-IN"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}

	if c.Browser.Engine == "" {
		c.Browser.Engine = EnginePlaywright
	}
	if len(c.Browser.Candidates) == 0 {
		c.Browser.Candidates = []string{"chromium", "chromium-browser", "google-chrome-stable", "google-chrome"}
	}
	if c.Browser.UserAgent == "" {
		c.Browser.UserAgent = DefaultUserAgent
	}
	if c.Browser.Viewport.Width == 0 {
		c.Browser.Viewport.Width = 1366
	}
	if c.Browser.Viewport.Height == 0 {
		c.Browser.Viewport.Height = 768
	}

	if c.Timeouts.Navigation == 0 {
		c.Timeouts.Navigation = 30 * time.Second
	}
	if c.Timeouts.Selector == 0 {
		c.Timeouts.Selector = 10 * time.Second
	}
	if c.Timeouts.Fallback == 0 {
		c.Timeouts.Fallback = 3 * time.Second
	}
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	var errs []error

	if c.MaxListings < 0 || c.MaxListings > ListingLimit {
		errs = append(errs, fmt.Errorf("max_listings must be between 0 and %d, got %d", ListingLimit, c.MaxListings))
	}
	switch strings.ToLower(c.Browser.Engine) {
	case EnginePlaywright, EngineChromedp:
		c.Browser.Engine = strings.ToLower(c.Browser.Engine)
	default:
		errs = append(errs, fmt.Errorf("unknown browser engine %q", c.Browser.Engine))
	}
	if c.Browser.Viewport.Width < 0 || c.Browser.Viewport.Height < 0 {
		errs = append(errs, fmt.Errorf("invalid viewport %dx%d", c.Browser.Viewport.Width, c.Browser.Viewport.Height))
	}
	if c.Timeouts.Navigation < 0 || c.Timeouts.Selector < 0 || c.Timeouts.Fallback < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err))
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together"))
	}

	return errors.Join(errs...)
}
