package reporter

import (
	"fmt"
	"html"
	"strings"

	"go-jobpulse/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/phuslu/log"
)

// Notifier receives the outcome of a run.
type Notifier interface {
	NotifyListings(searchURL string, listings []scraper.Listing) error
	NotifyError(err error) error
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramReporter struct {
	bot    sender
	chatID int64
}

// NewTelegramReporter connects to the bot API; it fails on a bad token.
func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	log.Debug().Str("bot", api.Self.UserName).Int64("chat", chatID).Msg("telegram bot ready")
	return &TelegramReporter{bot: api, chatID: chatID}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) NotifyListings(searchURL string, listings []scraper.Listing) error {
	var b strings.Builder
	fmt.Fprintf(&b, "🔎 <b>Found %d job(s)</b>\n<a href=\"%s\">Search results</a>\n", len(listings), html.EscapeString(searchURL))

	for i, job := range listings {
		fmt.Fprintf(&b, "\n%d. <b>%s</b>\n🏢 %s\n📍 %s\n",
			i+1,
			html.EscapeString(job.Title),
			html.EscapeString(job.Company),
			html.EscapeString(job.Location),
		)
		if job.Link != scraper.NotAvailable {
			fmt.Fprintf(&b, "🔗 <a href=\"%s\">View Job</a>\n", html.EscapeString(job.Link))
		}
	}
	return t.SendMessage(b.String())
}

func (t *TelegramReporter) NotifyError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Job scrape failed</b>:\n%s", html.EscapeString(errReq.Error()))
	return t.SendMessage(text)
}
