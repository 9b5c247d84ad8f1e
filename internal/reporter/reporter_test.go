package reporter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-jobpulse/internal/browser/browsertest"
	"go-jobpulse/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []scraper.Listing{
	{Title: "Security Analyst", Company: "Acme & Sons", Location: "Pune, India", Link: "https://www.linkedin.com/jobs/view/1"},
	{Title: scraper.Unknown, Company: scraper.Unknown, Location: scraper.Unknown, Link: scraper.NotAvailable},
}

func TestConsoleReporter_PrintListings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleReporter(&buf).PrintListings(sample))

	want := "Found 2 job(s)\n" +
		"\nJob 1:\n- Title: Security Analyst\n- Company: Acme & Sons\n- Location: Pune, India\n- URL: https://www.linkedin.com/jobs/view/1\n" +
		"\nJob 2:\n- Title: Unknown\n- Company: Unknown\n- Location: Unknown\n- URL: N/A\n"
	assert.Equal(t, want, buf.String())
}

func TestConsoleReporter_NoListings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleReporter(&buf).PrintListings(nil))
	assert.Equal(t, "Found 0 job(s)\n", buf.String())
}

func TestScreenshotter_CreatesAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots", "screenshot.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("previous run"), 0o644))

	page := &browsertest.Page{}
	require.NoError(t, NewScreenshotter(path).Capture(context.Background(), page))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, browsertest.PNGHeader, data)
	assert.Equal(t, []string{path}, page.Screenshots())
}

func TestScreenshotter_MakesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "screenshot.png")

	require.NoError(t, NewScreenshotter(path).Capture(context.Background(), &browsertest.Page{}))
	assert.FileExists(t, path)
}

func TestScreenshotter_Error(t *testing.T) {
	page := &browsertest.Page{ScreenshotErr: errors.New("page crashed")}
	err := NewScreenshotter(filepath.Join(t.TempDir(), "s.png")).Capture(context.Background(), page)
	assert.ErrorContains(t, err, "page crashed")
}

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestTelegramReporter_NotifyListings(t *testing.T) {
	fake := &fakeSender{}
	r := &TelegramReporter{bot: fake, chatID: 7}

	require.NoError(t, r.NotifyListings("https://www.linkedin.com/jobs/search/?keywords=a&location=b", sample))

	require.Len(t, fake.sent, 1)
	msg := fake.sent[0]
	assert.Equal(t, int64(7), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "Found 2 job(s)")
	assert.Contains(t, msg.Text, "Acme &amp; Sons")
	assert.Contains(t, msg.Text, "keywords=a&amp;location=b")
	assert.Contains(t, msg.Text, `<a href="https://www.linkedin.com/jobs/view/1">View Job</a>`)
	// no link line for the N/A listing
	assert.Equal(t, 1, bytes.Count([]byte(msg.Text), []byte("View Job")))
}

func TestTelegramReporter_NotifyError(t *testing.T) {
	fake := &fakeSender{}
	r := &TelegramReporter{bot: fake, chatID: 7}

	require.NoError(t, r.NotifyError(errors.New("launch <chromium> failed")))
	require.Len(t, fake.sent, 1)
	assert.Contains(t, fake.sent[0].Text, "launch &lt;chromium&gt; failed")
}

func TestTelegramReporter_SendError(t *testing.T) {
	r := &TelegramReporter{bot: &fakeSender{err: errors.New("429")}, chatID: 7}
	assert.Error(t, r.NotifyListings("u", nil))
}
