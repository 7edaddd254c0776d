package reporter

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-job-scraper/internal/export"
	"go-job-scraper/internal/search"
)

// Sender is the part of the bot API the reporter needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramReporter struct {
	bot    Sender
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return NewTelegramReporterWithSender(bot, chatID), nil
}

func NewTelegramReporterWithSender(bot Sender, chatID int64) *TelegramReporter {
	return &TelegramReporter{bot: bot, chatID: chatID}
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML //use HTML for bold/italic
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

// SummaryText renders the run statistics and where the results went.
func SummaryText(f *search.Filters, s Stats, res *export.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 <b>%s</b>", html.EscapeString(f.JobTitle))
	if f.Location != "" {
		fmt.Fprintf(&b, " in %s", html.EscapeString(f.Location))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "📦 Total jobs found: %d\n", s.Total)
	fmt.Fprintf(&b, "✅ Jobs after filtering: %d\n", s.Matched)
	for _, c := range s.BySource {
		fmt.Fprintf(&b, "• %s: %d\n", c.Source, c.Count)
	}
	switch {
	case res != nil:
		fmt.Fprintf(&b, "📁 Saved to %s: %s", res.Sink, html.EscapeString(res.Location))
	case s.Matched == 0:
		b.WriteString("❌ No matching jobs found.")
	default:
		b.WriteString("⚠️ Results could not be saved.")
	}
	return b.String()
}

func (t *TelegramReporter) SendSummary(f *search.Filters, s Stats, res *export.Result) error {
	return t.SendMessage(SummaryText(f, s, res))
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Job scraper error</b>:\n%s", html.EscapeString(errReq.Error()))
	return t.SendMessage(text)
}
