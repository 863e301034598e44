// Package bot is the Telegram adapter: it turns inbound messages and
// commands into ledger service calls and sends exactly one reply per
// update. All ledger logic lives behind the service; nothing here
// touches the database directly.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"budgetbot/internal/core"
	"budgetbot/internal/services"
)

const (
	invalidFormatReply = "Invalid format. Use: +500 or -700"
	genericFailure     = "Something went wrong, please try again later."
	rateLimitedReply   = "Too many messages, slow down."
	exportCaption      = "Ledger exported."
	noChartDataReply   = "No data to plot for this period."

	helpText = "Commands:\n" +
		"/stats_day - statistics for today\n" +
		"/stats_week - statistics for the last 7 days\n" +
		"/stats_period YYYY-MM-DD YYYY-MM-DD - statistics for a period\n" +
		"/plot_period [username] YYYY-MM-DD YYYY-MM-DD - chart for a period\n" +
		"/export - export the ledger as xlsx\n" +
		"Send a signed amount to record an entry, e.g. +500 or -700"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	ledger      *services.LedgerService
	limiter     *chatLimiter
	pollTimeout time.Duration
}

func New(token string, ledger *services.LedgerService, ratePerMinute int, pollTimeout time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:         api,
		ledger:      ledger,
		limiter:     newChatLimiter(ratePerMinute),
		pollTimeout: pollTimeout,
	}, nil
}

// Run polls for updates until the context is cancelled. Updates are
// handled one at a time to completion; a handler error never stops the
// loop.
func (b *Bot) Run(ctx context.Context) error {
	defer b.limiter.Stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(b.pollTimeout.Seconds())
	updates := b.api.GetUpdatesChan(u)

	slog.InfoContext(ctx, "Bot polling started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	m := update.Message
	if m == nil || m.Text == "" {
		return
	}

	if !b.limiter.Allow(m.Chat.ID) {
		b.replyText(ctx, m.Chat.ID, rateLimitedReply)
		return
	}

	if m.IsCommand() {
		b.handleCommand(ctx, m)
		return
	}
	b.handleMessage(ctx, m)
}

// handleMessage treats free text as a candidate entry.
func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	amount, ok := core.ParseAmount(m.Text)
	if !ok {
		b.replyText(ctx, m.Chat.ID, invalidFormatReply)
		return
	}

	user := senderName(m)
	date := m.Time().Format(core.DateLayout)

	id, err := b.ledger.RecordEntry(ctx, user, date, amount)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to record entry",
			"user", user, "date", date, "amount", amount, "error", err)
		b.replyText(ctx, m.Chat.ID, genericFailure)
		return
	}

	slog.InfoContext(ctx, "Entry recorded via chat", "id", id, "user", user)
	b.replyText(ctx, m.Chat.ID,
		fmt.Sprintf("Recorded: %s, %s: %d", user, core.CategoryOf(amount), amount))
}

func (b *Bot) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	switch m.Command() {
	case "stats_day":
		b.statsDay(ctx, m)
	case "stats_week":
		b.statsWeek(ctx, m)
	case "stats_period":
		b.statsPeriod(ctx, m)
	case "plot_period":
		b.plotPeriod(ctx, m)
	case "export":
		b.export(ctx, m)
	case "help", "start":
		b.replyText(ctx, m.Chat.ID, helpText)
	default:
		b.replyText(ctx, m.Chat.ID, helpText)
	}
}

func (b *Bot) statsDay(ctx context.Context, m *tgbotapi.Message) {
	today := time.Now().Format(core.DateLayout)
	report, err := b.ledger.ReportForDay(ctx, today)
	if err != nil {
		slog.ErrorContext(ctx, "Day report failed", "date", today, "error", err)
		b.replyText(ctx, m.Chat.ID, genericFailure)
		return
	}
	b.replyText(ctx, m.Chat.ID, report)
}

func (b *Bot) statsWeek(ctx context.Context, m *tgbotapi.Message) {
	report, err := b.ledger.ReportForWindow(ctx, 7)
	if err != nil {
		slog.ErrorContext(ctx, "Week report failed", "error", err)
		b.replyText(ctx, m.Chat.ID, genericFailure)
		return
	}
	b.replyText(ctx, m.Chat.ID, report)
}

func (b *Bot) statsPeriod(ctx context.Context, m *tgbotapi.Message) {
	start, end, err := parseStatsPeriodArgs(m.CommandArguments())
	if err != nil {
		b.replyValidation(ctx, m.Chat.ID, err)
		return
	}

	report, err := b.ledger.ReportForRange(ctx, start, end)
	if err != nil {
		slog.ErrorContext(ctx, "Range report failed",
			"start", start, "end", end, "error", err)
		b.replyText(ctx, m.Chat.ID, genericFailure)
		return
	}
	b.replyText(ctx, m.Chat.ID, report)
}

func (b *Bot) plotPeriod(ctx context.Context, m *tgbotapi.Message) {
	user, start, end, err := parsePlotPeriodArgs(m.CommandArguments())
	if err != nil {
		b.replyValidation(ctx, m.Chat.ID, err)
		return
	}

	data, err := b.ledger.ChartForRange(ctx, start, end, user)
	if err != nil {
		slog.ErrorContext(ctx, "Chart failed",
			"start", start, "end", end, "user", user, "error", err)
		b.replyText(ctx, m.Chat.ID, genericFailure)
		return
	}
	if data == nil {
		b.replyText(ctx, m.Chat.ID, noChartDataReply)
		return
	}

	photo := tgbotapi.NewPhoto(m.Chat.ID, tgbotapi.FileBytes{
		Name:  "budget_plot.png",
		Bytes: data,
	})
	if _, err := b.api.Send(photo); err != nil {
		slog.ErrorContext(ctx, "Failed to send chart", "error", err)
	}
}

func (b *Bot) export(ctx context.Context, m *tgbotapi.Message) {
	data, err := b.ledger.ExportAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Export failed", "error", err)
		b.replyText(ctx, m.Chat.ID, genericFailure)
		return
	}

	doc := tgbotapi.NewDocument(m.Chat.ID, tgbotapi.FileBytes{
		Name:  "budget_export.xlsx",
		Bytes: data,
	})
	doc.Caption = exportCaption
	if _, err := b.api.Send(doc); err != nil {
		slog.ErrorContext(ctx, "Failed to send export", "error", err)
	}
}

// replyValidation sends the usage hint for an ArgError; anything else
// gets the generic failure text.
func (b *Bot) replyValidation(ctx context.Context, chatID int64, err error) {
	var argErr *ArgError
	if errors.As(err, &argErr) {
		b.replyText(ctx, chatID, argErr.Usage)
		return
	}
	b.replyText(ctx, chatID, genericFailure)
}

func (b *Bot) replyText(ctx context.Context, chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.ErrorContext(ctx, "Failed to send reply", "chat_id", chatID, "error", err)
	}
}

// senderName prefers the Telegram username and falls back to the
// numeric id, so entries always carry a non-empty stable identifier.
func senderName(m *tgbotapi.Message) string {
	if m.From == nil {
		return "unknown"
	}
	if m.From.UserName != "" {
		return m.From.UserName
	}
	return strconv.FormatInt(m.From.ID, 10)
}
