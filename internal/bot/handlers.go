package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/telebot.v4"
)

// scrapeTimeout bounds a manual scrape cycle end to end, external
// scraper included.
const scrapeTimeout = 10 * time.Minute

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	if err := ctx.Send("Hello! I watch the product catalog for new and updated renders."); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// scrapeHandler forces a scrape cycle against an empty baseline, so
// every current product is reported as new.
func (b *Bot) scrapeHandler(c telebot.Context) error {
	const opn = "bot.scrapeHandler"
	log := b.log.With("op", opn)

	if b.scraper == nil {
		return c.Send("Scraping is not configured.")
	}

	log.Info("Starting manual scrape...", "username", c.Sender().Username)
	if err := c.Send("Scraping..."); err != nil {
		return fmt.Errorf("failed to acknowledge scrape command: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	started := time.Now()
	if err := b.scraper.RunManual(ctx); err != nil {
		log.Error("manual scrape failed", "error", err)
		return c.Send("Scrape failed, see logs.")
	}
	log.Info("Manual scrape complete!", "took", time.Since(started))

	return c.Send("Scrape complete!")
}

// renderHandler opens a browse session over product image links.
func (b *Bot) renderHandler(c telebot.Context) error {
	return b.startBrowse(c, modeImages)
}

// labelsHandler opens a browse session over rendered pdf labels.
func (b *Bot) labelsHandler(c telebot.Context) error {
	return b.startBrowse(c, modeLabels)
}

// embedHandler posts a demo card with the user's text.
func (b *Bot) embedHandler(c telebot.Context) error {
	text := strings.TrimSpace(c.Message().Payload)
	if text == "" {
		return c.Send("Please provide text for the embed.")
	}

	card := fmt.Sprintf("Embed!\n%s\nAccent: #%06X", text, 0xA37EEC)
	if err := c.Send(card); err != nil {
		return fmt.Errorf("failed to send embed card: %w", err)
	}

	return nil
}

// historyHandler lists the latest recorded scrape cycles.
func (b *Bot) historyHandler(c telebot.Context) error {
	const opn = "bot.historyHandler"
	const limit = 10

	if b.history == nil {
		return c.Send("History is not configured.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runs, err := b.history.RecentRuns(ctx, limit)
	if err != nil {
		b.log.Warn("failed to load run history", "op", opn, "error", err)
		return c.Send("No scrape runs recorded yet.")
	}

	var sb strings.Builder
	sb.WriteString("Recent scrape runs:\n")
	for _, run := range runs {
		fmt.Fprintf(&sb, "#%d %s %s: %d products, %d changes (%s)\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04"), run.Trigger,
			run.ProductCount, run.ChangeCount, run.Status)
	}

	return c.Send(sb.String())
}
