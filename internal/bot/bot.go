package bot

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gopkg.in/telebot.v4"

	"renderwatch/internal/config"
)

// Bot contains the bot API instance and the live interactive sessions.
type Bot struct {
	bot      API
	log      *slog.Logger
	cfg      config.Telegram
	catalog  Catalog
	resolver Resolver
	scraper  Scraper
	history  History

	mu     sync.Mutex
	notify map[string]*notifySession
	browse map[string]*browseSession
	picks  map[string]*pickSession
}

func NewBot(
	log *slog.Logger,
	cfg config.Telegram,
	catalog Catalog,
	resolver Resolver,
	history History,
) (*Bot, error) {
	tgBot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Token,
		Poller: &telebot.LongPoller{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", tgBot.Me.Username)

	botInstance := &Bot{
		bot:      tgBot,
		log:      log,
		cfg:      cfg,
		catalog:  catalog,
		resolver: resolver,
		history:  history,
		notify:   make(map[string]*notifySession),
		browse:   make(map[string]*browseSession),
		picks:    make(map[string]*pickSession),
	}

	botInstance.registerRoutes()

	return botInstance, nil
}

// SetScraper wires the manual-scrape trigger. Set after construction
// because the scheduler needs the bot as its notification sink.
func (b *Bot) SetScraper(s Scraper) {
	b.scraper = s
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands) and the static
// callback registry for interactive controls.
func (b *Bot) registerRoutes() {
	// Public routes.
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/scrape", b.scrapeHandler)
	b.bot.Handle("/render", b.renderHandler)
	b.bot.Handle("/labels", b.labelsHandler)
	b.bot.Handle("/embed", b.embedHandler)
	b.bot.Handle("/tebown", b.tebownHandler)
	b.bot.Handle("/history", b.historyHandler)

	// Interactive controls. Each unique is registered once; handlers
	// dispatch to the owning session via the callback data payload.
	b.bot.Handle(&telebot.Btn{Unique: uniqueNotifySend}, b.notifySendHandler)
	b.bot.Handle(&telebot.Btn{Unique: uniqueNotifyIgnore}, b.notifyIgnoreHandler)
	b.bot.Handle(&telebot.Btn{Unique: uniqueBrowseNav}, b.browseNavHandler)
	b.bot.Handle(&telebot.Btn{Unique: uniqueBrowseNoop}, b.browseNoopHandler)
	b.bot.Handle(&telebot.Btn{Unique: uniquePick}, b.pickHandler)
}

// gateTimeout returns the configured action-gate lifetime, defaulting
// to a minute when unset (tests construct Bot directly).
func (b *Bot) gateTimeout() time.Duration {
	if b.cfg.GateTimeout <= 0 {
		return time.Minute
	}
	return b.cfg.GateTimeout
}
