package bot

import (
	"context"

	"gopkg.in/telebot.v4"

	"renderwatch/internal/models"
	"renderwatch/internal/render"
	"renderwatch/internal/repository/sqlite"
)

type API interface {
	// Handle lets you set the handler for some command name or one of the supported endpoints. It also applies middleware if such passed to the function.
	Handle(endpoint interface{}, h telebot.HandlerFunc, m ...telebot.MiddlewareFunc)
	// Start brings bot into motion by consuming incoming updates (see Bot.Updates channel).
	Start()
	// Stop gracefully shuts the poller down.
	Stop()

	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)

	Edit(msg telebot.Editable, what interface{}, opts ...interface{}) (*telebot.Message, error)

	EditReplyMarkup(msg telebot.Editable, markup *telebot.ReplyMarkup) (*telebot.Message, error)

	Delete(msg telebot.Editable) error

	ChatByID(id int64) (*telebot.Chat, error)
}

// Catalog provides the current product listing for browse sessions.
type Catalog interface {
	LoadCurrent() models.Snapshot
}

// Resolver turns remote media references into locally usable images
// and samples accent colors for card styling.
type Resolver interface {
	ResolvePDF(ctx context.Context, link, name string) *render.Handle
	ResolveImage(link string) *render.Handle
	AccentColorFile(path string) int
	AccentColorLink(ctx context.Context, link string) int
	Convert(ctx context.Context, input, outName string) (string, error)
}

// Scraper triggers a manual scrape cycle.
type Scraper interface {
	RunManual(ctx context.Context) error
}

// History is the audit trail written on forwards and read by /history.
type History interface {
	RecordForward(ctx context.Context, entryID int, name string) error
	RecentRuns(ctx context.Context, limit int) ([]sqlite.Run, error)
}
