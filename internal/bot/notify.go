package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/telebot.v4"

	"renderwatch/internal/models"
	"renderwatch/internal/render"
)

const (
	uniqueNotifySend   = "notify_send"
	uniqueNotifyIgnore = "notify_ignore"
)

// notifySession is one posted changeset batch. It owns the resolved
// attachments so a forward can re-attach the original file, and dies
// with its action gate. Entries whose card was posted stay visually
// unchanged after expiry; late taps are answered with an expiry note.
type notifySession struct {
	id          string
	entries     map[int]models.ChangeEntry
	attachments map[int]string // entry id -> local png path
	colors      map[int]int    // entry id -> accent color
	timer       *time.Timer
}

// Notify posts one interactive card per changeset entry to the
// announce chat and arms a single shared action gate for the batch.
// Implements the scheduler's notification sink.
func (b *Bot) Notify(ctx context.Context, entries []models.ChangeEntry) {
	const opn = "bot.Notify"
	log := b.log.With("op", opn)

	if len(entries) == 0 {
		return
	}

	if _, err := b.bot.ChatByID(b.cfg.AnnounceChat); err != nil {
		log.Error("failed to resolve announce chat", "chat", b.cfg.AnnounceChat, "error", err)
		return
	}

	session := &notifySession{
		id:          uuid.NewString()[:8],
		entries:     make(map[int]models.ChangeEntry, len(entries)),
		attachments: make(map[int]string, len(entries)),
		colors:      make(map[int]int, len(entries)),
	}

	for _, entry := range entries {
		session.entries[entry.ID] = entry

		color := render.DefaultAccent
		var handle *render.Handle
		if entry.PDFLink != "" {
			handle = b.resolver.ResolvePDF(ctx, entry.PDFLink, entry.Name+" "+entry.Size)
		}
		if handle != nil && handle.Path != "" {
			session.attachments[entry.ID] = handle.Path
			color = b.resolver.AccentColorFile(handle.Path)
		} else {
			log.Warn("failed to convert pdf to image", "product", entry.Name)
		}
		session.colors[entry.ID] = color

		markup := &telebot.ReplyMarkup{}
		payload := session.id + "|" + strconv.Itoa(entry.ID)
		markup.Inline(markup.Row(
			markup.Data("✅ Send", uniqueNotifySend, payload),
			markup.Data("❌ Ignore", uniqueNotifyIgnore, payload),
		))

		caption := notifyCaption(entry, color)
		var err error
		if path, ok := session.attachments[entry.ID]; ok {
			photo := &telebot.Photo{File: telebot.FromDisk(path), Caption: caption}
			_, err = b.bot.Send(telebot.ChatID(b.cfg.AnnounceChat), photo, markup)
		} else {
			_, err = b.bot.Send(telebot.ChatID(b.cfg.AnnounceChat), caption, markup)
		}
		if err != nil {
			log.Error("failed to post notification card", "product_id", entry.ID, "error", err)
			continue
		}
		log.Info("posted notification card", "product_id", entry.ID, "kind", entry.Kind)
	}

	b.mu.Lock()
	b.notify[session.id] = session
	b.mu.Unlock()

	// One shared gate for the whole batch. On expiry the cards keep
	// their buttons; late taps get an ephemeral expiry answer.
	session.timer = time.AfterFunc(b.gateTimeout(), func() {
		b.mu.Lock()
		delete(b.notify, session.id)
		b.mu.Unlock()
		log.Debug("notification gate expired", "batch", session.id)
	})
}

func notifyCaption(entry models.ChangeEntry, color int) string {
	return fmt.Sprintf("%s\nProduct ID: %d\nProduct Name: %s\nAccent: #%06X",
		entry.Kind, entry.ID, entry.Name, color)
}

// notifySendHandler forwards the original card to the forward chat.
func (b *Bot) notifySendHandler(c telebot.Context) error {
	const opn = "bot.notifySendHandler"

	session, entry, ok := b.lookupNotify(c.Data())
	if !ok {
		return c.Respond(&telebot.CallbackResponse{Text: "This action has expired."})
	}

	caption := "New Render!\n" + notifyCaption(entry, session.colors[entry.ID])

	var err error
	if path, ok := session.attachments[entry.ID]; ok {
		photo := &telebot.Photo{File: telebot.FromDisk(path), Caption: caption}
		_, err = b.bot.Send(telebot.ChatID(b.cfg.ForwardChat), photo)
	} else {
		_, err = b.bot.Send(telebot.ChatID(b.cfg.ForwardChat), caption)
	}
	if err != nil {
		b.log.Error("failed to forward card", "op", opn, "product_id", entry.ID, "error", err)
		return c.Respond(&telebot.CallbackResponse{Text: "❌ Destination channel not found."})
	}

	if b.history != nil {
		if histErr := b.history.RecordForward(context.Background(), entry.ID, entry.Name); histErr != nil {
			b.log.Warn("failed to record forward", "op", opn, "error", histErr)
		}
	}

	return c.Respond(&telebot.CallbackResponse{
		Text: fmt.Sprintf("✅ Product ID %d sent!", entry.ID),
	})
}

// notifyIgnoreHandler acknowledges a dismissal; no further effects.
func (b *Bot) notifyIgnoreHandler(c telebot.Context) error {
	_, entry, ok := b.lookupNotify(c.Data())
	if !ok {
		return c.Respond(&telebot.CallbackResponse{Text: "This action has expired."})
	}

	return c.Respond(&telebot.CallbackResponse{
		Text: fmt.Sprintf("🗑️ Product ID %d ignored.", entry.ID),
	})
}

// lookupNotify resolves a "batch|entry" callback payload to its live
// session and entry.
func (b *Bot) lookupNotify(data string) (*notifySession, models.ChangeEntry, bool) {
	batchID, rawID, found := strings.Cut(data, "|")
	if !found {
		return nil, models.ChangeEntry{}, false
	}
	entryID, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, models.ChangeEntry{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	session, ok := b.notify[batchID]
	if !ok {
		return nil, models.ChangeEntry{}, false
	}
	entry, ok := session.entries[entryID]

	return session, entry, ok
}
