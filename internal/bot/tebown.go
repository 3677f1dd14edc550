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
)

const uniquePick = "tebown_pick"

// convertTimeout bounds one external converter run.
const convertTimeout = 2 * time.Minute

// pickSession is a one-shot flavor selection: the user picks one of
// the matching label images and the external converter is run on it.
type pickSession struct {
	id     string
	userID int64
	links  []string
	labels []string
	msg    *telebot.Message
	timer  *time.Timer
}

// tebownHandler filters the catalog by flavor and label size and
// offers one button per distinct matching image.
func (b *Bot) tebownHandler(c telebot.Context) error {
	const opn = "bot.tebownHandler"
	log := b.log.With("op", opn)

	args := c.Args()
	if len(args) < 2 {
		return c.Send("Usage: /tebown <flavor> <size>")
	}
	flavor := strings.ToLower(args[0])
	size := strings.ToLower(args[1])
	if _, err := strconv.Atoi(args[1]); err != nil {
		return c.Send("Size must be a number.")
	}

	session := &pickSession{
		id:     uuid.NewString()[:8],
		userID: c.Sender().ID,
	}

	seen := make(map[string]bool)
	for _, product := range b.catalog.LoadCurrent().Results {
		if !strings.Contains(strings.ToLower(product.Name), flavor) {
			continue
		}
		for _, img := range matchingImages(product, size) {
			if img.Link == "" || seen[img.Link] {
				continue
			}
			seen[img.Link] = true
			session.links = append(session.links, img.Link)
			session.labels = append(session.labels, product.Name+" - "+img.Size)
		}
	}

	if len(session.links) == 0 {
		return c.Send("No products found matching that name.")
	}

	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(session.links))
	for i, label := range session.labels {
		payload := session.id + "|" + strconv.Itoa(i)
		rows = append(rows, markup.Row(markup.Data(label, uniquePick, payload)))
	}
	markup.Inline(rows...)

	msg, err := b.bot.Send(c.Chat(), "Choose your flavor and size!", markup)
	if err != nil {
		return fmt.Errorf("failed to send flavor selection: %w", err)
	}
	session.msg = msg

	b.mu.Lock()
	b.picks[session.id] = session
	b.mu.Unlock()

	session.timer = time.AfterFunc(b.gateTimeout(), func() {
		b.expirePick(session.id)
	})
	log.Info("flavor selection started", "session", session.id, "options", len(session.links))

	return nil
}

// matchingImages keeps images whose size label contains the requested
// size, ignoring case and whitespace.
func matchingImages(product models.Product, size string) []models.Asset {
	var matched []models.Asset
	for _, img := range product.Images {
		label := strings.ReplaceAll(strings.ToLower(img.Size), " ", "")
		if strings.Contains(label, size) {
			matched = append(matched, img)
		}
	}

	return matched
}

// pickHandler runs the external converter on the chosen image and
// posts the result.
func (b *Bot) pickHandler(c telebot.Context) error {
	const opn = "bot.pickHandler"
	log := b.log.With("op", opn)

	sessionID, rawIdx, found := strings.Cut(c.Data(), "|")
	if !found {
		return c.Respond(&telebot.CallbackResponse{})
	}

	idx, err := strconv.Atoi(rawIdx)

	// The gate is one-shot: validate and consume the session under the
	// same lock so a second concurrent tap cannot also pass the check.
	b.mu.Lock()
	session, ok := b.picks[sessionID]
	if ok && err == nil && idx >= 0 && idx < len(session.links) &&
		c.Sender() != nil && c.Sender().ID == session.userID {
		delete(b.picks, sessionID)
	} else {
		ok = false
	}
	b.mu.Unlock()

	if !ok {
		return c.Respond(&telebot.CallbackResponse{Text: "This selection has expired."})
	}
	if session.timer != nil {
		session.timer.Stop()
	}

	if _, err = b.bot.Edit(session.msg,
		"You have now selected: "+session.labels[idx]); err != nil {
		log.Warn("failed to collapse selection message", "error", err)
	}
	if err = c.Respond(&telebot.CallbackResponse{}); err != nil {
		log.Warn("failed to answer callback", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), convertTimeout)
	defer cancel()

	outPath, err := b.resolver.Convert(ctx, session.links[idx], "tebowned.png")
	if err != nil {
		log.Error("converter failed", "link", session.links[idx], "error", err)
		_, sendErr := b.bot.Send(c.Chat(), fmt.Sprintf("Error processing image: %v", err))
		return sendErr
	}

	photo := &telebot.Photo{File: telebot.FromDisk(outPath), Caption: "Image processed successfully!"}
	if _, err = b.bot.Send(c.Chat(), photo); err != nil {
		return fmt.Errorf("%s: failed to send processed image: %w", opn, err)
	}

	return nil
}

// expirePick drops an unanswered selection and collapses its menu.
func (b *Bot) expirePick(sessionID string) {
	b.mu.Lock()
	session, ok := b.picks[sessionID]
	delete(b.picks, sessionID)
	b.mu.Unlock()
	if !ok {
		return
	}

	if session.msg != nil {
		if _, err := b.bot.Edit(session.msg, "No selection made within 60 seconds."); err != nil {
			b.log.Warn("failed to collapse expired selection", "op", "bot.expirePick", "error", err)
		}
	}
	b.log.Debug("flavor selection expired", "session", sessionID)
}
