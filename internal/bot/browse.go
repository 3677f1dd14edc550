package bot

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/telebot.v4"

	"renderwatch/internal/models"
	"renderwatch/internal/render"
)

const (
	uniqueBrowseNav  = "browse_nav"
	uniqueBrowseNoop = "browse_noop"
)

type browseMode int

const (
	// modeImages pages through a product's direct image links.
	modeImages browseMode = iota
	// modeLabels pages through renders of a product's pdf labels.
	modeLabels
)

// browseSession is one interactive pager over a filtered product list.
// Only the issuing user may navigate; the gate expires after the
// configured timeout and re-renders all controls inert.
type browseSession struct {
	id       string
	userID   int64
	mode     browseMode
	products []models.Product
	timer    *time.Timer

	// mu guards the mutable page state below: handlers run on separate
	// goroutines, so two taps on the same pager may arrive concurrently.
	mu     sync.Mutex
	pager  pager
	images []render.Handle // resolved image list of the current product
	msg    *telebot.Message
	media  bool // current card is a photo message
}

// startBrowse filters the catalog by the query and opens a pager. A
// query containing "all" matches every product.
func (b *Bot) startBrowse(c telebot.Context, mode browseMode) error {
	const opn = "bot.startBrowse"
	log := b.log.With("op", opn)

	raw := strings.TrimSpace(c.Message().Payload)
	if raw == "" {
		return c.Send("Please provide a product name to search for.")
	}
	query := normalizeQuery(raw)

	if c.Chat() == nil {
		log.Error("failed to resolve chat for browse session")
		return c.Send("Could not access the channel to paginate.")
	}

	products := filterProducts(b.catalog.LoadCurrent().Results, query)
	if len(products) == 0 {
		return c.Send("No products found matching that name.")
	}

	session := &browseSession{
		id:       uuid.NewString()[:8],
		userID:   c.Sender().ID,
		mode:     mode,
		products: products,
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.gateTimeout())
	defer cancel()

	if err := b.renderBrowse(ctx, c, session); err != nil {
		log.Error("failed to render first page", "error", err)
		return c.Send("Failed to process the product render.")
	}

	b.mu.Lock()
	b.browse[session.id] = session
	b.mu.Unlock()

	session.timer = time.AfterFunc(b.gateTimeout(), func() {
		b.expireBrowse(session.id)
	})
	log.Info("browse session started", "session", session.id,
		"user", session.userID, "products", len(products))

	return nil
}

// normalizeQuery lowercases the query; a query containing "all"
// matches everything.
func normalizeQuery(raw string) string {
	query := strings.ToLower(raw)
	if strings.Contains(query, "all") {
		return ""
	}

	return query
}

// filterProducts keeps products whose name contains the query,
// case-insensitively, preserving catalog order.
func filterProducts(products []models.Product, query string) []models.Product {
	var filtered []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// renderBrowse resolves the current page and posts or edits the card.
func (b *Bot) renderBrowse(ctx context.Context, c telebot.Context, s *browseSession) error {
	product := s.products[s.pager.ProductIdx]
	s.images = b.resolvePage(ctx, product, s.mode)
	s.pager.Clamp(len(s.images))

	markup := b.browseMarkup(s)

	if len(s.images) == 0 {
		text := fmt.Sprintf("%s\nProduct ID: %d\nNo images were found for this product.",
			displayName(product.Name), product.ID)
		return b.deliver(c, s, text, markup)
	}

	current := s.images[s.pager.ImageIdx]
	color := b.pageColor(ctx, s)
	caption := fmt.Sprintf("%s\nProduct ID: %d\nImage %d of %d\nProduct %d of %d\nAccent: #%06X",
		displayName(product.Name), product.ID,
		s.pager.ImageIdx+1, len(s.images),
		s.pager.ProductIdx+1, len(s.products), color)

	photo := &telebot.Photo{Caption: caption}
	if current.Path != "" {
		photo.File = telebot.FromDisk(current.Path)
	} else {
		photo.File = telebot.FromURL(current.URL)
	}

	return b.deliver(c, s, photo, markup)
}

// resolvePage produces the image list for one product according to
// the browse mode. Labels are re-rendered on every navigation; failed
// conversions are simply missing from the page.
func (b *Bot) resolvePage(ctx context.Context, product models.Product, mode browseMode) []render.Handle {
	var handles []render.Handle

	switch mode {
	case modeImages:
		for _, img := range product.Images {
			if h := b.resolver.ResolveImage(img.Link); h != nil {
				handles = append(handles, *h)
			}
		}
	case modeLabels:
		for _, pdf := range product.PDFs {
			name := strings.TrimSuffix(path.Base(pdf.Link), ".pdf")
			if h := b.resolver.ResolvePDF(ctx, pdf.Link, name); h != nil {
				handles = append(handles, *h)
			}
		}
	}

	return handles
}

// pageColor samples the accent from the page's images in order. The
// fallback value signals a failed sample, so the next image is tried.
func (b *Bot) pageColor(ctx context.Context, s *browseSession) int {
	for _, img := range s.images {
		var color int
		if img.Path != "" {
			color = b.resolver.AccentColorFile(img.Path)
		} else {
			color = b.resolver.AccentColorLink(ctx, img.URL)
		}
		if color != render.DefaultAccent {
			return color
		}
	}

	return render.DefaultAccent
}

// deliver sends the first page and edits on every later navigation.
// Telegram cannot edit a text message into a media message or back, so
// crossing that boundary replaces the card with a fresh message.
func (b *Bot) deliver(c telebot.Context, s *browseSession, what interface{}, markup *telebot.ReplyMarkup) error {
	_, isPhoto := what.(*telebot.Photo)

	if s.msg != nil && isPhoto != s.media {
		if err := b.bot.Delete(s.msg); err != nil {
			b.log.Warn("failed to delete stale browse card", "op", "bot.deliver", "error", err)
		}
		s.msg = nil
	}

	if s.msg == nil {
		msg, err := b.bot.Send(c.Chat(), what, markup)
		if err != nil {
			return fmt.Errorf("failed to send browse card: %w", err)
		}
		s.msg = msg
		s.media = isPhoto
		return nil
	}

	if _, err := b.bot.Edit(s.msg, what, markup); err != nil {
		return fmt.Errorf("failed to edit browse card: %w", err)
	}

	return nil
}

// browseMarkup renders the four navigation controls. Telegram inline
// keyboards have no disabled state, so boundary controls are routed
// to an inert callback instead.
func (b *Bot) browseMarkup(s *browseSession) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	btn := func(label, action string) telebot.Btn {
		if s.pager.disabled(action, len(s.products), len(s.images)) {
			return markup.Data(label, uniqueBrowseNoop, s.id)
		}
		return markup.Data(label, uniqueBrowseNav, s.id+"|"+action)
	}

	markup.Inline(markup.Row(
		btn("⬅️ Product", actPrevProduct),
		btn("🖼️ Prev", actPrevImage),
		btn("📸 Next", actNextImage),
		btn("Product ➡️", actNextProduct),
	))

	return markup
}

// disabledMarkup is the all-inert control row rendered on expiry.
func disabledMarkup(sessionID string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("⬅️ Product", uniqueBrowseNoop, sessionID),
		markup.Data("🖼️ Prev", uniqueBrowseNoop, sessionID),
		markup.Data("📸 Next", uniqueBrowseNoop, sessionID),
		markup.Data("Product ➡️", uniqueBrowseNoop, sessionID),
	))

	return markup
}

// browseNavHandler applies one navigation action to its session.
func (b *Bot) browseNavHandler(c telebot.Context) error {
	const opn = "bot.browseNavHandler"

	sessionID, action, found := strings.Cut(c.Data(), "|")
	if !found {
		return c.Respond(&telebot.CallbackResponse{})
	}

	b.mu.Lock()
	session, ok := b.browse[sessionID]
	b.mu.Unlock()
	if !ok || c.Sender() == nil || c.Sender().ID != session.userID {
		// Expired session or foreign user: reject silently.
		return c.Respond(&telebot.CallbackResponse{})
	}

	session.mu.Lock()
	product := session.products[session.pager.ProductIdx]
	session.pager.Apply(action, len(session.products), imageCount(product, session.mode, len(session.images)))

	ctx, cancel := context.WithTimeout(context.Background(), b.gateTimeout())
	defer cancel()

	if err := b.renderBrowse(ctx, c, session); err != nil {
		b.log.Error("failed to re-render browse card", "op", opn, "session", sessionID, "error", err)
	}
	session.mu.Unlock()

	return c.Respond(&telebot.CallbackResponse{})
}

// browseNoopHandler answers taps on inert boundary controls.
func (b *Bot) browseNoopHandler(c telebot.Context) error {
	return c.Respond(&telebot.CallbackResponse{})
}

// imageCount is the length of the image list a navigation clamps
// against: direct images in image mode, the resolved page otherwise.
func imageCount(product models.Product, mode browseMode, resolved int) int {
	if mode == modeImages {
		return len(product.Images)
	}
	return resolved
}

// expireBrowse tears the session down and renders its controls inert.
func (b *Bot) expireBrowse(sessionID string) {
	b.mu.Lock()
	session, ok := b.browse[sessionID]
	delete(b.browse, sessionID)
	b.mu.Unlock()
	if !ok {
		return
	}

	session.mu.Lock()
	if session.msg != nil {
		if _, err := b.bot.EditReplyMarkup(session.msg, disabledMarkup(sessionID)); err != nil {
			b.log.Warn("failed to disable browse controls", "op", "bot.expireBrowse",
				"session", sessionID, "error", err)
		}
	}
	session.mu.Unlock()
	b.log.Debug("browse session expired", "session", sessionID)
}

// displayName expands the catalog's brand abbreviation.
func displayName(name string) string {
	return strings.ReplaceAll(name, "Mtn", "Mountain")
}
