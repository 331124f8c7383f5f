package handlers

import (
	"github.com/gofiber/fiber/v3"

	"paddock/internal/config"
	"paddock/internal/standings"
)

// SeasonOption is one entry of the season dropdown: the full identifier
// as the option value, the shortened label as its text.
type SeasonOption struct {
	Value string
	Label string
}

// SeasonOptions derives the dropdown entries from a document: one
// option per distinct season, in document order.
func SeasonOptions(doc *standings.Document) []SeasonOption {
	if doc == nil {
		return nil
	}
	seasons := doc.Seasons()
	options := make([]SeasonOption, 0, len(seasons))
	for _, s := range seasons {
		options = append(options, SeasonOption{
			Value: s,
			Label: standings.SeasonLabel(s),
		})
	}
	return options
}

// PageHandler renders the HTML pages.
type PageHandler struct {
	store *standings.Store
	cfg   *config.Config
}

// NewPageHandler creates a page handler.
func NewPageHandler(store *standings.Store, cfg *config.Config) *PageHandler {
	return &PageHandler{store: store, cfg: cfg}
}

// Index renders the landing page with the season dropdown. When no
// document has been loaded yet the page shows a visible failure state
// instead of an empty dropdown pretending everything is fine.
func (h *PageHandler) Index(c fiber.Ctx) error {
	doc, loadedAt, lastErr := h.store.Snapshot()

	data := fiber.Map{
		"Title":      h.cfg.SiteTitle,
		"SiteTitle":  h.cfg.SiteTitle,
		"SiteFooter": h.cfg.SiteFooter,
		"Seasons":    SeasonOptions(doc),
	}
	if doc != nil {
		data["LoadedAt"] = loadedAt.Format("2006-01-02 15:04 MST")
	} else {
		msg := "Standings are unavailable right now."
		if lastErr != nil {
			msg = "Standings are unavailable right now: " + lastErr.Error()
		}
		data["LoadError"] = msg
	}

	return c.Render("index", data)
}
