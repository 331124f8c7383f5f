package api

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"paddock/internal/standings"
)

// StandingsHandler serves the read-only document endpoints.
type StandingsHandler struct {
	store *standings.Store
}

// NewStandingsHandler creates a standings API handler.
func NewStandingsHandler(store *standings.Store) *StandingsHandler {
	return &StandingsHandler{store: store}
}

// seasonResponse is one season in the /api/seasons list.
type seasonResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Seasons lists the distinct seasons of the loaded document.
func (h *StandingsHandler) Seasons(c fiber.Ctx) error {
	doc, _, lastErr := h.store.Snapshot()
	if doc == nil {
		msg := "standings document not loaded"
		if lastErr != nil {
			msg = lastErr.Error()
		}
		return jsonError(c, fiber.StatusServiceUnavailable, msg)
	}

	seasons := doc.Seasons()
	out := make([]seasonResponse, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, seasonResponse{ID: s, Label: standings.SeasonLabel(s)})
	}
	return jsonSuccess(c, out)
}

// statusResponse describes the store for /api/status.
type statusResponse struct {
	State    string     `json:"state"`
	Seasons  int        `json:"seasons"`
	Entries  int        `json:"entries"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
	LastErr  string     `json:"last_error,omitempty"`
}

// Status reports the load state of the document store.
func (h *StandingsHandler) Status(c fiber.Ctx) error {
	doc, loadedAt, lastErr := h.store.Snapshot()

	resp := statusResponse{State: h.store.State()}
	if doc != nil {
		resp.Seasons = len(doc.Seasons())
		resp.Entries = doc.Len()
		resp.LoadedAt = &loadedAt
	}
	if lastErr != nil {
		resp.LastErr = lastErr.Error()
	}
	return jsonSuccess(c, resp)
}
