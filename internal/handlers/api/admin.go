package api

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"paddock/internal/config"
	"paddock/internal/metrics"
	"paddock/internal/standings"
)

// AdminHandler serves operator endpoints guarded by the shared admin
// token.
type AdminHandler struct {
	store *standings.Store
	cfg   *config.Config
}

// NewAdminHandler creates an admin API handler.
func NewAdminHandler(store *standings.Store, cfg *config.Config) *AdminHandler {
	return &AdminHandler{store: store, cfg: cfg}
}

// authorized checks the bearer token against the configured admin
// token. An unset token disables the endpoint entirely.
func (h *AdminHandler) authorized(c fiber.Ctx) bool {
	if h.cfg.AdminToken == "" {
		return false
	}
	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.AdminToken)) == 1
}

// Reload fetches the standings document again on demand. A reload that
// races another in-flight load is refused rather than doubled up.
func (h *AdminHandler) Reload(c fiber.Ctx) error {
	if !h.authorized(c) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	err := h.store.Load(c.Context())
	if err != nil {
		if errors.Is(err, standings.ErrLoadInFlight) {
			return jsonError(c, fiber.StatusConflict, "a load is already in flight")
		}
		metrics.RecordFetch("error")
		return jsonError(c, fiber.StatusBadGateway, "reload failed: "+err.Error())
	}
	metrics.RecordFetch("ok")

	doc, loadedAt, _ := h.store.Snapshot()
	return jsonSuccess(c, fiber.Map{
		"seasons":   len(doc.Seasons()),
		"entries":   doc.Len(),
		"loaded_at": loadedAt,
	})
}
