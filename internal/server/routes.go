package server

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paddock/internal/handlers"
	"paddock/internal/handlers/api"
	"paddock/internal/standings"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(store *standings.Store) {
	// Initialize handlers
	pageHandler := handlers.NewPageHandler(store, s.Cfg)
	standingsHandler := api.NewStandingsHandler(store)
	adminHandler := api.NewAdminHandler(store, s.Cfg)

	// Pages
	s.App.Get("/", pageHandler.Index)

	// JSON API
	s.App.Get("/api/seasons", standingsHandler.Seasons)
	s.App.Get("/api/status", standingsHandler.Status)
	if s.Cfg.AdminToken != "" {
		s.App.Post("/api/reload", adminHandler.Reload)
	} else {
		log.Println("ADMIN_TOKEN not set, /api/reload is disabled")
	}

	// Liveness probe
	s.App.Get("/healthz", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Prometheus scrape endpoint
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
