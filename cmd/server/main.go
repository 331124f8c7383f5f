package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"paddock/internal/config"
	"paddock/internal/jobs"
	"paddock/internal/metrics"
	"paddock/internal/server"
	"paddock/internal/standings"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize the document store and fetch the initial snapshot.
	// A failed initial load is not fatal: the page renders its failure
	// state and the refresher keeps trying.
	loader := standings.NewLoader(cfg.CacheURL, cfg.FetchTimeout)
	store := standings.NewStore(loader)
	metrics.Init(store)

	if err := store.Load(ctx); err != nil {
		metrics.RecordFetch("error")
		log.Printf("Initial standings load failed: %v", err)
	} else {
		metrics.RecordFetch("ok")
		doc, _, _ := store.Snapshot()
		log.Printf("Standings document loaded: %d entries, %d seasons", doc.Len(), len(doc.Seasons()))
	}

	// Background refresh
	if cfg.RefreshInterval > 0 {
		refresher := jobs.NewRefresher(store, cfg.RefreshInterval)
		go refresher.Start(ctx)
	} else {
		log.Println("Background refresh disabled")
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(store)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
