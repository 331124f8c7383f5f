package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"paddock/internal/metrics"
	"paddock/internal/standings"
)

// Refresher re-fetches the standings document on an interval so the
// dropdown tracks newly published seasons without a restart. A failed
// refresh keeps the previous snapshot; the next attempt happens on the
// next tick.
type Refresher struct {
	store    *standings.Store
	interval time.Duration
}

// NewRefresher creates a refresher for the store.
func NewRefresher(store *standings.Store, interval time.Duration) *Refresher {
	return &Refresher{store: store, interval: interval}
}

// Start begins the background refresh loop. It blocks until ctx is
// cancelled.
func (r *Refresher) Start(ctx context.Context) {
	log.Printf("Refresher started (interval: %v)", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh performs one load attempt.
func (r *Refresher) refresh(ctx context.Context) {
	err := r.store.Load(ctx)
	switch {
	case err == nil:
		metrics.RecordFetch("ok")
		log.Println("Refresher: standings document refreshed")
	case errors.Is(err, standings.ErrLoadInFlight):
		// Another load (e.g. an operator reload) is running.
	default:
		metrics.RecordFetch("error")
		log.Printf("Refresher: refresh failed, keeping previous snapshot: %v", err)
	}
}
