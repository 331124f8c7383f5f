package standings

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Load states. A store starts Idle, is Loading while a fetch is in
// flight and Ready once a document has been installed. A failed first
// load returns the store to Idle.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
)

// ErrLoadInFlight is returned when a load is requested while another
// one is still running. The guard keeps duplicate triggers from
// populating the store twice.
var ErrLoadInFlight = errors.New("standings load already in flight")

// Store holds the current document snapshot and coordinates loads.
type Store struct {
	loader *Loader

	mu       sync.Mutex
	state    string
	doc      *Document
	loadedAt time.Time
	lastErr  error
}

// NewStore creates a store backed by the given loader.
func NewStore(loader *Loader) *Store {
	return &Store{loader: loader, state: StateIdle}
}

// Load fetches the document and installs it as the current snapshot.
// On failure the previous snapshot (if any) is kept and the error is
// both recorded and returned. Concurrent calls are refused with
// ErrLoadInFlight.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateLoading {
		s.mu.Unlock()
		return ErrLoadInFlight
	}
	s.state = StateLoading
	s.mu.Unlock()

	doc, err := s.loader.Fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		if s.doc != nil {
			s.state = StateReady
		} else {
			s.state = StateIdle
		}
		return err
	}

	s.doc = doc
	s.loadedAt = time.Now()
	s.lastErr = nil
	s.state = StateReady
	return nil
}

// Snapshot returns the current document, when it was loaded and the
// most recent load error. The document is nil until the first
// successful load.
func (s *Store) Snapshot() (*Document, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc, s.loadedAt, s.lastErr
}

// State reports the current load state.
func (s *Store) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
