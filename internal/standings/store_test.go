package standings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestStoreLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"2024__motogp": []}`))
	}))
	defer srv.Close()

	store := NewStore(NewLoader(srv.URL, 5*time.Second))
	if got := store.State(); got != StateIdle {
		t.Errorf("State() = %q, want %q", got, StateIdle)
	}

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := store.State(); got != StateReady {
		t.Errorf("State() = %q, want %q", got, StateReady)
	}

	doc, loadedAt, lastErr := store.Snapshot()
	if doc == nil || doc.Len() != 1 {
		t.Fatalf("Snapshot doc = %v", doc)
	}
	if loadedAt.IsZero() {
		t.Error("loadedAt is zero after successful load")
	}
	if lastErr != nil {
		t.Errorf("lastErr = %v, want nil", lastErr)
	}
}

func TestStoreLoadFailureLeavesStoreEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	store := NewStore(NewLoader(srv.URL, 5*time.Second))
	if err := store.Load(context.Background()); !errors.Is(err, ErrUpstreamStatus) {
		t.Fatalf("Load err = %v, want ErrUpstreamStatus", err)
	}

	doc, _, lastErr := store.Snapshot()
	if doc != nil {
		t.Errorf("doc = %v, want nil after failed first load", doc)
	}
	if lastErr == nil {
		t.Error("lastErr not recorded")
	}
	if got := store.State(); got != StateIdle {
		t.Errorf("State() = %q, want %q", got, StateIdle)
	}
}

func TestStoreFailedRefreshKeepsSnapshot(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"2024__motogp": []}`))
	}))
	defer srv.Close()

	store := NewStore(NewLoader(srv.URL, 5*time.Second))
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	fail.Store(true)
	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected refresh error, got nil")
	}

	doc, _, lastErr := store.Snapshot()
	if doc == nil || doc.Len() != 1 {
		t.Errorf("previous snapshot lost after failed refresh: %v", doc)
	}
	if lastErr == nil {
		t.Error("lastErr not recorded after failed refresh")
	}
	if got := store.State(); got != StateReady {
		t.Errorf("State() = %q, want %q", got, StateReady)
	}
}

func TestStoreConcurrentLoadRefused(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"2024__motogp": []}`))
	}))
	defer srv.Close()

	store := NewStore(NewLoader(srv.URL, 5*time.Second))

	done := make(chan error, 1)
	go func() {
		done <- store.Load(context.Background())
	}()

	// Wait until the first load is in flight.
	deadline := time.After(2 * time.Second)
	for store.State() != StateLoading {
		select {
		case <-deadline:
			t.Fatal("first load never entered loading state")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := store.Load(context.Background()); !errors.Is(err, ErrLoadInFlight) {
		t.Errorf("second Load err = %v, want ErrLoadInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Load: %v", err)
	}

	doc, _, _ := store.Snapshot()
	if doc == nil || doc.Len() != 1 {
		t.Errorf("snapshot after guarded load = %v", doc)
	}
}
