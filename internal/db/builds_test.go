package db

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func skipIfNoTestDB(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}
}

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()
	skipIfNoTestDB(t)

	connString := os.Getenv("TEST_DATABASE_URL")

	ctx := context.Background()
	database, err := New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM builds")
		database.Close()
	}

	// Clean before test
	database.Pool.Exec(ctx, "DELETE FROM builds")

	return database, cleanup
}

func TestInsertAndLatestBuild(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	doc := json.RawMessage(`{"2024__motogp": []}`)
	id, err := db.InsertBuild(ctx, doc, 1, 1)
	if err != nil {
		t.Fatalf("InsertBuild: %v", err)
	}

	latest, err := db.LatestBuild(ctx)
	if err != nil {
		t.Fatalf("LatestBuild: %v", err)
	}
	if latest.ID != id {
		t.Errorf("latest.ID = %s, want %s", latest.ID, id)
	}
	if latest.SeasonCount != 1 || latest.EntryCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", latest.SeasonCount, latest.EntryCount)
	}
}

func TestLatestBuildEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := db.LatestBuild(context.Background()); !errors.Is(err, ErrBuildNotFound) {
		t.Fatalf("err = %v, want ErrBuildNotFound", err)
	}
}

func TestPruneBuilds(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	doc := json.RawMessage(`{}`)
	for i := 0; i < 5; i++ {
		if _, err := db.InsertBuild(ctx, doc, 0, 0); err != nil {
			t.Fatalf("InsertBuild: %v", err)
		}
	}

	pruned, err := db.PruneBuilds(ctx, 2)
	if err != nil {
		t.Fatalf("PruneBuilds: %v", err)
	}
	if pruned != 3 {
		t.Errorf("pruned = %d, want 3", pruned)
	}
}
