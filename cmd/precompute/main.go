// Command precompute crawls the MotoGP results API and writes the
// standings cache document that the server fetches. Run it from CI or
// cron and publish the output wherever the server's
// STANDINGS_CACHE_URL points.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"paddock/internal/build"
	"paddock/internal/config"
	"paddock/internal/db"
	"paddock/internal/motogp"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	buildCfg, err := config.LoadBuildConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	client := motogp.NewClient(buildCfg.APIBaseURL)
	builder := build.New(client, build.Options{
		SessionWorkers:        buildCfg.SessionWorkers,
		ClassificationWorkers: buildCfg.ClassificationWorkers,
		MaxYear:               buildCfg.MaxYear,
	})

	doc, err := builder.Run(ctx)
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode document: %v", err)
	}
	if err := os.WriteFile(buildCfg.OutputPath, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", buildCfg.OutputPath, err)
	}
	log.Printf("Wrote %s (%d entries, %d seasons)", buildCfg.OutputPath, doc.Len(), len(doc.Seasons()))

	// Archive the build when a database is configured.
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		archive(ctx, dbURL, data, doc.Len(), len(doc.Seasons()), buildCfg.KeepBuilds)
	}
}

// archive records the finished build in Postgres and prunes old rows.
func archive(ctx context.Context, dbURL string, document []byte, entries, seasons, keep int) {
	database, err := db.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(dbURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	id, err := database.InsertBuild(ctx, document, seasons, entries)
	if err != nil {
		log.Fatalf("Failed to archive build: %v", err)
	}
	log.Printf("Archived build %s", id)

	pruned, err := database.PruneBuilds(ctx, keep)
	if err != nil {
		log.Printf("Failed to prune old builds: %v", err)
	} else if pruned > 0 {
		log.Printf("Pruned %d old builds", pruned)
	}
}
