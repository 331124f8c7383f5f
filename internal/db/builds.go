package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrBuildNotFound = errors.New("build not found")

// Build is one archived precompute run.
type Build struct {
	ID          uuid.UUID
	Document    json.RawMessage
	SeasonCount int
	EntryCount  int
	CreatedAt   time.Time
}

// InsertBuild archives a completed precompute run and returns its id.
func (d *DB) InsertBuild(ctx context.Context, document json.RawMessage, seasonCount, entryCount int) (uuid.UUID, error) {
	var id uuid.UUID
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO builds (document, season_count, entry_count)
		VALUES ($1, $2, $3)
		RETURNING id
	`, document, seasonCount, entryCount).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// LatestBuild returns the most recently archived build.
func (d *DB) LatestBuild(ctx context.Context) (*Build, error) {
	row := d.Pool.QueryRow(ctx, `
		SELECT id, document, season_count, entry_count, created_at
		FROM builds
		ORDER BY created_at DESC
		LIMIT 1
	`)

	var b Build
	err := row.Scan(&b.ID, &b.Document, &b.SeasonCount, &b.EntryCount, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBuildNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// PruneBuilds deletes all but the newest keep builds. Returns the
// number of rows removed.
func (d *DB) PruneBuilds(ctx context.Context, keep int) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `
		DELETE FROM builds
		WHERE id NOT IN (
			SELECT id FROM builds ORDER BY created_at DESC LIMIT $1
		)
	`, keep)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
