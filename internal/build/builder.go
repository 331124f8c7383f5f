// Package build produces the precomputed standings document from the
// MotoGP results API.
package build

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"paddock/internal/models"
	"paddock/internal/standings"
)

// Options tunes a document build.
type Options struct {
	// SessionWorkers bounds concurrent session listing per season.
	SessionWorkers int
	// ClassificationWorkers caps concurrent session classification
	// fetches.
	ClassificationWorkers int
	// MaxYear skips seasons newer than this when > 0. The build still
	// lowers the ceiling further to the newest season that actually has
	// finished events.
	MaxYear int
}

// DefaultOptions mirror the upstream API's tolerance for parallel
// clients.
func DefaultOptions() Options {
	return Options{
		SessionWorkers:        10,
		ClassificationWorkers: 20,
	}
}

// API is the slice of the results client the builder needs.
type API interface {
	Seasons(ctx context.Context) ([]models.Season, error)
	Categories(ctx context.Context, seasonID uuid.UUID) ([]models.Category, error)
	Events(ctx context.Context, seasonID uuid.UUID) ([]models.Event, error)
	Sessions(ctx context.Context, eventID, categoryID uuid.UUID) ([]models.Session, error)
	Standings(ctx context.Context, seasonID, categoryID uuid.UUID) (*models.Classification, error)
	SessionClassification(ctx context.Context, sessionID uuid.UUID) (*models.Classification, error)
}

// Builder assembles the standings document.
type Builder struct {
	api  API
	opts Options
}

// New creates a builder. Zero worker counts fall back to defaults.
func New(api API, opts Options) *Builder {
	def := DefaultOptions()
	if opts.SessionWorkers <= 0 {
		opts.SessionWorkers = def.SessionWorkers
	}
	if opts.ClassificationWorkers <= 0 {
		opts.ClassificationWorkers = def.ClassificationWorkers
	}
	return &Builder{api: api, opts: opts}
}

// Run builds the full document: every season up to the newest one with
// finished events, every category within it, newest seasons first.
func (b *Builder) Run(ctx context.Context) (*standings.Document, error) {
	seasons, err := b.api.Seasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	log.Printf("Precompute: fetched %d seasons", len(seasons))

	valid := seasons[:0]
	for _, s := range seasons {
		if s.Year == 0 {
			continue
		}
		if b.opts.MaxYear > 0 && s.Year > b.opts.MaxYear {
			continue
		}
		valid = append(valid, s)
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Year > valid[j].Year })

	// The newest listed season may have no results yet. Walk down until
	// one has finished events and build from there.
	ceiling := 0
	for _, s := range valid {
		events, err := b.api.Events(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("probe events for %d: %w", s.Year, err)
		}
		if len(events) > 0 {
			ceiling = s.Year
			break
		}
		log.Printf("Precompute: season %d has no finished events, skipping", s.Year)
	}
	if ceiling == 0 {
		return nil, fmt.Errorf("no season has finished events")
	}
	log.Printf("Precompute: building seasons %d and older", ceiling)

	doc := standings.NewDocument()
	for _, s := range valid {
		if s.Year > ceiling {
			continue
		}
		if err := b.buildSeason(ctx, doc, s); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// buildSeason adds one entry per category of the season to doc.
func (b *Builder) buildSeason(ctx context.Context, doc *standings.Document, season models.Season) error {
	categories, err := b.api.Categories(ctx, season.ID)
	if err != nil {
		return fmt.Errorf("list categories for %d: %w", season.Year, err)
	}
	log.Printf("Precompute: season %d has %d categories", season.Year, len(categories))

	for _, cat := range categories {
		rows, err := b.buildStandings(ctx, season.ID, cat.ID)
		if err != nil {
			return fmt.Errorf("build %d %s: %w", season.Year, cat.Name, err)
		}
		key := DocumentKey(season.Year, cat.Name)
		if err := doc.Set(key, rows); err != nil {
			return err
		}
		log.Printf("Precompute: %s -> %d riders", key, len(rows))
	}
	return nil
}

// riderTotals accumulates sprint/race points and the best-known team
// color per rider.
type riderTotals struct {
	Sprint int
	Race   int
	Color  string
}

// buildStandings produces the rows for one season and category.
func (b *Builder) buildStandings(ctx context.Context, seasonID, categoryID uuid.UUID) ([]models.StandingsRow, error) {
	cls, err := b.api.Standings(ctx, seasonID, categoryID)
	if err != nil {
		return nil, err
	}
	entries := cls.Classification
	if len(entries) == 0 {
		return []models.StandingsRow{}, nil
	}
	leaderPoints := entries[0].Points

	sessions, err := b.collectSessions(ctx, seasonID, categoryID)
	if err != nil {
		return nil, err
	}

	totals := b.collectTotals(ctx, sessions)

	rows := make([]models.StandingsRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, buildRow(e, leaderPoints, totals[e.Rider.ID]))
	}
	return rows, nil
}

// collectSessions gathers the sprint/race sessions of every finished
// event, a bounded number of events at a time.
func (b *Builder) collectSessions(ctx context.Context, seasonID, categoryID uuid.UUID) ([]models.Session, error) {
	events, err := b.api.Events(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		sessions []models.Session
		wg       sync.WaitGroup
		sem      = make(chan struct{}, b.opts.SessionWorkers)
	)
	for _, event := range events {
		wg.Add(1)
		sem <- struct{}{}
		go func(event models.Event) {
			defer wg.Done()
			defer func() { <-sem }()
			found, err := b.api.Sessions(ctx, event.ID, categoryID)
			if err != nil {
				log.Printf("Precompute: sessions for event %s: %v", event.ID, err)
				return
			}
			mu.Lock()
			sessions = append(sessions, found...)
			mu.Unlock()
		}(event)
	}
	wg.Wait()
	return sessions, nil
}

// collectTotals fetches every session classification and folds the
// points into per-rider sprint/race totals. Individual session failures
// are logged and skipped; the championship totals from the standings
// endpoint stay authoritative.
func (b *Builder) collectTotals(ctx context.Context, sessions []models.Session) map[int]riderTotals {
	totals := make(map[int]riderTotals)
	if len(sessions) == 0 {
		return totals
	}

	workers := b.opts.ClassificationWorkers
	if len(sessions) < workers {
		workers = len(sessions)
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, workers)
	)
	for _, session := range sessions {
		wg.Add(1)
		sem <- struct{}{}
		go func(session models.Session) {
			defer wg.Done()
			defer func() { <-sem }()
			cls, err := b.api.SessionClassification(ctx, session.ID)
			if err != nil {
				log.Printf("Precompute: classification for session %s: %v", session.ID, err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, entry := range cls.Classification {
				t := totals[entry.Rider.ID]
				switch session.Type {
				case "SPR":
					t.Sprint += entry.Points
				case "RAC":
					t.Race += entry.Points
				default:
					continue
				}
				if c := RiderColor(entry); c != "" {
					t.Color = c
				}
				totals[entry.Rider.ID] = t
			}
		}(session)
	}
	wg.Wait()
	return totals
}

// buildRow converts one championship entry into a document row.
func buildRow(e models.ClassificationEntry, leaderPoints int, t riderTotals) models.StandingsRow {
	deficit := ""
	if e.Position != 1 {
		if gap := leaderPoints - e.Points; gap > 0 {
			deficit = "-" + strconv.Itoa(gap)
		} else {
			deficit = "0"
		}
	}

	number := ""
	if e.Rider.Number != nil {
		number = strconv.Itoa(*e.Rider.Number)
	}

	teamName, fallbackColor := "", ""
	if e.Team != nil {
		teamName = e.Team.Name
		fallbackColor = e.Team.Color
	}
	color := t.Color
	if color == "" {
		color = fallbackColor
	}
	if color == "" {
		color = DefaultTeamColor
	}

	bike := "N/A"
	if e.Constructor != nil && e.Constructor.Name != "" {
		bike = e.Constructor.Name
	}

	return models.StandingsRow{
		Position:  e.Position,
		Rider:     e.Rider.DisplayName(),
		Number:    number,
		Points:    e.Points,
		Deficit:   deficit,
		Race:      t.Race,
		Sprint:    t.Sprint,
		FlagURL:   FlagURL(e.Rider.Country),
		Team:      teamName,
		Bike:      bike,
		TeamColor: color,
	}
}

var keySlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// DocumentKey builds the composite key for a season year and category
// name: "2023__motogp". Category names are slugged so keys stay stable
// across trademark glyph changes in the API ("MotoGP™").
func DocumentKey(year int, categoryName string) string {
	slug := strings.ToLower(categoryName)
	slug = keySlugPattern.ReplaceAllString(slug, "")
	return strconv.Itoa(year) + standings.KeySeparator + slug
}
