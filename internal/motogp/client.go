// Package motogp is a thin client for the public MotoGP results API.
package motogp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"paddock/internal/models"
)

// DefaultBaseURL is the public results API root.
const DefaultBaseURL = "https://api.motogp.pulselive.com/motogp/v1/results"

// StatusError reports a non-2xx API response.
type StatusError struct {
	Path   string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected API status %s", e.Path, e.Status)
}

// Client calls the MotoGP results API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client. An empty baseURL selects the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// get fetches path and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Paddock/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Path: path, Code: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Seasons lists all championship seasons.
func (c *Client) Seasons(ctx context.Context) ([]models.Season, error) {
	var seasons []models.Season
	if err := c.get(ctx, "/seasons", &seasons); err != nil {
		return nil, err
	}
	return seasons, nil
}

// Categories lists the race classes of a season.
func (c *Client) Categories(ctx context.Context, seasonID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	path := fmt.Sprintf("/categories?seasonUuid=%s", seasonID)
	if err := c.get(ctx, path, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Events lists the finished events of a season. Seasons without any
// results answer 404, which is reported as an empty list.
func (c *Client) Events(ctx context.Context, seasonID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	path := fmt.Sprintf("/events?seasonUuid=%s&isFinished=true", seasonID)
	if err := c.get(ctx, path, &events); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return events, nil
}

// Sessions lists the point-scoring sessions (sprint and race) of an
// event for one category.
func (c *Client) Sessions(ctx context.Context, eventID, categoryID uuid.UUID) ([]models.Session, error) {
	var sessions []models.Session
	path := fmt.Sprintf("/sessions?eventUuid=%s&categoryUuid=%s", eventID, categoryID)
	if err := c.get(ctx, path, &sessions); err != nil {
		return nil, err
	}
	scoring := sessions[:0]
	for _, s := range sessions {
		switch s.Type {
		case "SPR", "RAC":
			scoring = append(scoring, s)
		}
	}
	return scoring, nil
}

// Standings fetches the championship classification of a season and
// category. A response without a classification array yields an empty
// classification.
func (c *Client) Standings(ctx context.Context, seasonID, categoryID uuid.UUID) (*models.Classification, error) {
	var cls models.Classification
	path := fmt.Sprintf("/standings?seasonUuid=%s&categoryUuid=%s", seasonID, categoryID)
	if err := c.get(ctx, path, &cls); err != nil {
		return nil, err
	}
	return &cls, nil
}

// SessionClassification fetches the finishing classification of one
// session.
func (c *Client) SessionClassification(ctx context.Context, sessionID uuid.UUID) (*models.Classification, error) {
	var cls models.Classification
	path := fmt.Sprintf("/session/%s/classification?test=false", sessionID)
	if err := c.get(ctx, path, &cls); err != nil {
		return nil, err
	}
	return &cls, nil
}
