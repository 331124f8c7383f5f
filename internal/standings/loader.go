package standings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUpstreamStatus indicates the cache host answered with a non-2xx
// status.
var ErrUpstreamStatus = errors.New("unexpected upstream status")

// Loader fetches and parses the standings document from its hosting URL.
type Loader struct {
	url    string
	client *http.Client
}

// NewLoader creates a loader for the given document URL.
func NewLoader(url string, timeout time.Duration) *Loader {
	return &Loader{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch performs one GET of the document and parses the body. There is
// no retry and nothing is cached between calls; every failure is
// returned to the caller.
func (l *Loader) Fetch(ctx context.Context) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Paddock/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch standings document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read standings document: %w", err)
	}

	doc := NewDocument()
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, fmt.Errorf("parse standings document: %w", err)
	}
	return doc, nil
}
