// Package standings loads and serves the precomputed standings document.
//
// The document is a JSON object whose keys encode a season and a category
// joined by a double underscore ("2023__motogp"). Payloads are treated as
// opaque on the serving side; only the key set is interpreted.
package standings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// KeySeparator joins the season and category tokens of a document key.
const KeySeparator = "__"

var ErrNotObject = errors.New("standings document is not a JSON object")

// Document is an ordered view of the standings cache. Key order follows
// the document text, not Go map iteration, so season derivation is
// deterministic.
type Document struct {
	keys     []string
	payloads map[string]json.RawMessage
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{payloads: make(map[string]json.RawMessage)}
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the composite keys in document order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Payload returns the raw payload stored under key.
func (d *Document) Payload(key string) (json.RawMessage, bool) {
	p, ok := d.payloads[key]
	return p, ok
}

// Set stores payload under key, marshaling it to JSON. A repeated key
// keeps its original position.
func (d *Document) Set(key string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %q: %w", key, err)
	}
	if _, exists := d.payloads[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.payloads[key] = raw
	return nil
}

// Seasons returns the distinct season identifiers in first-appearance
// order. A season reached through several categories appears once.
func (d *Document) Seasons() []string {
	seen := make(map[string]struct{}, len(d.keys))
	var seasons []string
	for _, key := range d.keys {
		season := KeySeason(key)
		if _, ok := seen[season]; ok {
			continue
		}
		seen[season] = struct{}{}
		seasons = append(seasons, season)
	}
	return seasons
}

// KeySeason returns the season token of a composite key: everything
// before the first "__". A key without a separator is all season.
func KeySeason(key string) string {
	season, _, _ := strings.Cut(key, KeySeparator)
	return season
}

// KeyCategory returns the category token of a composite key, or "" when
// the key has no separator.
func KeyCategory(key string) string {
	_, category, _ := strings.Cut(key, KeySeparator)
	return category
}

// SeasonLabel shortens a season identifier for display: everything
// before the first "-" ("2023-spring" shows as "2023"). An identifier
// without a hyphen is returned unchanged.
func SeasonLabel(id string) string {
	label, _, _ := strings.Cut(id, "-")
	return label
}

// UnmarshalJSON decodes a JSON object preserving its key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	d.keys = nil
	d.payloads = make(map[string]json.RawMessage)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode payload for %q: %w", key, err)
		}
		if _, exists := d.payloads[key]; !exists {
			d.keys = append(d.keys, key)
		}
		d.payloads[key] = raw
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the document as a JSON object in key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(d.payloads[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
