package models

import (
	"strings"

	"github.com/google/uuid"
)

// Season is a championship season as returned by the results API.
type Season struct {
	ID      uuid.UUID `json:"id"`
	Year    int       `json:"year"`
	Current bool      `json:"current"`
}

// Category is a race class within a season (MotoGP, Moto2, ...).
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Event is a grand prix weekend within a season.
type Event struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Session is a timed session within an event. Only sprint ("SPR") and
// race ("RAC") sessions score championship points.
type Session struct {
	ID   uuid.UUID `json:"id"`
	Type string    `json:"type"`
}

// Country holds rider nationality info.
type Country struct {
	ISO  string `json:"iso"`
	Name string `json:"name"`
}

// Rider identifies a rider inside classification entries.
type Rider struct {
	ID       int      `json:"id"`
	FullName string   `json:"full_name"`
	Name     string   `json:"name"`
	Surname  string   `json:"surname"`
	Number   *int     `json:"number"`
	Country  *Country `json:"country"`
}

// DisplayName returns the rider's full name, falling back to
// "<name> <surname>" when the API leaves full_name empty.
func (r *Rider) DisplayName() string {
	if r.FullName != "" {
		return r.FullName
	}
	return strings.TrimSpace(r.Name + " " + r.Surname)
}

// Team is the squad a rider races for.
type Team struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Constructor is the bike manufacturer.
type Constructor struct {
	Name string `json:"name"`
}

// ClassificationEntry is one row of a championship or session
// classification. Session rows carry team_color/style variants that the
// standings endpoint does not.
type ClassificationEntry struct {
	Position    int          `json:"position"`
	Rider       Rider        `json:"rider"`
	Team        *Team        `json:"team"`
	Constructor *Constructor `json:"constructor"`
	Points      int          `json:"points"`
	TeamColor   string       `json:"team_color"`
	RiderColor  string       `json:"rider_color"`
	Style       string       `json:"style"`
}

// Classification wraps the "classification" array common to the
// standings and session classification endpoints.
type Classification struct {
	Classification []ClassificationEntry `json:"classification"`
}

// StandingsRow is one rider line in the precomputed standings document.
// Field tags match the cache wire format consumed by existing frontends,
// so they must not change.
type StandingsRow struct {
	Position  int    `json:"P"`
	Rider     string `json:"Rider"`
	Number    string `json:"#"`
	Points    int    `json:"Points"`
	Deficit   string `json:"Def."`
	Race      int    `json:"RAC"`
	Sprint    int    `json:"SPR"`
	FlagURL   string `json:"Country"`
	Team      string `json:"Team"`
	Bike      string `json:"Bike"`
	TeamColor string `json:"TeamColor"`
}
