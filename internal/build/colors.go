package build

import (
	"fmt"
	"regexp"
	"strings"

	"paddock/internal/models"
)

// DefaultTeamColor is used when no color can be recovered for a rider.
const DefaultTeamColor = "#ddd"

// The API is inconsistent about where team colors live: sometimes a
// dedicated field, sometimes buried in an inline CSS style string.
var (
	borderLeftHex = regexp.MustCompile(`border-left\s*:\s*\d+px\s+solid\s+(#[0-9A-Fa-f]{6})`)
	borderLeftRGB = regexp.MustCompile(`(?i)border-left\s*:\s*\d+px\s+solid\s+rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
	backgroundHex = regexp.MustCompile(`background-color\s*:\s*(#[0-9A-Fa-f]{6})`)
	backgroundRGB = regexp.MustCompile(`(?i)background-color\s*:\s*rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
	anyHex        = regexp.MustCompile(`#[0-9A-Fa-f]{6}`)
)

// extractBorderLeft pulls a border-left color out of a style string.
func extractBorderLeft(style string) string {
	if m := borderLeftHex.FindStringSubmatch(style); m != nil {
		return m[1]
	}
	if m := borderLeftRGB.FindStringSubmatch(style); m != nil {
		return fmt.Sprintf("rgb(%s,%s,%s)", m[1], m[2], m[3])
	}
	return ""
}

// extractBackgroundColor pulls a background-color out of a style string.
func extractBackgroundColor(style string) string {
	if m := backgroundHex.FindStringSubmatch(style); m != nil {
		return m[1]
	}
	if m := backgroundRGB.FindStringSubmatch(style); m != nil {
		return fmt.Sprintf("rgb(%s,%s,%s)", m[1], m[2], m[3])
	}
	return ""
}

// RiderColor recovers a team color from a session classification entry,
// trying the explicit fields first, then the style string, then any hex
// token anywhere in the entry.
func RiderColor(entry models.ClassificationEntry) string {
	if entry.TeamColor != "" {
		return entry.TeamColor
	}
	if entry.RiderColor != "" {
		return entry.RiderColor
	}
	if entry.Style != "" {
		if c := extractBorderLeft(entry.Style); c != "" {
			return c
		}
		if c := extractBackgroundColor(entry.Style); c != "" {
			return c
		}
	}
	if entry.Team != nil && entry.Team.Color != "" {
		return entry.Team.Color
	}
	if c := anyHex.FindString(fmt.Sprintf("%v", entry)); c != "" {
		return c
	}
	return DefaultTeamColor
}

// FlagURL returns the flag icon URL for a rider country.
func FlagURL(country *models.Country) string {
	iso := "xx"
	if country != nil && country.ISO != "" {
		iso = country.ISO
	}
	return fmt.Sprintf("https://flagicons.lipis.dev/flags/4x3/%s.svg", strings.ToLower(iso))
}
