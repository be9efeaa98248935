package tournament

import (
	"strings"
	"time"
)

const (
	StatusLive     = "live"
	StatusUpcoming = "upcoming"
	StatusFinished = "finished"
	StatusUnknown  = "unknown"
)

// Tournament is the unit of identity for match lookups. It lives only as
// long as the cache entry or the archive record that cites it.
type Tournament struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Status     string     `json:"status"`
	DateStart  string     `json:"dateStart,omitempty"`
	DateEnd    string     `json:"dateEnd,omitempty"`
	ParsedDate *time.Time `json:"parsedDate,omitempty"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	// Month is the fallback display label when no full date could be parsed.
	Month string `json:"month,omitempty"`
}

func NormalizeStatus(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StatusLive, "in progress", "ongoing":
		return StatusLive
	case StatusUpcoming, "next", "scheduled":
		return StatusUpcoming
	case StatusFinished, "past", "completed", "ended":
		return StatusFinished
	default:
		return StatusUnknown
	}
}

// DeriveStatus buckets a tournament by comparing its start/end dates against
// now using date-only comparison (time of day zeroed).
func DeriveStatus(start, end *time.Time, now time.Time) string {
	today := truncateToDay(now)

	if start != nil && end != nil {
		s, e := truncateToDay(*start), truncateToDay(*end)
		switch {
		case today.Before(s):
			return StatusUpcoming
		case today.After(e):
			return StatusFinished
		default:
			return StatusLive
		}
	}
	if start != nil {
		if today.Before(truncateToDay(*start)) {
			return StatusUpcoming
		}
		return StatusLive
	}
	if end != nil {
		if today.After(truncateToDay(*end)) {
			return StatusFinished
		}
		return StatusLive
	}
	return StatusUnknown
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StatusRank orders tournaments for listings: live first, then upcoming,
// then finished, unknown last.
func StatusRank(status string) int {
	switch status {
	case StatusLive:
		return 0
	case StatusUpcoming:
		return 1
	case StatusFinished:
		return 2
	default:
		return 3
	}
}

var bigTierMarkers = []string{"major", "p1", "premier padel p1", "master final"}

// IsBigTier reports whether a tournament name marks a Major/P1-tier event.
// Big matches drive the weighted head-to-head subset.
func IsBigTier(name string) bool {
	lowered := strings.ToLower(name)
	for _, marker := range bigTierMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
