package player

import (
	"github.com/openpadel/padel-tracker/internal/domain/match"
)

// Player is a ranking-table entry. Rank stays a string because "-" is a
// valid non-numeric value on the source site.
type Player struct {
	Name     string `json:"name"`
	Rank     string `json:"rank"`
	Points   string `json:"points"`
	Country  string `json:"country,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Rankings holds both scraped ranking tables.
type Rankings struct {
	Men   []Player `json:"men"`
	Women []Player `json:"women"`
}

// ExtendedProfile decorates a ranking entry with recent archived results.
type ExtendedProfile struct {
	Player
	RecentResults []match.Match `json:"recentResults"`
}
