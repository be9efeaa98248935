package match

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	CategoryMen     = "Men"
	CategoryWomen   = "Women"
	CategoryMixed   = "Mixed"
	CategoryUnknown = "unknown"
)

// Ref identifies the tournament a match belongs to.
type Ref struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Match is created transiently per scrape; archived matches are durable
// records keyed by (year, tournament id, opponents, round).
type Match struct {
	Team1      []string `json:"team1"`
	Team2      []string `json:"team2"`
	Score      []string `json:"score,omitempty"`
	Round      string   `json:"round,omitempty"`
	Category   string   `json:"category,omitempty"`
	Time       string   `json:"time,omitempty"`
	Timezone   string   `json:"timezone,omitempty"`
	Tournament *Ref     `json:"tournament,omitempty"`
	Seed1      string   `json:"seed1,omitempty"`
	Seed2      string   `json:"seed2,omitempty"`
	Archived   bool     `json:"archived,omitempty"`
	Upcoming   bool     `json:"upcoming,omitempty"`
	Year       int      `json:"year,omitempty"`
	// Date is the tournament start date for archived rows; statistics sort
	// by it descending.
	Date *time.Time `json:"date,omitempty"`
}

// SetScore is one parsed set. Malformed set strings ("W/O", retirements)
// never produce a SetScore; they stay on Match.Score untouched.
type SetScore struct {
	Games1 int
	Games2 int
}

func (s SetScore) String() string {
	return fmt.Sprintf("%d-%d", s.Games1, s.Games2)
}

// ParseSet parses a per-set string "g1-g2". The second return is false for
// anything that is not two integers joined by a dash.
func ParseSet(raw string) (SetScore, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return SetScore{}, false
	}
	g1, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	g2, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || g1 < 0 || g2 < 0 {
		return SetScore{}, false
	}
	return SetScore{Games1: g1, Games2: g2}, true
}

// SetScores returns the parsed subset of the score line. Unparseable
// fragments are skipped, never raised.
func (m Match) SetScores() []SetScore {
	out := make([]SetScore, 0, len(m.Score))
	for _, raw := range m.Score {
		if set, ok := ParseSet(raw); ok {
			out = append(out, set)
		}
	}
	return out
}

// Winner reports which team won on parsed sets: 1, 2, or 0 when undecided.
func (m Match) Winner() int {
	sets1, sets2 := 0, 0
	for _, set := range m.SetScores() {
		switch {
		case set.Games1 > set.Games2:
			sets1++
		case set.Games2 > set.Games1:
			sets2++
		}
	}
	switch {
	case sets1 > sets2:
		return 1
	case sets2 > sets1:
		return 2
	default:
		return 0
	}
}

// TotalGames sums games won per team across parsed sets.
func (m Match) TotalGames() (int, int) {
	g1, g2 := 0, 0
	for _, set := range m.SetScores() {
		g1 += set.Games1
		g2 += set.Games2
	}
	return g1, g2
}

// IsThreeSetter reports whether the match went the distance.
func (m Match) IsThreeSetter() bool {
	return len(m.SetScores()) >= 3
}

// HasTiebreak reports whether any parsed set reached 7-6 / 6-7.
func (m Match) HasTiebreak() bool {
	for _, set := range m.SetScores() {
		if (set.Games1 == 7 && set.Games2 == 6) || (set.Games1 == 6 && set.Games2 == 7) {
			return true
		}
	}
	return false
}

// GoldenSets counts 6-0 sets won per team.
func (m Match) GoldenSets() (int, int) {
	won1, won2 := 0, 0
	for _, set := range m.SetScores() {
		if set.Games1 >= 6 && set.Games2 == 0 {
			won1++
		}
		if set.Games2 >= 6 && set.Games1 == 0 {
			won2++
		}
	}
	return won1, won2
}

// IsFinal reports whether the round label denotes the title match.
func (m Match) IsFinal() bool {
	round := strings.ToLower(strings.TrimSpace(m.Round))
	return round == "final" || round == "finals"
}

func NormalizeCategory(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "men", "male", "masculino", "herren":
		return CategoryMen
	case "women", "female", "femenino", "damen":
		return CategoryWomen
	case "mixed", "mixto":
		return CategoryMixed
	default:
		return CategoryUnknown
	}
}
