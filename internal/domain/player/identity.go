package player

import "strings"

// IdentityResolver decides whether two scraped display names refer to the
// same player. The source site has no canonical player id, so identity is a
// pluggable strategy chain: exact normalized match, then an alias table,
// then case-insensitive bidirectional substring containment. The substring
// fallback tolerates "Galan" vs "Alejandro Galan" but can collide on short
// shared surnames; on ambiguity the first match wins.
type IdentityResolver struct {
	aliases map[string]string
}

func NewIdentityResolver(aliases map[string]string) *IdentityResolver {
	normalized := make(map[string]string, len(aliases))
	for alias, canonical := range aliases {
		normalized[Normalize(alias)] = Normalize(canonical)
	}
	return &IdentityResolver{aliases: normalized}
}

// Normalize lowercases a display name and collapses whitespace runs.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func (r *IdentityResolver) canonical(name string) string {
	normalized := Normalize(name)
	if r == nil || r.aliases == nil {
		return normalized
	}
	if canonical, ok := r.aliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// Same reports whether two display names refer to the same player.
func (r *IdentityResolver) Same(a, b string) bool {
	ca, cb := r.canonical(a), r.canonical(b)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb {
		return true
	}
	return strings.Contains(ca, cb) || strings.Contains(cb, ca)
}

// TeamContains reports whether any member of team matches name.
func (r *IdentityResolver) TeamContains(team []string, name string) bool {
	for _, member := range team {
		if r.Same(member, name) {
			return true
		}
	}
	return false
}

// TeamsEqual compares two teams as order-insensitive sets of players.
func (r *IdentityResolver) TeamsEqual(a, b []string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}

	used := make([]bool, len(b))
	for _, memberA := range a {
		matched := false
		for i, memberB := range b {
			if used[i] {
				continue
			}
			if r.Same(memberA, memberB) {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Partner returns the teammate of name within team, if any.
func (r *IdentityResolver) Partner(team []string, name string) (string, bool) {
	if !r.TeamContains(team, name) {
		return "", false
	}
	for _, member := range team {
		if !r.Same(member, name) {
			return member, true
		}
	}
	return "", false
}
