package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to limit candidates that look like input, closest first.
// Matching is case-insensitive and ignores candidates that are too far off to
// be a typo.
func Suggest(candidates []string, input string, limit int) []string {
	type scored struct {
		name string
		dist int
	}

	needle := strings.ToLower(input)
	maxDist := max(2, len(needle)/3)

	var matches []scored
	for _, c := range candidates {
		lc := strings.ToLower(c)
		dist := levenshtein.ComputeDistance(needle, lc)
		if strings.Contains(lc, needle) && needle != "" {
			dist = min(dist, 1)
		}
		if dist <= maxDist {
			matches = append(matches, scored{name: c, dist: dist})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
