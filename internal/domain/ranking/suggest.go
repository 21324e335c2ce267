package ranking

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the reference name closest to name, for "did you mean" hints.
// A candidate qualifies when it starts with name or is within half its own
// length in edit distance. Ties go to the better-ranked item.
func (e *Evaluator) Suggest(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if _, ok := e.ranks[name]; ok {
		return name, true
	}

	best, bestDist := "", -1
	for _, it := range e.items {
		dist := levenshtein.ComputeDistance(name, it.Name)
		if strings.HasPrefix(it.Name, name) {
			dist = 0
		} else if dist > suggestLimit(it.Name) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = it.Name, dist
		}
	}
	return best, bestDist >= 0
}

func suggestLimit(candidate string) int {
	return utf8.RuneCountInString(candidate) / 2
}
