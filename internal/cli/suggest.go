package cli

import (
	"strings"

	"dragcart/internal/model"

	"github.com/agnivade/levenshtein"
)

// suggestItem returns the known item closest to name, if any is within a
// third of its length in edits (case-insensitive).
func suggestItem(name string, known []model.Item) (model.Item, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}
	best := model.Item("")
	bestDist := -1
	for _, it := range known {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(string(it)))
		if bestDist < 0 || d < bestDist {
			best, bestDist = it, d
		}
	}
	limit := len(needle) / 3
	if limit < 1 {
		limit = 1
	}
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}
