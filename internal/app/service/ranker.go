package service

import (
	"sort"

	"alpha_radar/internal/domain/entity"
)

// Rank returns a copy of scored ordered by descending score.
// Equal scores keep their input order.
func Rank(scored []entity.ScoredCandidate) []entity.ScoredCandidate {
	ranked := make([]entity.ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopN truncates a ranked list to at most n entries. n <= 0 means no limit.
func TopN(ranked []entity.ScoredCandidate, n int) []entity.ScoredCandidate {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
