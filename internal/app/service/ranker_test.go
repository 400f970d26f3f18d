package service

import (
	"testing"

	"alpha_radar/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symbols(in []entity.ScoredCandidate) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		out = append(out, c.Symbol())
	}
	return out
}

func TestRank_DescendingAndStable(t *testing.T) {
	in := []entity.ScoredCandidate{
		scored("A", 50),
		scored("B", 80),
		scored("C", 50),
		scored("D", 80),
		scored("E", 10),
	}

	ranked := Rank(in)
	assert.Equal(t, []string{"B", "D", "A", "C", "E"}, symbols(ranked))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, symbols(in), "input must not be reordered")
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func TestTopN_Truncates(t *testing.T) {
	ranked := Rank([]entity.ScoredCandidate{scored("A", 1), scored("B", 2), scored("C", 3)})

	top := TopN(ranked, 2)
	require.Len(t, top, 2)
	assert.Equal(t, []string{"C", "B"}, symbols(top))

	assert.Len(t, TopN(ranked, 10), 3)
	assert.Len(t, TopN(ranked, 0), 3, "non-positive n means no limit")
}
