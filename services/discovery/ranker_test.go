package discovery

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankTotalOrder(t *testing.T) {
	ranker := NewRanker()

	scored := []ScoredCandidate{
		{CollegeID: 4, Score: 0.5, Rating: 3.0},
		{CollegeID: 2, Score: 0.9, Rating: 4.0},
		{CollegeID: 7, Score: 0.5, Rating: 4.5},
		{CollegeID: 1, Score: 0.5, Rating: 3.0},
		{CollegeID: 9, Score: 0.9, Rating: 4.0},
	}

	ranked := ranker.Rank(scored)

	expected := []uint{2, 9, 7, 1, 4}
	require.Len(t, ranked, len(expected))
	for i, id := range expected {
		assert.Equal(t, id, ranked[i].CollegeID, "position %d", i)
	}
}

func TestRankStableAcrossShuffledInput(t *testing.T) {
	ranker := NewRanker()

	// Same candidates in two different input orders must rank identically
	forward := []ScoredCandidate{
		{CollegeID: 1, Score: 0.5, Rating: 4.0},
		{CollegeID: 2, Score: 0.5, Rating: 4.0},
		{CollegeID: 3, Score: 0.5, Rating: 4.0},
	}
	backward := []ScoredCandidate{
		{CollegeID: 3, Score: 0.5, Rating: 4.0},
		{CollegeID: 2, Score: 0.5, Rating: 4.0},
		{CollegeID: 1, Score: 0.5, Rating: 4.0},
	}

	rankedForward := ranker.Rank(forward)
	rankedBackward := ranker.Rank(backward)

	for i := range rankedForward {
		assert.Equal(t, rankedForward[i].CollegeID, rankedBackward[i].CollegeID)
	}
}

func TestPaginateSlicing(t *testing.T) {
	ranker := NewRanker()

	ranked := make([]ScoredCandidate, 7)
	for i := range ranked {
		ranked[i] = ScoredCandidate{CollegeID: uint(i + 1)}
	}

	first := ranker.Paginate(ranked, 1, 3)
	assert.Equal(t, []uint{1, 2, 3}, pageIDs(first.Page))
	assert.Equal(t, 7, first.TotalCount)
	assert.True(t, first.HasMore)
	assert.Equal(t, []uint{4, 5, 6, 7}, pageIDs(first.Remainder))

	second := ranker.Paginate(ranked, 2, 3)
	assert.Equal(t, []uint{4, 5, 6}, pageIDs(second.Page))
	assert.True(t, second.HasMore)

	third := ranker.Paginate(ranked, 3, 3)
	assert.Equal(t, []uint{7}, pageIDs(third.Page))
	assert.False(t, third.HasMore)
	assert.Empty(t, third.Remainder)
}

func TestPaginateBeyondRange(t *testing.T) {
	ranker := NewRanker()

	ranked := []ScoredCandidate{{CollegeID: 1}, {CollegeID: 2}, {CollegeID: 3}}

	slice := ranker.Paginate(ranked, 999, 10)
	assert.Empty(t, slice.Page)
	assert.Equal(t, 3, slice.TotalCount)
	assert.False(t, slice.HasMore)
}

func TestPaginateExtremePageNumber(t *testing.T) {
	ranker := NewRanker()

	ranked := []ScoredCandidate{{CollegeID: 1}, {CollegeID: 2}, {CollegeID: 3}}

	// The offset multiply must not wrap for page numbers near MaxInt
	slice := ranker.Paginate(ranked, math.MaxInt, 100)
	assert.Empty(t, slice.Page)
	assert.Empty(t, slice.Remainder)
	assert.Equal(t, 3, slice.TotalCount)
	assert.False(t, slice.HasMore)

	slice = ranker.Paginate(ranked, math.MaxInt/2, math.MaxInt/2)
	assert.Empty(t, slice.Page)
	assert.False(t, slice.HasMore)
}

func TestPaginateEmptyList(t *testing.T) {
	ranker := NewRanker()

	slice := ranker.Paginate([]ScoredCandidate{}, 1, 10)
	assert.Empty(t, slice.Page)
	assert.Equal(t, 0, slice.TotalCount)
	assert.False(t, slice.HasMore)
}

func pageIDs(candidates []ScoredCandidate) []uint {
	ids := make([]uint, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.CollegeID)
	}
	return ids
}
