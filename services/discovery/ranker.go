package discovery

import "sort"

// Ranker orders scored candidates into a total order and slices pages.
// Ordering is score desc, then average rating desc, then college id asc,
// so ties never produce nondeterministic pagination.
type Ranker struct{}

// NewRanker creates a ranker
func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank sorts candidates into the canonical order, in place, and returns
// the same slice
func (r *Ranker) Rank(scored []ScoredCandidate) []ScoredCandidate {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Rating != scored[j].Rating {
			return scored[i].Rating > scored[j].Rating
		}
		return scored[i].CollegeID < scored[j].CollegeID
	})
	return scored
}

// pageSlice is one page of the ranked list plus what remains after it.
// The remainder feeds assembly backfill when a college vanishes.
type pageSlice struct {
	Page       []ScoredCandidate
	Remainder  []ScoredCandidate
	TotalCount int
	HasMore    bool
}

// Paginate slices the ranked list at offset (page-1)*pageSize. A page past
// the end is an empty slice, not an error.
func (r *Ranker) Paginate(ranked []ScoredCandidate, page, pageSize int) pageSlice {
	total := len(ranked)

	// page-1 > total/pageSize means the page starts past the end. Checked
	// before the multiply below: an extreme page number would overflow the
	// offset and a wrapped offset can alias an in-range page.
	if page < 1 || pageSize < 1 || page-1 > total/pageSize {
		return pageSlice{
			Page:       []ScoredCandidate{},
			Remainder:  []ScoredCandidate{},
			TotalCount: total,
			HasMore:    false,
		}
	}

	offset := (page - 1) * pageSize
	if offset >= total {
		return pageSlice{
			Page:       []ScoredCandidate{},
			Remainder:  []ScoredCandidate{},
			TotalCount: total,
			HasMore:    false,
		}
	}

	end := offset + pageSize
	if end > total {
		end = total
	}

	return pageSlice{
		Page:       ranked[offset:end],
		Remainder:  ranked[end:],
		TotalCount: total,
		HasMore:    end < total,
	}
}
