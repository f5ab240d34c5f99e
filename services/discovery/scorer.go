package discovery

import (
	"context"

	"github.com/campusmatch/college-discovery-api/config"
	"github.com/campusmatch/college-discovery-api/database"
)

// Scorer computes a relevance score in [0,1] per candidate from the soft
// criteria:
//
//	score = w1*interestOverlap + w2*rating/5 + w3*feeProximity
//
// The formula is deterministic: identical (candidate, query, weights)
// always yields the identical score.
type Scorer struct {
	store    database.CatalogReader
	settings config.EngineSettings
}

// NewScorer creates a scorer with the configured weights
func NewScorer(store database.CatalogReader, settings config.EngineSettings) *Scorer {
	return &Scorer{store: store, settings: settings}
}

// Score computes one ScoredCandidate per candidate, in candidate order
func (s *Scorer) Score(ctx context.Context, candidates *candidateSet, query *MatchQuery) ([]ScoredCandidate, error) {
	if len(candidates.IDs) == 0 {
		return []ScoredCandidate{}, nil
	}

	interestsByCollege := map[uint][]uint{}
	if len(query.InterestIDs) > 0 {
		var err error
		interestsByCollege, err = s.store.FindInterestsByColleges(ctx, candidates.IDs)
		if err != nil {
			return nil, &RetrievalError{Op: "load college interests", Err: err}
		}
	}

	w1, w2, w3 := s.effectiveWeights(query)

	scored := make([]ScoredCandidate, 0, len(candidates.IDs))
	for _, id := range candidates.IDs {
		college, ok := candidates.Colleges[id]
		if !ok {
			continue
		}

		overlap, matched := s.interestOverlap(query, interestsByCollege[id])
		rating := college.AverageRating / 5.0
		proximity := s.feeProximity(query, candidates, id)

		score := w1*overlap + w2*rating + w3*proximity
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}

		scored = append(scored, ScoredCandidate{
			CollegeID:        id,
			Score:            score,
			Rating:           college.AverageRating,
			MatchedInterests: matched,
		})
	}

	return scored, nil
}

// effectiveWeights renormalizes the configured weights when the interest
// signal is absent, so missing signals are not rewarded arbitrarily
func (s *Scorer) effectiveWeights(query *MatchQuery) (w1, w2, w3 float64) {
	w1 = s.settings.WeightInterest
	w2 = s.settings.WeightRating
	w3 = s.settings.WeightFee

	if len(query.InterestIDs) == 0 {
		w1 = 0
	}

	total := w1 + w2 + w3
	if total <= 0 {
		return 0, 0, 0
	}
	return w1 / total, w2 / total, w3 / total
}

// interestOverlap returns the weighted overlap ratio between the query's
// interests and the college's, plus the matched subset
func (s *Scorer) interestOverlap(query *MatchQuery, collegeInterests []uint) (float64, []uint) {
	if len(query.InterestIDs) == 0 {
		return 0, nil
	}

	has := make(map[uint]bool, len(collegeInterests))
	for _, id := range collegeInterests {
		has[id] = true
	}

	var matchedWeight, totalWeight float64
	var matched []uint
	for _, id := range query.InterestIDs {
		weight := query.InterestWeights[id]
		if weight == 0 {
			weight = 1
		}
		totalWeight += weight
		if has[id] {
			matchedWeight += weight
			matched = append(matched, id)
		}
	}

	if totalWeight == 0 {
		return 0, matched
	}
	return matchedWeight / totalWeight, matched
}

// feeProximity rewards headroom under the cap: 1 at or below half the cap,
// linear decay to 0 as the minimum matching fee approaches the cap.
// Colleges with no fee data get a fixed neutral value.
func (s *Scorer) feeProximity(query *MatchQuery, candidates *candidateSet, collegeID uint) float64 {
	if query.MaxFee == nil {
		return 1
	}

	fee, priced := candidates.MinFee[collegeID]
	if !priced {
		return s.settings.UnpricedFeeScore
	}

	cap := *query.MaxFee
	if cap <= 0 {
		return 1
	}

	half := cap / 2
	if fee <= half {
		return 1
	}
	if fee >= cap {
		return 0
	}
	return (cap - fee) / (cap - half)
}
