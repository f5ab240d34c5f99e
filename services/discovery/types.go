package discovery

import "github.com/campusmatch/college-discovery-api/model"

// MatchRequest is the raw, untrusted preference payload from the web
// boundary. Streams and interests may be numeric ids or names.
type MatchRequest struct {
	Streams   []string `json:"streams"`
	Interests []string `json:"interests"`
	// Optional per-interest weights keyed the same way as Interests;
	// unweighted interests count equally
	InterestWeights map[string]float64 `json:"interest_weights,omitempty"`
	MaxFee          *float64           `json:"max_fee,omitempty" validate:"omitempty,gte=0"`
	City            string             `json:"city,omitempty" validate:"omitempty,max=100"`
	State           string             `json:"state,omitempty" validate:"omitempty,max=100"`
	Page            int                `json:"page" validate:"omitempty,gte=1"`
	PageSize        int                `json:"page_size" validate:"omitempty,gte=1"`
}

// MatchQuery is the normalized, validated form of a MatchRequest. All
// identifiers are resolved to catalog ids; it lives for one request only.
type MatchQuery struct {
	StreamIDs       []uint
	InterestIDs     []uint
	InterestWeights map[uint]float64 // equal weights when the request gave none
	MaxFee          *float64
	City            string
	State           string
	Page            int
	PageSize        int
	// Names the normalizer dropped under the "ignore" policy; surfaced as
	// warnings so the caller can tell the student
	DroppedCriteria []string
}

// ScoredCandidate is a hard-filtered college with its relevance score.
// Produced per query and discarded after assembly.
type ScoredCandidate struct {
	CollegeID        uint
	Score            float64
	Rating           float64
	MatchedInterests []uint
}

// CollegeDisplayRecord is one assembled result row
type CollegeDisplayRecord struct {
	College          model.College     `json:"college"`
	Streams          []model.Stream    `json:"streams"`
	Interests        []model.Interest  `json:"interests"`
	Fees             []model.AnnualFee `json:"fees"`
	Score            float64           `json:"score"`
	MatchedInterests []model.Interest  `json:"matched_interests"`
}

// MatchResult is the full engine response for one query
type MatchResult struct {
	Results    []CollegeDisplayRecord `json:"results"`
	TotalCount int                    `json:"total_count"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	HasMore    bool                   `json:"has_more"`
	Warnings   []string               `json:"warnings,omitempty"`
}

// candidateSet is the retriever's output: the ids that survived hard
// filtering plus per-college context the scorer reuses so it does not
// refetch fees or ratings.
type candidateSet struct {
	IDs []uint
	// Minimum matching fee per college; absence means no fee record
	MinFee map[uint]float64
	// Full records for all candidates, keyed by id
	Colleges map[uint]model.College
}
