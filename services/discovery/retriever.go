package discovery

import (
	"context"
	"strings"

	"github.com/campusmatch/college-discovery-api/config"
	"github.com/campusmatch/college-discovery-api/database"
	"github.com/campusmatch/college-discovery-api/model"
)

// Retriever applies hard filters: criteria that eliminate a college rather
// than rank it (stream offering, fee ceiling, location). Interests are a
// ranking signal only and never filter here.
type Retriever struct {
	store    database.CatalogReader
	settings config.EngineSettings
}

// NewRetriever creates a retriever over the catalog
func NewRetriever(store database.CatalogReader, settings config.EngineSettings) *Retriever {
	return &Retriever{store: store, settings: settings}
}

// Retrieve returns the candidate universe for a query. An empty set is a
// valid outcome, not an error; store failures surface as RetrievalError.
func (r *Retriever) Retrieve(ctx context.Context, query *MatchQuery) (*candidateSet, error) {
	var ids []uint
	var err error

	// Stream filter: union semantics. A college offering any requested
	// stream qualifies.
	if len(query.StreamIDs) > 0 {
		ids, err = r.store.FindCollegesByStreams(ctx, query.StreamIDs)
		if err != nil {
			return nil, &RetrievalError{Op: "find colleges by streams", Err: err}
		}
	} else {
		ids, err = r.store.AllCollegeIDs(ctx)
		if err != nil {
			return nil, &RetrievalError{Op: "list colleges", Err: err}
		}
	}

	colleges, err := r.store.GetCollegesByIDs(ctx, ids)
	if err != nil {
		return nil, &RetrievalError{Op: "load candidate colleges", Err: err}
	}

	// Location filter: exact, case-insensitive
	filtered := make([]model.College, 0, len(colleges))
	for _, college := range colleges {
		if query.City != "" && !strings.EqualFold(college.City, query.City) {
			continue
		}
		if query.State != "" && !strings.EqualFold(college.State, query.State) {
			continue
		}
		filtered = append(filtered, college)
	}

	candidates := &candidateSet{
		MinFee:   map[uint]float64{},
		Colleges: make(map[uint]model.College, len(filtered)),
	}

	if query.MaxFee == nil {
		for _, college := range filtered {
			candidates.IDs = append(candidates.IDs, college.ID)
			candidates.Colleges[college.ID] = college
		}
		return candidates, nil
	}

	// Fee ceiling filter. Only fees for the requested streams (or
	// college-wide rows) count when streams were specified.
	filteredIDs := make([]uint, 0, len(filtered))
	for _, college := range filtered {
		filteredIDs = append(filteredIDs, college.ID)
	}

	fees, err := r.store.FindFeesByColleges(ctx, filteredIDs, query.StreamIDs)
	if err != nil {
		return nil, &RetrievalError{Op: "load fee records", Err: err}
	}

	minFee := map[uint]float64{}
	for _, fee := range fees {
		current, ok := minFee[fee.CollegeID]
		if !ok || fee.Amount < current {
			minFee[fee.CollegeID] = fee.Amount
		}
	}

	includeUnpriced := r.settings.UnpricedCollegePolicy != "exclude"

	for _, college := range filtered {
		fee, priced := minFee[college.ID]
		if !priced {
			// No fee record at all: "fee unknown" passes by default so
			// unpriced colleges are not silently hidden
			if !includeUnpriced {
				continue
			}
			candidates.IDs = append(candidates.IDs, college.ID)
			candidates.Colleges[college.ID] = college
			continue
		}
		if fee > *query.MaxFee {
			continue
		}
		candidates.IDs = append(candidates.IDs, college.ID)
		candidates.Colleges[college.ID] = college
		candidates.MinFee[college.ID] = fee
	}

	return candidates, nil
}
