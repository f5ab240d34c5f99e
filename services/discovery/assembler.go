package discovery

import (
	"context"

	"github.com/campusmatch/college-discovery-api/database"
	"github.com/campusmatch/college-discovery-api/model"
)

// Assembler joins a ranked page of college ids back to full display
// records, preserving rank order. Colleges that vanished between retrieval
// and assembly (concurrent catalog changes) are dropped and the page is
// backfilled from the next-ranked candidates.
type Assembler struct {
	store database.CatalogReader
	refs  *ReferenceCache
}

// NewAssembler creates an assembler over the catalog
func NewAssembler(store database.CatalogReader, refs *ReferenceCache) *Assembler {
	return &Assembler{store: store, refs: refs}
}

// Assemble builds display records for a page. The page shrinks below
// pageSize only when the candidate universe is exhausted.
func (a *Assembler) Assemble(ctx context.Context, slice pageSlice, pageSize int) ([]CollegeDisplayRecord, error) {
	if len(slice.Page) == 0 {
		return []CollegeDisplayRecord{}, nil
	}

	// Resolve page candidates to live colleges, backfilling for any id
	// that no longer exists
	final, err := a.resolveLive(ctx, slice, pageSize)
	if err != nil {
		return nil, err
	}
	if len(final.candidates) == 0 {
		return []CollegeDisplayRecord{}, nil
	}

	ids := make([]uint, len(final.candidates))
	for i, c := range final.candidates {
		ids[i] = c.CollegeID
	}

	streamsByCollege, err := a.store.FindStreamsByColleges(ctx, ids)
	if err != nil {
		return nil, &AssemblyError{Err: err}
	}
	interestsByCollege, err := a.store.FindInterestsByColleges(ctx, ids)
	if err != nil {
		return nil, &AssemblyError{Err: err}
	}
	fees, err := a.store.FindFeesByColleges(ctx, ids, nil)
	if err != nil {
		return nil, &AssemblyError{Err: err}
	}
	feesByCollege := map[uint][]model.AnnualFee{}
	for _, fee := range fees {
		feesByCollege[fee.CollegeID] = append(feesByCollege[fee.CollegeID], fee)
	}

	streamByID, err := a.streamIndex(ctx)
	if err != nil {
		return nil, err
	}
	interestByID, err := a.interestIndex(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]CollegeDisplayRecord, 0, len(final.candidates))
	for _, candidate := range final.candidates {
		college := final.colleges[candidate.CollegeID]

		record := CollegeDisplayRecord{
			College:          college,
			Streams:          []model.Stream{},
			Interests:        []model.Interest{},
			Fees:             feesByCollege[candidate.CollegeID],
			Score:            candidate.Score,
			MatchedInterests: []model.Interest{},
		}
		if record.Fees == nil {
			record.Fees = []model.AnnualFee{}
		}

		for _, streamID := range streamsByCollege[candidate.CollegeID] {
			if stream, ok := streamByID[streamID]; ok {
				record.Streams = append(record.Streams, stream)
			}
		}
		for _, interestID := range interestsByCollege[candidate.CollegeID] {
			if interest, ok := interestByID[interestID]; ok {
				record.Interests = append(record.Interests, interest)
			}
		}
		for _, interestID := range candidate.MatchedInterests {
			if interest, ok := interestByID[interestID]; ok {
				record.MatchedInterests = append(record.MatchedInterests, interest)
			}
		}

		records = append(records, record)
	}

	return records, nil
}

type liveSet struct {
	candidates []ScoredCandidate
	colleges   map[uint]model.College
}

// resolveLive fetches the page's colleges and drains the remainder until
// the page is full again or no candidates are left
func (a *Assembler) resolveLive(ctx context.Context, slice pageSlice, pageSize int) (*liveSet, error) {
	live := &liveSet{colleges: map[uint]model.College{}}

	pending := slice.Page
	remainder := slice.Remainder

	for len(pending) > 0 {
		ids := make([]uint, len(pending))
		for i, c := range pending {
			ids[i] = c.CollegeID
		}

		colleges, err := a.store.GetCollegesByIDs(ctx, ids)
		if err != nil {
			return nil, &AssemblyError{Err: err}
		}
		found := make(map[uint]model.College, len(colleges))
		for _, college := range colleges {
			found[college.ID] = college
		}

		missing := 0
		for _, candidate := range pending {
			college, ok := found[candidate.CollegeID]
			if !ok {
				missing++
				continue
			}
			live.candidates = append(live.candidates, candidate)
			live.colleges[candidate.CollegeID] = college
		}

		if missing == 0 || len(remainder) == 0 {
			break
		}

		// Backfill: promote the next-ranked candidates and verify them too
		take := missing
		if take > len(remainder) {
			take = len(remainder)
		}
		pending = remainder[:take]
		remainder = remainder[take:]
	}

	if len(live.candidates) > pageSize {
		live.candidates = live.candidates[:pageSize]
	}
	return live, nil
}

func (a *Assembler) streamIndex(ctx context.Context) (map[uint]model.Stream, error) {
	streams, err := a.refs.Streams(ctx)
	if err != nil {
		return nil, &AssemblyError{Err: err}
	}
	index := make(map[uint]model.Stream, len(streams))
	for _, s := range streams {
		index[s.ID] = s
	}
	return index, nil
}

func (a *Assembler) interestIndex(ctx context.Context) (map[uint]model.Interest, error) {
	interests, err := a.refs.Interests(ctx)
	if err != nil {
		return nil, &AssemblyError{Err: err}
	}
	index := make(map[uint]model.Interest, len(interests))
	for _, i := range interests {
		index[i.ID] = i
	}
	return index, nil
}
