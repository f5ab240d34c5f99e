package discovery

import (
	"context"
	"errors"
	"sort"

	"github.com/campusmatch/college-discovery-api/model"
)

// fakeCatalog is an in-memory CatalogReader for engine tests. Reads are
// deterministic: id-ordered regardless of insertion order.
type fakeCatalog struct {
	colleges         map[uint]model.College
	streams          []model.Stream
	interests        []model.Interest
	collegeStreams   map[uint][]uint
	collegeInterests map[uint][]uint
	fees             []model.AnnualFee

	// vanished marks colleges that disappear between retrieval and
	// assembly; they still show up in id listings but not in
	// GetCollegesByIDs
	vanished map[uint]bool

	// failOp makes the named operation return errFakeStore
	failOp string
}

var errFakeStore = errors.New("store unavailable")

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		colleges:         map[uint]model.College{},
		collegeStreams:   map[uint][]uint{},
		collegeInterests: map[uint][]uint{},
		vanished:         map[uint]bool{},
	}
}

func (f *fakeCatalog) addCollege(c model.College, streamIDs, interestIDs []uint) {
	f.colleges[c.ID] = c
	f.collegeStreams[c.ID] = streamIDs
	f.collegeInterests[c.ID] = interestIDs
}

func (f *fakeCatalog) addFee(collegeID uint, streamID *uint, amount float64) {
	f.fees = append(f.fees, model.AnnualFee{
		ID:        uint(len(f.fees) + 1),
		CollegeID: collegeID,
		StreamID:  streamID,
		Amount:    amount,
	})
}

func (f *fakeCatalog) FindCollegesByStreams(ctx context.Context, streamIDs []uint) ([]uint, error) {
	if f.failOp == "FindCollegesByStreams" {
		return nil, errFakeStore
	}
	wanted := map[uint]bool{}
	for _, id := range streamIDs {
		wanted[id] = true
	}
	var ids []uint
	for collegeID, offered := range f.collegeStreams {
		for _, streamID := range offered {
			if wanted[streamID] {
				ids = append(ids, collegeID)
				break
			}
		}
	}
	sortIDs(ids)
	return ids, nil
}

func (f *fakeCatalog) AllCollegeIDs(ctx context.Context) ([]uint, error) {
	if f.failOp == "AllCollegeIDs" {
		return nil, errFakeStore
	}
	var ids []uint
	for id := range f.colleges {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids, nil
}

func (f *fakeCatalog) FindFeesByColleges(ctx context.Context, collegeIDs []uint, streamIDs []uint) ([]model.AnnualFee, error) {
	if f.failOp == "FindFeesByColleges" {
		return nil, errFakeStore
	}
	wanted := map[uint]bool{}
	for _, id := range collegeIDs {
		wanted[id] = true
	}
	streamOK := func(fee model.AnnualFee) bool {
		if len(streamIDs) == 0 || fee.StreamID == nil {
			return true
		}
		for _, id := range streamIDs {
			if *fee.StreamID == id {
				return true
			}
		}
		return false
	}
	var out []model.AnnualFee
	for _, fee := range f.fees {
		if wanted[fee.CollegeID] && streamOK(fee) {
			out = append(out, fee)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindInterestsByColleges(ctx context.Context, collegeIDs []uint) (map[uint][]uint, error) {
	if f.failOp == "FindInterestsByColleges" {
		return nil, errFakeStore
	}
	out := map[uint][]uint{}
	for _, id := range collegeIDs {
		if interests, ok := f.collegeInterests[id]; ok {
			out[id] = interests
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindStreamsByColleges(ctx context.Context, collegeIDs []uint) (map[uint][]uint, error) {
	if f.failOp == "FindStreamsByColleges" {
		return nil, errFakeStore
	}
	out := map[uint][]uint{}
	for _, id := range collegeIDs {
		if streams, ok := f.collegeStreams[id]; ok {
			out[id] = streams
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetCollegesByIDs(ctx context.Context, ids []uint) ([]model.College, error) {
	if f.failOp == "GetCollegesByIDs" {
		return nil, errFakeStore
	}
	sorted := append([]uint{}, ids...)
	sortIDs(sorted)
	var out []model.College
	for _, id := range sorted {
		if f.vanished[id] {
			continue
		}
		if college, ok := f.colleges[id]; ok {
			out = append(out, college)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetAllStreams(ctx context.Context) ([]model.Stream, error) {
	if f.failOp == "GetAllStreams" {
		return nil, errFakeStore
	}
	return f.streams, nil
}

func (f *fakeCatalog) GetAllInterests(ctx context.Context) ([]model.Interest, error) {
	if f.failOp == "GetAllInterests" {
		return nil, errFakeStore
	}
	return f.interests, nil
}

func sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
