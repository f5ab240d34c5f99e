package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/campusmatch/college-discovery-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(store *fakeCatalog, policy string) *Normalizer {
	settings := testSettings()
	settings.UnknownCriteriaPolicy = policy
	refs := NewReferenceCache(store, nil, time.Minute)
	return NewNormalizer(refs, settings)
}

func referenceCatalog() *fakeCatalog {
	store := newFakeCatalog()
	store.streams = []model.Stream{
		{ID: 1, Code: "ENG", Name: "Engineering"},
		{ID: 2, Code: "COM", Name: "Commerce"},
	}
	store.interests = []model.Interest{
		{ID: 1, Name: "Cricket"},
		{ID: 2, Name: "Debates"},
	}
	return store
}

func TestNormalizeDefaults(t *testing.T) {
	n := newTestNormalizer(referenceCatalog(), "ignore")

	query, err := n.Normalize(context.Background(), MatchRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, query.Page)
	assert.Equal(t, testSettings().DefaultPageSize, query.PageSize)
	assert.Empty(t, query.StreamIDs)
	assert.Empty(t, query.InterestIDs)
	assert.Nil(t, query.MaxFee)
}

func TestNormalizeResolvesNamesCodesAndIDs(t *testing.T) {
	n := newTestNormalizer(referenceCatalog(), "ignore")

	query, err := n.Normalize(context.Background(), MatchRequest{
		Streams:   []string{"engineering", "COM"},
		Interests: []string{"CRICKET", "2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2}, query.StreamIDs)
	assert.Equal(t, []uint{1, 2}, query.InterestIDs)
}

func TestNormalizeDeduplicates(t *testing.T) {
	n := newTestNormalizer(referenceCatalog(), "ignore")

	query, err := n.Normalize(context.Background(), MatchRequest{
		Streams:   []string{"Engineering", "ENG", "1"},
		Interests: []string{"Cricket", "cricket"},
	})
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, query.StreamIDs)
	assert.Equal(t, []uint{1}, query.InterestIDs)
}

func TestNormalizeIgnorePolicyDropsWithWarning(t *testing.T) {
	n := newTestNormalizer(referenceCatalog(), "ignore")

	query, err := n.Normalize(context.Background(), MatchRequest{
		Streams:   []string{"Engineering", "Basket Weaving"},
		Interests: []string{"Quidditch"},
	})
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, query.StreamIDs)
	assert.Empty(t, query.InterestIDs)
	assert.Len(t, query.DroppedCriteria, 2)
}

func TestNormalizeRejectPolicyFails(t *testing.T) {
	n := newTestNormalizer(referenceCatalog(), "reject")

	_, err := n.Normalize(context.Background(), MatchRequest{
		Streams: []string{"Basket Weaving"},
	})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "streams", validationErr.Field)
}

func TestNormalizeValidationFailures(t *testing.T) {
	n := newTestNormalizer(referenceCatalog(), "ignore")
	negativeFee := -100.0

	tests := []struct {
		name  string
		req   MatchRequest
		field string
	}{
		{"negative fee", MatchRequest{MaxFee: &negativeFee}, "max_fee"},
		{"negative page", MatchRequest{Page: -1}, "page"},
		{"negative page size", MatchRequest{PageSize: -5}, "page_size"},
		{"page size above maximum", MatchRequest{PageSize: 5000}, "page_size"},
		{"non-positive interest weight", MatchRequest{
			Interests:       []string{"Cricket"},
			InterestWeights: map[string]float64{"Cricket": -2},
		}, "interest_weights"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(context.Background(), tt.req)
			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestNormalizeInterestWeightsCarryOver(t *testing.T) {
	n := newTestNormalizer(referenceCatalog(), "ignore")

	query, err := n.Normalize(context.Background(), MatchRequest{
		Interests:       []string{"Cricket", "Debates"},
		InterestWeights: map[string]float64{"Cricket": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, query.InterestWeights[1])
	assert.Equal(t, 1.0, query.InterestWeights[2])
}

func TestNormalizeReferenceFailureIsRetrievalError(t *testing.T) {
	store := referenceCatalog()
	store.failOp = "GetAllStreams"
	n := newTestNormalizer(store, "ignore")

	_, err := n.Normalize(context.Background(), MatchRequest{Streams: []string{"Engineering"}})
	require.Error(t, err)
	var retrievalErr *RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
}
