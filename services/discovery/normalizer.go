package discovery

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/campusmatch/college-discovery-api/config"
	"github.com/campusmatch/college-discovery-api/utils/validation"
)

// Normalizer validates a raw MatchRequest and canonicalizes it into a
// MatchQuery. Pure transform apart from reference-list reads.
type Normalizer struct {
	refs      *ReferenceCache
	settings  config.EngineSettings
	validator *validation.Validator
}

// NewNormalizer creates a normalizer bound to the reference cache
func NewNormalizer(refs *ReferenceCache, settings config.EngineSettings) *Normalizer {
	return &Normalizer{
		refs:      refs,
		settings:  settings,
		validator: validation.NewValidator(),
	}
}

// Normalize turns a raw request into a MatchQuery or fails with a
// ValidationError (bad shape) or RetrievalError (reference lists
// unavailable).
func (n *Normalizer) Normalize(ctx context.Context, req MatchRequest) (*MatchQuery, error) {
	if err := n.validator.ValidateStruct(req); err != nil {
		field, reason := validation.FirstValidationError(err)
		return nil, &ValidationError{Field: field, Reason: reason}
	}

	if req.MaxFee != nil && *req.MaxFee < 0 {
		return nil, &ValidationError{Field: "max_fee", Reason: "must not be negative"}
	}

	page := req.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, &ValidationError{Field: "page", Reason: "must be at least 1"}
	}

	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = n.settings.DefaultPageSize
	}
	if pageSize < 1 {
		return nil, &ValidationError{Field: "page_size", Reason: "must be at least 1"}
	}
	if pageSize > n.settings.MaxPageSize {
		return nil, &ValidationError{
			Field:  "page_size",
			Reason: fmt.Sprintf("must not exceed %d", n.settings.MaxPageSize),
		}
	}

	query := &MatchQuery{
		MaxFee:   req.MaxFee,
		City:     validation.SanitizeString(req.City),
		State:    validation.SanitizeString(req.State),
		Page:     page,
		PageSize: pageSize,
	}

	if err := n.resolveStreams(ctx, req.Streams, query); err != nil {
		return nil, err
	}
	if err := n.resolveInterests(ctx, req, query); err != nil {
		return nil, err
	}

	return query, nil
}

// resolveStreams maps stream names, codes or numeric ids to catalog ids
func (n *Normalizer) resolveStreams(ctx context.Context, raw []string, query *MatchQuery) error {
	if len(raw) == 0 {
		return nil
	}

	streams, err := n.refs.Streams(ctx)
	if err != nil {
		return err
	}

	byKey := make(map[string]uint, len(streams)*2)
	for _, s := range streams {
		byKey[strings.ToLower(s.Name)] = s.ID
		byKey[strings.ToLower(s.Code)] = s.ID
		byKey[strconv.FormatUint(uint64(s.ID), 10)] = s.ID
	}

	seen := map[uint]bool{}
	for _, entry := range raw {
		key := strings.ToLower(validation.SanitizeString(entry))
		if key == "" {
			continue
		}
		id, ok := byKey[key]
		if !ok {
			if n.settings.UnknownCriteriaPolicy == "reject" {
				return &ValidationError{Field: "streams", Reason: fmt.Sprintf("unknown stream %q", entry)}
			}
			query.DroppedCriteria = append(query.DroppedCriteria, fmt.Sprintf("unknown stream %q", entry))
			continue
		}
		if !seen[id] {
			seen[id] = true
			query.StreamIDs = append(query.StreamIDs, id)
		}
	}

	return nil
}

// resolveInterests maps interest names or numeric ids to catalog ids and
// carries over any per-interest weights
func (n *Normalizer) resolveInterests(ctx context.Context, req MatchRequest, query *MatchQuery) error {
	if len(req.Interests) == 0 {
		return nil
	}

	interests, err := n.refs.Interests(ctx)
	if err != nil {
		return err
	}

	byKey := make(map[string]uint, len(interests)*2)
	for _, in := range interests {
		byKey[strings.ToLower(in.Name)] = in.ID
		byKey[strconv.FormatUint(uint64(in.ID), 10)] = in.ID
	}

	weights := map[uint]float64{}
	seen := map[uint]bool{}
	for _, entry := range req.Interests {
		key := strings.ToLower(validation.SanitizeString(entry))
		if key == "" {
			continue
		}
		id, ok := byKey[key]
		if !ok {
			if n.settings.UnknownCriteriaPolicy == "reject" {
				return &ValidationError{Field: "interests", Reason: fmt.Sprintf("unknown interest %q", entry)}
			}
			query.DroppedCriteria = append(query.DroppedCriteria, fmt.Sprintf("unknown interest %q", entry))
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		query.InterestIDs = append(query.InterestIDs, id)

		weight := 1.0
		if w, ok := req.InterestWeights[entry]; ok {
			if w <= 0 {
				return &ValidationError{Field: "interest_weights", Reason: fmt.Sprintf("weight for %q must be positive", entry)}
			}
			weight = w
		}
		weights[id] = weight
	}

	if len(query.InterestIDs) > 0 {
		query.InterestWeights = weights
	}

	return nil
}
