package discovery

import (
	"context"
	"log"

	"github.com/campusmatch/college-discovery-api/config"
	"github.com/campusmatch/college-discovery-api/database"
	"github.com/google/uuid"
)

// Engine is the college discovery and matching engine. It is stateless per
// request: each Match runs the Normalize -> Retrieve -> Score -> Rank ->
// Assemble pipeline on its own data, so concurrent calls need no locking.
// The only shared state is the reference cache and the store's pool.
type Engine struct {
	store      database.CatalogReader
	refs       *ReferenceCache
	settings   config.EngineSettings
	normalizer *Normalizer
	retriever  *Retriever
	scorer     *Scorer
	ranker     *Ranker
	assembler  *Assembler
}

// NewEngine wires the pipeline components over a catalog reader
func NewEngine(store database.CatalogReader, refs *ReferenceCache, settings config.EngineSettings) *Engine {
	return &Engine{
		store:      store,
		refs:       refs,
		settings:   settings,
		normalizer: NewNormalizer(refs, settings),
		retriever:  NewRetriever(store, settings),
		scorer:     NewScorer(store, settings),
		ranker:     NewRanker(),
		assembler:  NewAssembler(store, refs),
	}
}

// References exposes the engine's reference cache for warm/bust tooling
func (e *Engine) References() *ReferenceCache {
	return e.refs
}

// Match runs one discovery query end to end. Cancellation of ctx
// propagates into every catalog read; the engine never retries.
func (e *Engine) Match(ctx context.Context, req MatchRequest) (*MatchResult, error) {
	queryID := uuid.NewString()

	query, err := e.normalizer.Normalize(ctx, req)
	if err != nil {
		return nil, err
	}

	candidates, err := e.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := e.scorer.Score(ctx, candidates, query)
	if err != nil {
		return nil, err
	}

	ranked := e.ranker.Rank(scored)
	slice := e.ranker.Paginate(ranked, query.Page, query.PageSize)

	results, err := e.assembler.Assemble(ctx, slice, query.PageSize)
	if err != nil {
		return nil, err
	}

	log.Printf("discovery query %s: %d candidates, page %d/%d results",
		queryID, slice.TotalCount, query.Page, len(results))

	return &MatchResult{
		Results:    results,
		TotalCount: slice.TotalCount,
		Page:       query.Page,
		PageSize:   query.PageSize,
		HasMore:    slice.HasMore,
		Warnings:   query.DroppedCriteria,
	}, nil
}
