// Package ingest runs one full fetch-and-persist cycle across all configured
// providers and reduces the outcome to a RunSummary.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/salarvand/job-offer-aggregator/internal/model"
	"github.com/salarvand/job-offer-aggregator/internal/source"
	"github.com/salarvand/job-offer-aggregator/internal/store"
)

// fetchCompletedChannel is the Redis pub/sub channel run summaries are
// published to after every run.
const fetchCompletedChannel = "EVENT_FETCH_COMPLETED"

// Upserter is the slice of the offer store the orchestrator writes through.
type Upserter interface {
	Upsert(ctx context.Context, offer model.JobOffer) (store.Outcome, error)
}

// Orchestrator fans one ingestion run out to all adapters concurrently and
// feeds their records through the upsert store. Failures never cross source
// boundaries: a dead provider or a bad record is counted and logged, and the
// rest of the run proceeds.
//
// Runs may overlap (a manual trigger during a scheduled run, or a slow run
// spanning a tick). No mutual exclusion is needed: the store's dedup lookup
// plus the unique index make concurrent runs safe, at worst turning one
// created into a skipped.
type Orchestrator struct {
	adapters []source.Adapter
	store    Upserter
	rdb      *redis.Client // optional; nil disables event publishing
}

// New returns an Orchestrator over the given adapters and store.
func New(adapters []source.Adapter, st Upserter, rdb *redis.Client) *Orchestrator {
	return &Orchestrator{adapters: adapters, store: st, rdb: rdb}
}

// Run executes one ingestion cycle: every adapter is fetched in parallel, and
// each adapter's records are persisted sequentially. The returned summary
// lists per-source counters (ordered by source name) plus the aggregate.
func (o *Orchestrator) Run(ctx context.Context) model.RunSummary {
	log.Printf("[ingest] Run started — %d source(s)", len(o.adapters))

	results := make([]model.SourceSummary, len(o.adapters))

	var wg sync.WaitGroup
	for i, a := range o.adapters {
		wg.Add(1)
		go func(i int, a source.Adapter) {
			defer wg.Done()
			results[i] = o.runSource(ctx, a)
		}(i, a)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Source < results[j].Source })

	var summary model.RunSummary
	for _, src := range results {
		summary.Add(src)
	}

	log.Printf("[ingest] Run complete — created=%d skipped=%d errors=%d",
		summary.Created, summary.Skipped, summary.Errors)

	o.publishSummary(ctx, summary)
	return summary
}

// runSource fetches one provider and persists its records. Fetch failure is
// swallowed into the error counter; a store failure that is not a malformed
// record aborts the remainder of this source's records since subsequent
// writes would hit the same unreachable store.
func (o *Orchestrator) runSource(ctx context.Context, a source.Adapter) model.SourceSummary {
	s := model.SourceSummary{Source: a.Name()}

	offers, err := a.Fetch(ctx)
	if err != nil {
		s.Errors++
		slog.Warn("source fetch failed", "source", a.Name(), "err", err)
		return s
	}
	s.Fetched = len(offers)

	for _, offer := range offers {
		outcome, err := o.store.Upsert(ctx, offer)
		if err != nil {
			s.Errors++
			if errors.Is(err, store.ErrMalformedRecord) {
				slog.Warn("dropping malformed offer", "source", a.Name(), "title", offer.Title)
				continue
			}
			slog.Warn("store write failed, aborting source",
				"source", a.Name(), "externalId", offer.ExternalID, "err", err)
			break
		}
		switch outcome {
		case store.OutcomeCreated:
			s.Created++
		case store.OutcomeSkipped:
			s.Skipped++
		}
	}

	return s
}

// publishSummary pushes the run summary onto Redis for downstream consumers
// (non-fatal).
func (o *Orchestrator) publishSummary(ctx context.Context, summary model.RunSummary) {
	if o.rdb == nil {
		return
	}

	event, _ := json.Marshal(struct {
		Type    string           `json:"type"`
		Summary model.RunSummary `json:"summary"`
	}{
		Type:    fetchCompletedChannel,
		Summary: summary,
	})
	if err := o.rdb.Publish(ctx, fetchCompletedChannel, event).Err(); err != nil {
		slog.Warn("publish EVENT_FETCH_COMPLETED failed", "err", err)
	}
}
