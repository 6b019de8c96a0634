// Package source implements the provider adapters that fetch job offers from
// external APIs and normalize them into the canonical model.
//
// Each adapter owns the full knowledge of one provider's payload shape and
// field-derivation rules. Adapters are stateless and know nothing about
// persistence; adding a provider means adding one implementation of Adapter
// and wiring it into the orchestrator in cmd/main.go.
package source

import (
	"context"

	"github.com/salarvand/job-offer-aggregator/internal/model"
)

// Adapter fetches one provider's current job offers and maps them into
// canonical records. SourceAPI and ExternalID are always populated on the
// returned offers; the remaining fields are best-effort.
//
// Fetch issues exactly one outbound request per call. Fetch errors (network,
// non-200 status, unparseable payload) are returned to the caller; the
// orchestrator counts and logs them without failing the run.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]model.JobOffer, error)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
