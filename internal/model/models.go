// Package model defines shared data structures for the aggregator.
package model

import "time"

// JobOffer is the canonical, provider-independent representation of a job
// posting. It is the unit of storage and retrieval.
//
// ExternalID is "<sourceApi>_<providerJobId>" and is globally unique — it is
// the deduplication key. Rows are created once by ingestion and never updated,
// so UpdatedAt always equals CreatedAt.
type JobOffer struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	MinSalary   *float64  `json:"minSalary"`
	MaxSalary   *float64  `json:"maxSalary"`
	SourceAPI   string    `json:"sourceApi"`
	ExternalID  string    `json:"externalId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OfferFilter describes an offer listing request. All filter fields are
// optional and combined with AND. Salary bounds compare against the row's
// min_salary / max_salary columns respectively.
type OfferFilter struct {
	Title     string
	Location  string
	MinSalary *float64
	MaxSalary *float64
	Page      int
	PageSize  int
}

// Normalize applies pagination defaults: page 1, page size 10.
func (f *OfferFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}
}

// OfferPage is one page of a filtered offer listing.
type OfferPage struct {
	Items      []JobOffer `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

// SourceSummary holds the per-provider counters of one ingestion run.
type SourceSummary struct {
	Source  string `json:"source"`
	Fetched int    `json:"fetched"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Errors  int    `json:"errors"`
}

// RunSummary aggregates the outcome of one full ingestion run across all
// configured providers. It is the only thing surfaced to manual-trigger
// callers.
type RunSummary struct {
	Sources []SourceSummary `json:"sources"`
	Created int             `json:"created"`
	Skipped int             `json:"skipped"`
	Errors  int             `json:"errors"`
}

// Add folds one source's counters into the aggregate.
func (s *RunSummary) Add(src SourceSummary) {
	s.Sources = append(s.Sources, src)
	s.Created += src.Created
	s.Skipped += src.Skipped
	s.Errors += src.Errors
}
