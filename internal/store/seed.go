package store

import (
	"context"

	"github.com/salarvand/job-offer-aggregator/internal/model"
)

// SourceTest tags manually seeded offers.
const SourceTest = "TEST"

// seedOffers is the fixed set inserted by SeedTestData.
func seedOffers() []model.JobOffer {
	str := func(s string) *string { return &s }
	num := func(f float64) *float64 { return &f }

	return []model.JobOffer{
		{
			Title:       "Senior Software Engineer",
			Company:     "Tech Corp",
			Description: str("Looking for a senior software engineer with 5+ years of experience"),
			Location:    str("New York, USA"),
			MinSalary:   num(120000),
			MaxSalary:   num(180000),
			SourceAPI:   SourceTest,
			ExternalID:  "TEST_1",
		},
		{
			Title:       "Frontend Developer",
			Company:     "Web Solutions",
			Description: str("Frontend developer position with React experience"),
			Location:    str("San Francisco, USA"),
			MinSalary:   num(90000),
			MaxSalary:   num(140000),
			SourceAPI:   SourceTest,
			ExternalID:  "TEST_2",
		},
		{
			Title:       "DevOps Engineer",
			Company:     "Cloud Services Inc",
			Description: str("DevOps engineer with AWS and Kubernetes experience"),
			Location:    str("Remote"),
			MinSalary:   num(100000),
			MaxSalary:   num(160000),
			SourceAPI:   SourceTest,
			ExternalID:  "TEST_3",
		},
	}
}

// SeedTestData inserts the fixed test offers through the same upsert path as
// ingestion, skipping any whose external id already exists. Calling it twice
// leaves exactly one copy of each seed record. Returns the number of rows
// actually created.
func (s *OfferStore) SeedTestData(ctx context.Context) (int, error) {
	created := 0
	for _, offer := range seedOffers() {
		outcome, err := s.Upsert(ctx, offer)
		if err != nil {
			return created, err
		}
		if outcome == OutcomeCreated {
			created++
		}
	}
	return created, nil
}
