package store

import (
	"strings"
	"testing"
)

// The seed set is a fixed contract: three TEST-tagged offers with stable
// external ids, all complete enough to exercise every filter predicate.
func TestSeedOffers_Fixture(t *testing.T) {
	offers := seedOffers()

	if len(offers) != 3 {
		t.Fatalf("expected 3 seed offers, got %d", len(offers))
	}

	seen := map[string]bool{}
	for _, o := range offers {
		if o.SourceAPI != SourceTest {
			t.Errorf("offer %s has sourceApi %q, want %q", o.ExternalID, o.SourceAPI, SourceTest)
		}
		if !strings.HasPrefix(o.ExternalID, SourceTest+"_") {
			t.Errorf("offer externalId %q lacks the %s_ prefix", o.ExternalID, SourceTest)
		}
		if seen[o.ExternalID] {
			t.Errorf("duplicate seed externalId %q", o.ExternalID)
		}
		seen[o.ExternalID] = true

		if o.Title == "" || o.Company == "" {
			t.Errorf("offer %s is missing title or company", o.ExternalID)
		}
		if o.MinSalary == nil || o.MaxSalary == nil {
			t.Errorf("offer %s is missing salary bounds", o.ExternalID)
		}
		if o.MinSalary != nil && o.MaxSalary != nil && *o.MinSalary > *o.MaxSalary {
			t.Errorf("offer %s has min salary above max", o.ExternalID)
		}
	}

	// Two of the three titles contain "Engineer"; the title filter test data
	// depends on that split.
	engineers := 0
	for _, o := range offers {
		if strings.Contains(o.Title, "Engineer") {
			engineers++
		}
	}
	if engineers != 2 {
		t.Errorf("expected 2 seed titles containing Engineer, got %d", engineers)
	}
}
