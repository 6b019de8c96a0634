package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/salarvand/job-offer-aggregator/internal/model"
)

// SourceAPI1 tags offers produced by the API1 adapter.
const SourceAPI1 = "API1"

// salaryRangeRe matches salary text like "$69k - $103k".
var salaryRangeRe = regexp.MustCompile(`\$(\d+)k\s*-\s*\$(\d+)k`)

// API1Adapter fetches from the provider whose payload is an array of jobs
// under a "jobs" key, with salary expressed as a "$<N>k - $<M>k" text range.
type API1Adapter struct {
	url    string
	client *http.Client
}

// NewAPI1Adapter constructs an adapter for the given endpoint URL.
func NewAPI1Adapter(url string, client *http.Client) *API1Adapter {
	return &API1Adapter{url: url, client: client}
}

// api1Response mirrors the provider's top-level JSON document.
type api1Response struct {
	Metadata struct {
		RequestID string `json:"requestId"`
		Timestamp string `json:"timestamp"`
	} `json:"metadata"`
	Jobs []api1Job `json:"jobs"`
}

type api1Job struct {
	JobID   string `json:"jobId"`
	Title   string `json:"title"`
	Details struct {
		Location    string `json:"location"`
		Type        string `json:"type"`
		SalaryRange string `json:"salaryRange"`
	} `json:"details"`
	Company struct {
		Name     string `json:"name"`
		Industry string `json:"industry"`
	} `json:"company"`
	Skills     []string `json:"skills"`
	PostedDate string   `json:"postedDate"`
}

// Name implements Adapter.
func (a *API1Adapter) Name() string { return SourceAPI1 }

// Fetch retrieves the provider's current offers and normalizes each entry.
// Entries without a jobId are dropped here since no external identity can be
// derived for them.
func (a *API1Adapter) Fetch(ctx context.Context) ([]model.JobOffer, error) {
	if a.url == "" {
		return nil, fmt.Errorf("API1 URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("api1 fetch: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api1 fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api1 fetch: unexpected status %d", resp.StatusCode)
	}

	var apiResp api1Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("api1 fetch: decode: %w", err)
	}

	offers := make([]model.JobOffer, 0, len(apiResp.Jobs))
	for _, j := range apiResp.Jobs {
		if j.JobID == "" {
			continue
		}
		offers = append(offers, a.normalize(j))
	}
	return offers, nil
}

func (a *API1Adapter) normalize(j api1Job) model.JobOffer {
	offer := model.JobOffer{
		Title:      j.Title,
		Company:    j.Company.Name,
		SourceAPI:  SourceAPI1,
		ExternalID: fmt.Sprintf("%s_%s", SourceAPI1, j.JobID),
	}

	if j.Details.Location != "" {
		offer.Location = strPtr(j.Details.Location)
	}

	offer.Description = strPtr(fmt.Sprintf("%s position. Required skills: %s",
		j.Details.Type, strings.Join(j.Skills, ", ")))

	offer.MinSalary, offer.MaxSalary = parseSalaryRange(j.Details.SalaryRange)
	return offer
}

// parseSalaryRange extracts the two bounds from text like "$69k - $103k",
// multiplied out to full amounts. Both bounds stay nil when the text does not
// match the pattern.
func parseSalaryRange(s string) (*float64, *float64) {
	m := salaryRangeRe.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}
	lo, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, nil
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, nil
	}
	return floatPtr(float64(lo) * 1000), floatPtr(float64(hi) * 1000)
}
