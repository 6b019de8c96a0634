package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/salarvand/job-offer-aggregator/internal/model"
)

// SourceAPI2 tags offers produced by the API2 adapter.
const SourceAPI2 = "API2"

// API2Adapter fetches from the provider whose payload is a map keyed by the
// provider-native job id rather than an array. The adapter iterates the
// key/value pairs and injects each key back in as the job identifier.
type API2Adapter struct {
	url    string
	client *http.Client
}

// NewAPI2Adapter constructs an adapter for the given endpoint URL.
func NewAPI2Adapter(url string, client *http.Client) *API2Adapter {
	return &API2Adapter{url: url, client: client}
}

// api2Response mirrors the provider's top-level JSON document.
type api2Response struct {
	Status string `json:"status"`
	Data   struct {
		JobsList map[string]api2Job `json:"jobsList"`
	} `json:"data"`
}

type api2Job struct {
	Position string `json:"position"`
	Location struct {
		City   string `json:"city"`
		State  string `json:"state"`
		Remote bool   `json:"remote"`
	} `json:"location"`
	Compensation struct {
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
		Currency string  `json:"currency"`
	} `json:"compensation"`
	Employer struct {
		CompanyName string `json:"companyName"`
		Website     string `json:"website"`
	} `json:"employer"`
	Requirements struct {
		Experience   int      `json:"experience"`
		Technologies []string `json:"technologies"`
	} `json:"requirements"`
	DatePosted string `json:"datePosted"`
}

// Name implements Adapter.
func (a *API2Adapter) Name() string { return SourceAPI2 }

// Fetch retrieves the provider's current offers and normalizes each map entry.
// Map iteration order carries no meaning; none is guaranteed by the source
// format either.
func (a *API2Adapter) Fetch(ctx context.Context) ([]model.JobOffer, error) {
	if a.url == "" {
		return nil, fmt.Errorf("API2 URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("api2 fetch: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api2 fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api2 fetch: unexpected status %d", resp.StatusCode)
	}

	var apiResp api2Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("api2 fetch: decode: %w", err)
	}

	if apiResp.Status != "success" || apiResp.Data.JobsList == nil {
		return nil, fmt.Errorf("api2 fetch: unexpected payload structure (status %q)", apiResp.Status)
	}

	offers := make([]model.JobOffer, 0, len(apiResp.Data.JobsList))
	for jobID, j := range apiResp.Data.JobsList {
		if jobID == "" {
			continue
		}
		offers = append(offers, a.normalize(jobID, j))
	}
	return offers, nil
}

func (a *API2Adapter) normalize(jobID string, j api2Job) model.JobOffer {
	location := fmt.Sprintf("%s, %s", j.Location.City, j.Location.State)
	if j.Location.Remote {
		location += " (Remote)"
	}

	description := fmt.Sprintf("Experience: %d years. Technologies: %s",
		j.Requirements.Experience, strings.Join(j.Requirements.Technologies, ", "))

	return model.JobOffer{
		Title:       j.Position,
		Company:     j.Employer.CompanyName,
		Description: strPtr(description),
		Location:    strPtr(location),
		MinSalary:   floatPtr(j.Compensation.Min),
		MaxSalary:   floatPtr(j.Compensation.Max),
		SourceAPI:   SourceAPI2,
		ExternalID:  fmt.Sprintf("%s_%s", SourceAPI2, jobID),
	}
}
