package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI1Fetch_NormalizesOffers(t *testing.T) {
	payload := `{
		"metadata": {"requestId": "req-1", "timestamp": "2026-02-24T12:00:00Z"},
		"jobs": [
			{
				"jobId": "123",
				"title": "Senior Software Engineer",
				"details": {
					"location": "New York, USA",
					"type": "Full-time",
					"salaryRange": "$69k - $103k"
				},
				"company": {"name": "Tech Corp", "industry": "Technology"},
				"skills": ["JavaScript", "Node.js", "React"],
				"postedDate": "2026-02-20T09:00:00Z"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := NewAPI1Adapter(srv.URL, srv.Client())

	offers, err := adapter.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 1)

	o := offers[0]
	assert.Equal(t, "Senior Software Engineer", o.Title)
	assert.Equal(t, "Tech Corp", o.Company)
	assert.Equal(t, "API1", o.SourceAPI)
	assert.Equal(t, "API1_123", o.ExternalID)

	require.NotNil(t, o.Location)
	assert.Equal(t, "New York, USA", *o.Location)

	require.NotNil(t, o.Description)
	assert.Equal(t, "Full-time position. Required skills: JavaScript, Node.js, React", *o.Description)

	require.NotNil(t, o.MinSalary)
	require.NotNil(t, o.MaxSalary)
	assert.Equal(t, 69000.0, *o.MinSalary)
	assert.Equal(t, 103000.0, *o.MaxSalary)
}

func TestAPI1Fetch_UnparsableSalaryLeavesBoundsUnset(t *testing.T) {
	payload := `{
		"jobs": [
			{
				"jobId": "456",
				"title": "Backend Engineer",
				"details": {"location": "Remote", "type": "Contract", "salaryRange": "competitive"},
				"company": {"name": "Acme"},
				"skills": ["Go"]
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	offers, err := NewAPI1Adapter(srv.URL, srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 1)

	assert.Nil(t, offers[0].MinSalary)
	assert.Nil(t, offers[0].MaxSalary)
}

func TestAPI1Fetch_DropsJobsWithoutID(t *testing.T) {
	payload := `{
		"jobs": [
			{"jobId": "", "title": "No identity"},
			{"jobId": "789", "title": "Has identity", "company": {"name": "Acme"}, "details": {"type": "Full-time"}}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	offers, err := NewAPI1Adapter(srv.URL, srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "API1_789", offers[0].ExternalID)
}

func TestAPI1Fetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewAPI1Adapter(srv.URL, srv.Client()).Fetch(context.Background())
	assert.Error(t, err)
}

func TestAPI1Fetch_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs": [`))
	}))
	defer srv.Close()

	_, err := NewAPI1Adapter(srv.URL, srv.Client()).Fetch(context.Background())
	assert.Error(t, err)
}

func TestAPI1Fetch_MissingURL(t *testing.T) {
	_, err := NewAPI1Adapter("", http.DefaultClient).Fetch(context.Background())
	assert.Error(t, err)
}

func TestParseSalaryRange(t *testing.T) {
	cases := []struct {
		name string
		in   string
		min  *float64
		max  *float64
	}{
		{"standard range", "$69k - $103k", floatPtr(69000), floatPtr(103000)},
		{"no spaces", "$50k-$80k", floatPtr(50000), floatPtr(80000)},
		{"free text", "competitive", nil, nil},
		{"empty", "", nil, nil},
		{"single bound", "$90k", nil, nil},
		{"missing dollar sign", "69k - 103k", nil, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			min, max := parseSalaryRange(c.in)
			if c.min == nil {
				assert.Nil(t, min)
				assert.Nil(t, max)
				return
			}
			require.NotNil(t, min)
			require.NotNil(t, max)
			assert.Equal(t, *c.min, *min)
			assert.Equal(t, *c.max, *max)
		})
	}
}
