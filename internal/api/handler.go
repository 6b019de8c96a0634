// Package api implements the HTTP surface of the aggregator.
//
// Routes:
//
//	GET  /api/job-offers            → filtered, paginated offer listing
//	POST /api/job-offers/fetch      → run one ingestion cycle, return its summary
//	POST /api/job-offers/test-data  → seed the fixed test offers (idempotent)
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/salarvand/job-offer-aggregator/internal/model"
)

// OfferReader is the store surface the listing and seed handlers need.
type OfferReader interface {
	List(ctx context.Context, f model.OfferFilter) (model.OfferPage, error)
	SeedTestData(ctx context.Context) (int, error)
}

// FetchRunner triggers one synchronous ingestion run.
type FetchRunner interface {
	Run(ctx context.Context) model.RunSummary
}

// Handler holds shared dependencies.
type Handler struct {
	store    OfferReader
	ingestor FetchRunner
}

// NewHandler returns a configured Handler.
func NewHandler(store OfferReader, ingestor FetchRunner) *Handler {
	return &Handler{store: store, ingestor: ingestor}
}

// RegisterRoutes mounts all aggregator routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/job-offers", h.handleOffers)
	mux.HandleFunc("/api/job-offers/fetch", h.handleFetch)
	mux.HandleFunc("/api/job-offers/test-data", h.handleTestData)
}

// ─── Individual handlers ──────────────────────────────────────────────────────

// handleOffers handles GET /api/job-offers
func (h *Handler) handleOffers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter, err := parseOfferFilter(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.store.List(r.Context(), filter)
	if err != nil {
		log.Printf("[api] listOffers error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, page)
}

// handleFetch handles POST /api/job-offers/fetch. The run itself never fails;
// per-source problems show up in the summary's error counters.
func (h *Handler) handleFetch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary := h.ingestor.Run(r.Context())

	jsonOK(w, struct {
		Message string           `json:"message"`
		Summary model.RunSummary `json:"summary"`
	}{
		Message: "Job offers fetch completed",
		Summary: summary,
	})
}

// handleTestData handles POST /api/job-offers/test-data
func (h *Handler) handleTestData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	created, err := h.store.SeedTestData(r.Context())
	if err != nil {
		log.Printf("[api] seedTestData error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, struct {
		Message string `json:"message"`
		Created int    `json:"created"`
	}{
		Message: "Test data created successfully",
		Created: created,
	})
}

// ─── Request parsing ──────────────────────────────────────────────────────────

// parseOfferFilter extracts filter and pagination query parameters. Numeric
// parameters must parse and be non-negative (page and limit at least 1);
// anything else is a client error.
func parseOfferFilter(r *http.Request) (model.OfferFilter, error) {
	q := r.URL.Query()
	f := model.OfferFilter{
		Title:    q.Get("title"),
		Location: q.Get("location"),
	}

	if s := q.Get("minSalary"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return f, fmt.Errorf("minSalary must be a non-negative number, got %q", s)
		}
		f.MinSalary = &v
	}
	if s := q.Get("maxSalary"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return f, fmt.Errorf("maxSalary must be a non-negative number, got %q", s)
		}
		f.MaxSalary = &v
	}
	if s := q.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return f, fmt.Errorf("page must be a positive integer, got %q", s)
		}
		f.Page = v
	}
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return f, fmt.Errorf("limit must be a positive integer, got %q", s)
		}
		f.PageSize = v
	}

	f.Normalize()
	return f, nil
}

// ─── JSON helpers ─────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
