// job-offer-aggregator
//
// Aggregates job postings from multiple external providers into one canonical
// Postgres table and serves them through a filterable, paginated API.
//
//   - cron-scheduled ingestion: all providers fetched concurrently, records
//     deduplicated by external id (first-write-wins)
//   - manual trigger and test-data seeding via HTTP
//   - run summaries published to Redis (EVENT_FETCH_COMPLETED)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salarvand/job-offer-aggregator/internal/api"
	"github.com/salarvand/job-offer-aggregator/internal/config"
	"github.com/salarvand/job-offer-aggregator/internal/db"
	"github.com/salarvand/job-offer-aggregator/internal/ingest"
	"github.com/salarvand/job-offer-aggregator/internal/scheduler"
	"github.com/salarvand/job-offer-aggregator/internal/source"
	"github.com/salarvand/job-offer-aggregator/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[aggregator] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ──────────────────────────────────────────────────────────
	log.Println("[aggregator] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[aggregator] PostgreSQL: %v", err)
	}
	defer pool.Close()

	offers := store.New(pool)
	if err := offers.EnsureSchema(ctx); err != nil {
		log.Fatalf("[aggregator] Schema: %v", err)
	}
	log.Println("[aggregator] PostgreSQL connected ✓")

	// ── Redis ───────────────────────────────────────────────────────────────
	log.Println("[aggregator] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[aggregator] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[aggregator] Redis connected ✓")

	// ── Ingestion pipeline ──────────────────────────────────────────────────
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	adapters := []source.Adapter{
		source.NewAPI1Adapter(cfg.API1URL, client),
		source.NewAPI2Adapter(cfg.API2URL, client),
	}

	orch := ingest.New(adapters, offers, rdb)

	sched := scheduler.New(orch, cfg.FetchIntervalMinutes)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[aggregator] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ─────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := api.NewHandler(offers, orch)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("[aggregator] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[aggregator] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[aggregator] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[aggregator] Shutdown error: %v", err)
	}
	log.Println("[aggregator] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "job-offer-aggregator",
		"version": version,
	})
}
