// Package scheduler wires up the cron job that periodically ingests the
// current day's top products.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"producthunt/ingest-service/internal/scraper"
)

const (
	lockKey    = "ph:ingest:lock"
	lastRunKey = "ph:ingest:last_run"
	lockTTL    = 10 * time.Minute
)

// Scheduler wraps robfig/cron and manages the periodic ingest loop. When a
// Redis client is present, a SetNX lock keeps overlapping daemons from
// ingesting the same cycle twice; without Redis the lock is skipped.
type Scheduler struct {
	cron   *cron.Cron
	rdb    *redis.Client // may be nil
	worker *scraper.Worker
	limit  int    // products per cycle
	spec   string // cron spec, e.g. "@every 24h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(worker *scraper.Worker, rdb *redis.Client, intervalHours, limit int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		rdb:    rdb,
		worker: worker,
		limit:  limit,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one ingest
// immediately so the table is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runCycle(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runCycle ingests today's window under the cross-process lock.
func (s *Scheduler) runCycle(ctx context.Context) {
	if !s.acquireLock(ctx) {
		log.Println("[scheduler] Another ingest run holds the lock — skipping this cycle")
		return
	}
	defer s.releaseLock(ctx)

	today := time.Now().UTC()
	win := scraper.DayWindow(today)
	log.Printf("[scheduler] Ingest cycle started for %s", win.Label)

	_, stats, err := s.worker.RunWindow(ctx, win, s.limit)
	if err != nil {
		log.Printf("[scheduler] Ingest cycle failed: %v", err)
		return
	}

	log.Printf("[scheduler] Ingest cycle complete — fetched=%d saved=%d failed=%d",
		stats.Fetched, stats.Saved, stats.Failed)

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, lastRunKey, time.Now().UTC().Format(time.RFC3339), 0).Err(); err != nil {
			log.Printf("[scheduler] Failed to record last run: %v", err)
		}
	}
}

func (s *Scheduler) acquireLock(ctx context.Context) bool {
	if s.rdb == nil {
		return true
	}
	ok, err := s.rdb.SetNX(ctx, lockKey, time.Now().UTC().Format(time.RFC3339), lockTTL).Result()
	if err != nil {
		log.Printf("[scheduler] Lock check failed: %v — proceeding without lock", err)
		return true
	}
	return ok
}

func (s *Scheduler) releaseLock(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, lockKey).Err(); err != nil {
		log.Printf("[scheduler] Lock release failed: %v", err)
	}
}
