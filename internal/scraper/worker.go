package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"producthunt/ingest-service/internal/model"
)

// Source yields normalised products for one time window.
// *Client is the production implementation.
type Source interface {
	FetchWindow(ctx context.Context, win Window, limit int) ([]model.Product, error)
}

// Sink persists one product record idempotently by id.
// store.Store is the production implementation.
type Sink interface {
	Upsert(ctx context.Context, p model.Product) error
}

// Worker runs ingest cycles: it fetches a window from the Source and upserts
// every record through the Sink, sequentially. Record-level sink failures
// are logged and counted, never propagated; window-level fetch failures
// abort only that window.
type Worker struct {
	source Source
	sink   Sink
	delay  time.Duration // pause between windows in a range run
}

// NewWorker constructs a Worker.
func NewWorker(source Source, sink Sink, delay time.Duration) *Worker {
	return &Worker{source: source, sink: sink, delay: delay}
}

// RunStats summarises one ingest run.
type RunStats struct {
	Windows int
	Fetched int
	Saved   int
	Failed  int
}

// RunWindow ingests a single window: one fetch, then per-record upserts in
// upvote order. The returned products let the CLI render what was fetched.
func (w *Worker) RunWindow(ctx context.Context, win Window, limit int) ([]model.Product, RunStats, error) {
	stats := RunStats{Windows: 1}

	products, err := w.source.FetchWindow(ctx, win, limit)
	if err != nil {
		return nil, stats, fmt.Errorf("fetch %s: %w", win.Label, err)
	}
	stats.Fetched = len(products)

	for _, p := range products {
		if err := w.sink.Upsert(ctx, p); err != nil {
			log.Printf("[worker] upsert %s (%s): %v — continuing", p.ID, p.Name, err)
			stats.Failed++
			continue
		}
		stats.Saved++
	}

	return products, stats, nil
}

// RunRange ingests every day from start to end inclusive, honouring a
// per-day limit and a total-record cap. A day whose fetch fails is logged
// and skipped; the run carries on with the next day.
func (w *Worker) RunRange(ctx context.Context, start, end time.Time, perDay, maxTotal int) (RunStats, error) {
	if end.Before(start) {
		return RunStats{}, &ValidationError{Reason: fmt.Sprintf("end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))}
	}

	var total RunStats
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if maxTotal > 0 && total.Saved >= maxTotal {
			log.Printf("[worker] reached total record cap (%d) — stopping", maxTotal)
			break
		}

		limit := perDay
		if maxTotal > 0 && maxTotal-total.Saved < limit {
			limit = maxTotal - total.Saved
		}

		win := DayWindow(day)
		log.Printf("[worker] processing %s (limit %d)", win.Label, limit)

		_, stats, err := w.RunWindow(ctx, win, limit)
		total.Windows++
		if err != nil {
			log.Printf("[worker] %v — continuing with next day", err)
			continue
		}
		total.Fetched += stats.Fetched
		total.Saved += stats.Saved
		total.Failed += stats.Failed

		if w.delay > 0 && day.Before(end) {
			time.Sleep(w.delay)
		}
	}

	log.Printf("[worker] range done — windows=%d fetched=%d saved=%d failed=%d",
		total.Windows, total.Fetched, total.Saved, total.Failed)
	return total, nil
}
