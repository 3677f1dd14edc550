package sqlite

import (
	"context"
	"fmt"
	"time"

	"renderwatch/internal/repository"
)

// Run is one recorded scrape cycle.
type Run struct {
	ID           int64
	Trigger      string // "scheduled" or "manual"
	StartedAt    time.Time
	ProductCount int
	ChangeCount  int
	Status       string // "ok" or "failed"
}

// HistoryRepository is the audit-trail surface used by the scheduler
// and the notification flow. Failures to record are logged by callers
// and never fail the surrounding cycle.
type HistoryRepository interface {
	RecordRun(ctx context.Context, run Run) error
	RecordForward(ctx context.Context, entryID int, name string) error
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
}

// RecordRun inserts one scrape-cycle row.
func (r *Repository) RecordRun(ctx context.Context, run Run) error {
	const opn = "repository.sqlite.RecordRun"

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO scrape_runs (run_trigger, started_at, product_count, change_count, status) VALUES (?, ?, ?, ?, ?)",
		run.Trigger, run.StartedAt, run.ProductCount, run.ChangeCount, run.Status)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// RecordForward logs that an operator forwarded a notification card.
func (r *Repository) RecordForward(ctx context.Context, entryID int, name string) error {
	const opn = "repository.sqlite.RecordForward"

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO forwards (entry_id, name, forwarded_at) VALUES (?, ?, ?)",
		entryID, name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// RecentRuns returns the latest recorded runs, newest first.
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	const opn = "repository.sqlite.RecentRuns"

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, run_trigger, started_at, product_count, change_count, status FROM scrape_runs ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err = rows.Scan(&run.ID, &run.Trigger, &run.StartedAt,
			&run.ProductCount, &run.ChangeCount, &run.Status); err != nil {
			return nil, fmt.Errorf("%s: failed to scan run: %w", opn, err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	if len(runs) == 0 {
		return nil, repository.ErrNoRuns
	}

	return runs, nil
}
