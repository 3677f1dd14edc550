// Package scheduler drives the scrape cycle: it runs the external
// scraper on a fixed daily schedule or on manual demand, diffs the
// fresh snapshot against the previous generation and hands the
// changeset to the notification flow.
package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"renderwatch/internal/differ"
	"renderwatch/internal/models"
	"renderwatch/internal/repository/sqlite"
)

// Triggers recorded in the run history.
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// scheduledTimeout bounds one unattended scrape cycle.
const scheduledTimeout = 30 * time.Minute

// Notifier receives the changeset of a finished cycle.
type Notifier interface {
	Notify(ctx context.Context, entries []models.ChangeEntry)
}

// SnapshotStore is the two-generation catalog file store.
type SnapshotStore interface {
	LoadCurrent() models.Snapshot
	LoadPrevious() models.Snapshot
	Rotate() error
	EvictPrevious() error
}

// RunRecorder records finished cycles; failures never fail a cycle.
type RunRecorder interface {
	RecordRun(ctx context.Context, run sqlite.Run) error
}

// Scheduler owns the cron entry and the cycle orchestration.
type Scheduler struct {
	log      *slog.Logger
	store    SnapshotStore
	notifier Notifier
	history  RunRecorder
	command  string
	cron     *cron.Cron
}

func New(log *slog.Logger, store SnapshotStore, notifier Notifier, history RunRecorder, scraperCmd string) *Scheduler {
	return &Scheduler{
		log:      log,
		store:    store,
		notifier: notifier,
		history:  history,
		command:  scraperCmd,
		cron:     cron.New(),
	}
}

// Start registers the daily trigger and starts the cron loop.
func (s *Scheduler) Start(schedule string) error {
	const opn = "scheduler.Start"

	if _, err := s.cron.AddFunc(schedule, s.runScheduled); err != nil {
		return fmt.Errorf("%s: invalid schedule %q: %w", opn, schedule, err)
	}
	s.cron.Start()
	s.log.Info("Scheduler started", "schedule", schedule)

	return nil
}

// Stop halts the cron loop and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// runScheduled is the daily cycle: the current snapshot is rotated to
// the previous generation before the scraper rewrites it.
func (s *Scheduler) runScheduled() {
	const opn = "scheduler.runScheduled"
	log := s.log.With("op", opn)

	log.Info("Running daily scraper!")

	ctx, cancel := context.WithTimeout(context.Background(), scheduledTimeout)
	defer cancel()

	if err := s.store.Rotate(); err != nil {
		log.Error("failed to rotate snapshots, skipping cycle", "error", err)
		return
	}

	if err := s.cycle(ctx, TriggerScheduled); err != nil {
		log.Error("scheduled cycle failed", "error", err)
	}
}

// RunManual is the /scrape cycle: the previous generation is evicted
// first so the diff runs against an empty baseline and every current
// product is reported as new.
func (s *Scheduler) RunManual(ctx context.Context) error {
	const opn = "scheduler.RunManual"

	if err := s.store.EvictPrevious(); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}
	s.log.Info("Old product file deleted!", "op", opn)

	if err := s.cycle(ctx, TriggerManual); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// cycle runs the external scraper, diffs the two snapshot generations
// and hands any changes to the notifier. There is no retry: a failed
// scraper ends the cycle with a log line and a failed history row.
func (s *Scheduler) cycle(ctx context.Context, trigger string) error {
	const opn = "scheduler.cycle"
	log := s.log.With("op", opn, "trigger", trigger)

	started := time.Now().UTC()

	if err := s.scrape(ctx, log); err != nil {
		s.record(sqlite.Run{Trigger: trigger, StartedAt: started, Status: "failed"})
		return fmt.Errorf("%s: %w", opn, err)
	}

	current := s.store.LoadCurrent()
	previous := s.store.LoadPrevious()

	changes := differ.Diff(previous, current)
	if len(changes) == 0 {
		log.Info("No product changes detected.")
	} else {
		log.Info("Change detected! Sending results...", "count", len(changes))
		s.notifier.Notify(ctx, changes)
	}

	s.record(sqlite.Run{
		Trigger:      trigger,
		StartedAt:    started,
		ProductCount: len(current.Results),
		ChangeCount:  len(changes),
		Status:       "ok",
	})

	return nil
}

// scrape spawns the external scraper and waits for it to exit. The
// scraper's only contract is to rewrite the current snapshot file.
func (s *Scheduler) scrape(ctx context.Context, log *slog.Logger) error {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if out := strings.TrimSpace(stdout.String()); out != "" {
		log.Info("scraper stdout", "output", out)
	}
	if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
		log.Warn("scraper stderr", "output", errOut)
	}
	if err != nil {
		return fmt.Errorf("scraper process failed: %w", err)
	}
	log.Info("Scraper finished.")

	return nil
}

// record writes the run history row, best-effort.
func (s *Scheduler) record(run sqlite.Run) {
	if s.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.history.RecordRun(ctx, run); err != nil {
		s.log.Warn("failed to record scrape run", "op", "scheduler.record", "error", err)
	}
}
