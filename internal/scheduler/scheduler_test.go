package scheduler_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"renderwatch/internal/models"
	"renderwatch/internal/repository/sqlite"
	"renderwatch/internal/scheduler"
	"renderwatch/test/mocks"
)

func newMocks(t *testing.T) (*mocks.SnapshotStore, *mocks.Notifier, *mocks.RunRecorder) {
	t.Helper()
	return mocks.NewSnapshotStore(t), mocks.NewNotifier(t), mocks.NewRunRecorder(t)
}

func TestRunManual(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	current := models.Snapshot{Results: []models.Product{
		{ID: 1, Name: "Baja Blast", Images: []models.Asset{{Link: "a/1.png"}}},
		{ID: 2, Name: "Code Red", Images: []models.Asset{{Link: "a/2.png"}}},
	}}

	t.Run("evicts previous and reports every product as new", func(t *testing.T) {
		store, notifier, history := newMocks(t)

		store.On("EvictPrevious").Return(nil).Once()
		store.On("LoadCurrent").Return(current).Once()
		store.On("LoadPrevious").Return(models.Snapshot{}).Once()

		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(entries []models.ChangeEntry) bool {
			if len(entries) != 2 {
				return false
			}
			return entries[0].Kind == models.KindNew && entries[1].Kind == models.KindNew
		})).Once()

		history.On("RecordRun", mock.Anything, mock.MatchedBy(func(run sqlite.Run) bool {
			return run.Trigger == scheduler.TriggerManual &&
				run.ProductCount == 2 && run.ChangeCount == 2 && run.Status == "ok"
		})).Return(nil).Once()

		// "true" stands in for the external scraper: it exits zero
		// without touching the snapshot files.
		sched := scheduler.New(logger, store, notifier, history, "true")

		require.NoError(t, sched.RunManual(t.Context()))
	})

	t.Run("no changes means no notification", func(t *testing.T) {
		store, notifier, history := newMocks(t)

		store.On("EvictPrevious").Return(nil).Once()
		store.On("LoadCurrent").Return(current).Once()
		store.On("LoadPrevious").Return(current).Once()

		history.On("RecordRun", mock.Anything, mock.MatchedBy(func(run sqlite.Run) bool {
			return run.ChangeCount == 0 && run.Status == "ok"
		})).Return(nil).Once()

		sched := scheduler.New(logger, store, notifier, history, "true")

		require.NoError(t, sched.RunManual(t.Context()))
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("failed scraper ends the cycle without posting", func(t *testing.T) {
		store, notifier, history := newMocks(t)

		store.On("EvictPrevious").Return(nil).Once()
		history.On("RecordRun", mock.Anything, mock.MatchedBy(func(run sqlite.Run) bool {
			return run.Status == "failed"
		})).Return(nil).Once()

		sched := scheduler.New(logger, store, notifier, history, "false")

		err := sched.RunManual(t.Context())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "scraper process failed")
		store.AssertNotCalled(t, "LoadCurrent")
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("eviction failure aborts before scraping", func(t *testing.T) {
		store, notifier, history := newMocks(t)

		store.On("EvictPrevious").Return(assert.AnError).Once()

		sched := scheduler.New(logger, store, notifier, history, "true")

		require.Error(t, sched.RunManual(t.Context()))
		history.AssertNotCalled(t, "RecordRun", mock.Anything, mock.Anything)
	})
}

func TestStart_InvalidSchedule(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, notifier, history := newMocks(t)

	sched := scheduler.New(logger, store, notifier, history, "true")

	err := sched.Start("not a cron expression")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}
