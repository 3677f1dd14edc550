package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"renderwatch/internal/models"
)

const (
	currentFile  = "products.json"
	previousFile = "products_old.json"
)

// Store manages the two generations of the catalog snapshot file.
// The current file is rewritten by the external scraper; the store
// owns rotation and eviction of the previous generation.
type Store struct {
	dir string
	log *slog.Logger
}

func NewStore(log *slog.Logger, dir string) *Store {
	return &Store{dir: dir, log: log}
}

// CurrentPath returns the path of the current-generation snapshot file.
func (s *Store) CurrentPath() string {
	return filepath.Join(s.dir, currentFile)
}

// PreviousPath returns the path of the previous-generation snapshot file.
func (s *Store) PreviousPath() string {
	return filepath.Join(s.dir, previousFile)
}

// LoadCurrent loads the current-generation snapshot.
func (s *Store) LoadCurrent() models.Snapshot {
	return s.load(s.CurrentPath())
}

// LoadPrevious loads the previous-generation snapshot. An absent file
// is a valid empty baseline.
func (s *Store) LoadPrevious() models.Snapshot {
	return s.load(s.PreviousPath())
}

// load reads one snapshot file. Missing or malformed files degrade to
// an empty snapshot so a scrape cycle can always continue; the
// condition is logged, never returned.
func (s *Store) load(path string) models.Snapshot {
	const opn = "snapshot.load"

	var snap models.Snapshot

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("failed to read snapshot file", "op", opn, "path", path, "error", err)
		}
		return snap
	}

	if err = json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("snapshot file is not valid JSON, treating as empty",
			"op", opn, "path", path, "error", err)
		return models.Snapshot{}
	}

	return snap
}

// Rotate copies the current snapshot over the previous one, so the
// scraper's upcoming rewrite of the current file leaves a valid
// baseline behind. A missing current file is not an error (first run).
func (s *Store) Rotate() error {
	const opn = "snapshot.Rotate"

	src, err := os.Open(s.CurrentPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%s: failed to open current snapshot: %w", opn, err)
	}
	defer src.Close()

	dst, err := os.Create(s.PreviousPath())
	if err != nil {
		return fmt.Errorf("%s: failed to create previous snapshot: %w", opn, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("%s: failed to copy snapshot: %w", opn, err)
	}

	return nil
}

// EvictPrevious deletes the previous-generation file. Manual scrape
// cycles call this first so the following diff runs against an empty
// baseline and reports every current product as new.
func (s *Store) EvictPrevious() error {
	const opn = "snapshot.EvictPrevious"

	if err := os.Remove(s.PreviousPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: failed to delete previous snapshot: %w", opn, err)
	}

	return nil
}
