// Package repository declares the errors shared by storage backends.
package repository

import "errors"

// ErrNoRuns is returned when the history table has no recorded runs.
var ErrNoRuns = errors.New("no scrape runs recorded")
