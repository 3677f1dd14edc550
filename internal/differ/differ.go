// Package differ computes the changeset between two catalog snapshots.
package differ

import (
	"path"
	"slices"

	"renderwatch/internal/models"
)

// mediaState is the normalized comparison key for one product: the
// base filenames of its image and pdf links, each sorted.
type mediaState struct {
	images []string
	pdfs   []string
}

// Diff compares two snapshots and returns one entry per product that
// is new in cur or whose normalized image/pdf filename set changed.
// Entry order follows cur's product order. Products present only in
// prev are ignored: deletions are not reported. Pure function.
//
// Comparison is sorted-slice equality over base filenames, so
// duplicate filenames compare as a multiset rather than a set.
func Diff(prev, cur models.Snapshot) []models.ChangeEntry {
	oldState := make(map[int]mediaState, len(prev.Results))
	for _, p := range prev.Results {
		oldState[p.ID] = mediaState{
			images: extractFilenames(p.Images),
			pdfs:   extractFilenames(p.PDFs),
		}
	}

	var changes []models.ChangeEntry
	for _, p := range cur.Results {
		old, found := oldState[p.ID]
		if !found {
			changes = append(changes, newEntry(models.KindNew, p))
			continue
		}

		imagesChanged := !slices.Equal(extractFilenames(p.Images), old.images)
		pdfsChanged := !slices.Equal(extractFilenames(p.PDFs), old.pdfs)
		if imagesChanged || pdfsChanged {
			changes = append(changes, newEntry(models.KindUpdated, p))
		}
	}

	return changes
}

func newEntry(kind models.ChangeKind, p models.Product) models.ChangeEntry {
	return models.ChangeEntry{
		Kind:      kind,
		ID:        p.ID,
		Name:      p.Name,
		Size:      p.Size,
		ImageLink: p.FirstImageLink(),
		PDFLink:   p.FirstPDFLink(),
	}
}

// extractFilenames reduces a list of assets to the sorted base
// filenames of their links, making the comparison order-insensitive.
func extractFilenames(assets []models.Asset) []string {
	names := make([]string, 0, len(assets))
	for _, a := range assets {
		names = append(names, path.Base(a.Link))
	}
	slices.Sort(names)

	return names
}
