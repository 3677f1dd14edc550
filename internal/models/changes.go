package models

// ChangeKind classifies a changeset entry.
type ChangeKind string

const (
	KindNew     ChangeKind = "New Product"
	KindUpdated ChangeKind = "Updated Product"
)

// ChangeEntry describes one product that is new or whose media set
// changed between two snapshots. Derived by the differ, consumed once
// by the notification flow, then discarded.
type ChangeEntry struct {
	Kind      ChangeKind
	ID        int
	Name      string
	Size      string
	ImageLink string // first image link of the current product, or ""
	PDFLink   string // first pdf link of the current product, or ""
}
