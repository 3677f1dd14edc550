package models

// Asset is a single remote media reference attached to a product.
// Size carries the label-size text for images and is empty for pdfs.
type Asset struct {
	Link string `json:"link"`
	Size string `json:"size,omitempty"`
}

// Product is one catalog entry from a snapshot file.
type Product struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Size   string  `json:"size"`
	Images []Asset `json:"images"`
	PDFs   []Asset `json:"pdfs"`
}

// Snapshot is a full catalog listing captured at one point in time.
// It is immutable once loaded; the next scrape supersedes it.
type Snapshot struct {
	Results []Product `json:"results"`
}

// FirstImageLink returns the link of the first image, or "".
func (p Product) FirstImageLink() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Link
}

// FirstPDFLink returns the link of the first pdf, or "".
func (p Product) FirstPDFLink() string {
	if len(p.PDFs) == 0 {
		return ""
	}
	return p.PDFs[0].Link
}
