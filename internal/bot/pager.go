package bot

// Navigation actions of a browse pager.
const (
	actPrevProduct = "prevProduct"
	actPrevImage   = "prevImage"
	actNextImage   = "nextImage"
	actNextProduct = "nextProduct"
)

// pager is the pure navigation state of a browse session: which
// product and which of its images is currently shown.
type pager struct {
	ProductIdx int
	ImageIdx   int
}

// Apply advances the pager by one action. Product moves reset the
// image index; all moves clamp at the list boundaries, so an action
// on a disabled boundary control is a no-op.
func (p *pager) Apply(action string, productCount, imageCount int) {
	switch action {
	case actPrevProduct:
		if p.ProductIdx > 0 {
			p.ProductIdx--
			p.ImageIdx = 0
		}
	case actNextProduct:
		if p.ProductIdx < productCount-1 {
			p.ProductIdx++
			p.ImageIdx = 0
		}
	case actPrevImage:
		if p.ImageIdx > 0 {
			p.ImageIdx--
		}
	case actNextImage:
		if p.ImageIdx < imageCount-1 {
			p.ImageIdx++
		}
	}
}

// Clamp forces the image index back into the current image list after
// the list itself changed (a product switch in labels mode).
func (p *pager) Clamp(imageCount int) {
	if p.ImageIdx >= imageCount {
		p.ImageIdx = imageCount - 1
	}
	if p.ImageIdx < 0 {
		p.ImageIdx = 0
	}
}

// disabled reports whether a control sits on its boundary and must be
// rendered inert.
func (p *pager) disabled(action string, productCount, imageCount int) bool {
	switch action {
	case actPrevProduct:
		return p.ProductIdx == 0
	case actNextProduct:
		return p.ProductIdx >= productCount-1
	case actPrevImage:
		return p.ImageIdx == 0 || imageCount == 0
	case actNextImage:
		return p.ImageIdx >= imageCount-1 || imageCount == 0
	}

	return false
}
