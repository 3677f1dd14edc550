package render

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/EdlinOrg/prominentcolor"
)

// DefaultAccent is the fallback card color when no accent can be
// extracted from a product image.
const DefaultAccent = 0xCBA0DF

// whiteThreshold: a sampled color with all channels above this is
// treated as background and skipped.
const whiteThreshold = 230

// AccentColor samples the dominant colors of an image and returns the
// first one that is not near-white, packed as 0xRRGGBB. Extraction is
// best-effort decoration: every failure falls back to DefaultAccent.
func (r *Resolver) AccentColor(img image.Image) int {
	const opn = "render.AccentColor"

	items, err := prominentcolor.KmeansWithAll(
		prominentcolor.DefaultK, img,
		prominentcolor.ArgumentNoCropping,
		prominentcolor.DefaultSize, nil)
	if err != nil {
		r.log.Warn("failed to extract color, fallback returned", "op", opn, "error", err)
		return DefaultAccent
	}

	for _, item := range items {
		c := item.Color
		if c.R > whiteThreshold && c.G > whiteThreshold && c.B > whiteThreshold {
			continue
		}
		return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
	}

	return DefaultAccent
}

// AccentColorFile extracts the accent color from a local image file.
func (r *Resolver) AccentColorFile(path string) int {
	const opn = "render.AccentColorFile"

	data, err := os.ReadFile(path)
	if err != nil {
		r.log.Warn("failed to read image, fallback returned", "op", opn, "path", path, "error", err)
		return DefaultAccent
	}

	return r.accentColorBytes(data)
}

// AccentColorLink fetches a remote image and extracts its accent color.
func (r *Resolver) AccentColorLink(ctx context.Context, link string) int {
	const opn = "render.AccentColorLink"

	data, err := r.fetch(ctx, link)
	if err != nil {
		r.log.Warn("failed to fetch image, fallback returned", "op", opn, "link", link, "error", err)
		return DefaultAccent
	}

	return r.accentColorBytes(data)
}

func (r *Resolver) accentColorBytes(data []byte) int {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		r.log.Warn("failed to decode image, fallback returned", "op", "render.accentColorBytes", "error", err)
		return DefaultAccent
	}

	return r.AccentColor(img)
}
