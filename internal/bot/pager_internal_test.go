package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPager_Apply(t *testing.T) {
	t.Parallel()

	// Three products, the current one has two images.
	const productCount, imageCount = 3, 2

	p := pager{}

	p.Apply(actNextImage, productCount, imageCount)
	assert.Equal(t, pager{ProductIdx: 0, ImageIdx: 1}, p)

	// Already at the last image: clamped no-op.
	p.Apply(actNextImage, productCount, imageCount)
	assert.Equal(t, pager{ProductIdx: 0, ImageIdx: 1}, p)

	p.Apply(actNextProduct, productCount, imageCount)
	assert.Equal(t, pager{ProductIdx: 1, ImageIdx: 0}, p)

	// Moving back resets the image index too.
	p.ImageIdx = 1
	p.Apply(actPrevProduct, productCount, imageCount)
	assert.Equal(t, pager{ProductIdx: 0, ImageIdx: 0}, p)

	// At the first product: clamped no-op.
	p.Apply(actPrevProduct, productCount, imageCount)
	assert.Equal(t, pager{ProductIdx: 0, ImageIdx: 0}, p)

	p.Apply(actPrevImage, productCount, imageCount)
	assert.Equal(t, pager{ProductIdx: 0, ImageIdx: 0}, p)
}

func TestPager_Disabled(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		pager        pager
		productCount int
		imageCount   int
		expected     map[string]bool
	}{
		{
			name:         "at origin",
			pager:        pager{ProductIdx: 0, ImageIdx: 0},
			productCount: 3,
			imageCount:   2,
			expected: map[string]bool{
				actPrevProduct: true,
				actPrevImage:   true,
				actNextImage:   false,
				actNextProduct: false,
			},
		},
		{
			name:         "in the middle",
			pager:        pager{ProductIdx: 1, ImageIdx: 1},
			productCount: 3,
			imageCount:   3,
			expected: map[string]bool{
				actPrevProduct: false,
				actPrevImage:   false,
				actNextImage:   false,
				actNextProduct: false,
			},
		},
		{
			name:         "at the end",
			pager:        pager{ProductIdx: 2, ImageIdx: 1},
			productCount: 3,
			imageCount:   2,
			expected: map[string]bool{
				actPrevProduct: false,
				actPrevImage:   false,
				actNextImage:   true,
				actNextProduct: true,
			},
		},
		{
			name:         "product with no images",
			pager:        pager{ProductIdx: 1, ImageIdx: 0},
			productCount: 3,
			imageCount:   0,
			expected: map[string]bool{
				actPrevProduct: false,
				actPrevImage:   true,
				actNextImage:   true,
				actNextProduct: false,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for action, want := range tc.expected {
				assert.Equal(t, want, tc.pager.disabled(action, tc.productCount, tc.imageCount),
					"action %s", action)
			}
		})
	}
}

func TestPager_Clamp(t *testing.T) {
	t.Parallel()

	p := pager{ProductIdx: 1, ImageIdx: 4}
	p.Clamp(2)
	assert.Equal(t, 1, p.ImageIdx)

	p.Clamp(0)
	assert.Equal(t, 0, p.ImageIdx)
}
