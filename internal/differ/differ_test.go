package differ_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renderwatch/internal/differ"
	"renderwatch/internal/models"
)

func product(id int, name string, imageLinks, pdfLinks []string) models.Product {
	p := models.Product{ID: id, Name: name}
	for _, link := range imageLinks {
		p.Images = append(p.Images, models.Asset{Link: link})
	}
	for _, link := range pdfLinks {
		p.PDFs = append(p.PDFs, models.Asset{Link: link})
	}
	return p
}

func snapshot(products ...models.Product) models.Snapshot {
	return models.Snapshot{Results: products}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	baseline := product(1, "Baja Blast", []string{"a/1.png"}, []string{"a/1.pdf"})

	testCases := []struct {
		name     string
		previous models.Snapshot
		current  models.Snapshot
		expected []models.ChangeEntry
	}{
		{
			name:     "identical snapshots produce no entries",
			previous: snapshot(baseline),
			current:  snapshot(baseline),
			expected: nil,
		},
		{
			name:     "product absent from previous is reported as new",
			previous: snapshot(),
			current:  snapshot(baseline),
			expected: []models.ChangeEntry{{
				Kind: models.KindNew, ID: 1, Name: "Baja Blast",
				ImageLink: "a/1.png", PDFLink: "a/1.pdf",
			}},
		},
		{
			name:     "changed image filename is reported as updated",
			previous: snapshot(baseline),
			current:  snapshot(product(1, "Baja Blast", []string{"a/2.png"}, []string{"a/1.pdf"})),
			expected: []models.ChangeEntry{{
				Kind: models.KindUpdated, ID: 1, Name: "Baja Blast",
				ImageLink: "a/2.png", PDFLink: "a/1.pdf",
			}},
		},
		{
			name:     "changed pdf filename is reported as updated",
			previous: snapshot(baseline),
			current:  snapshot(product(1, "Baja Blast", []string{"a/1.png"}, []string{"a/2.pdf"})),
			expected: []models.ChangeEntry{{
				Kind: models.KindUpdated, ID: 1, Name: "Baja Blast",
				ImageLink: "a/1.png", PDFLink: "a/2.pdf",
			}},
		},
		{
			name:     "pure rename does not produce an entry",
			previous: snapshot(baseline),
			current:  snapshot(product(1, "Mtn Dew Baja Blast", []string{"a/1.png"}, []string{"a/1.pdf"})),
			expected: nil,
		},
		{
			name:     "reordered image list does not produce an entry",
			previous: snapshot(product(1, "Baja Blast", []string{"a/1.png", "a/2.png"}, nil)),
			current:  snapshot(product(1, "Baja Blast", []string{"a/2.png", "a/1.png"}, nil)),
			expected: nil,
		},
		{
			name:     "same filename under a different directory is unchanged",
			previous: snapshot(product(1, "Baja Blast", []string{"old/1.png"}, nil)),
			current:  snapshot(product(1, "Baja Blast", []string{"new/1.png"}, nil)),
			expected: nil,
		},
		{
			name:     "removed product is silently ignored",
			previous: snapshot(baseline, product(2, "Code Red", nil, nil)),
			current:  snapshot(baseline),
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			changes := differ.Diff(tc.previous, tc.current)

			assert.Equal(t, tc.expected, changes)
		})
	}
}

func TestDiff_OrderFollowsCurrentSnapshot(t *testing.T) {
	t.Parallel()

	current := snapshot(
		product(3, "Voltage", nil, nil),
		product(1, "Baja Blast", nil, nil),
		product(2, "Code Red", nil, nil),
	)

	changes := differ.Diff(models.Snapshot{}, current)

	require.Len(t, changes, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{changes[0].ID, changes[1].ID, changes[2].ID})
	for _, entry := range changes {
		assert.Equal(t, models.KindNew, entry.Kind)
	}
}

func TestDiff_EmptyBaselineReportsEveryProductAsNew(t *testing.T) {
	t.Parallel()

	current := snapshot(
		product(1, "Baja Blast", []string{"a/1.png"}, nil),
		product(2, "Code Red", []string{"a/2.png"}, nil),
	)

	changes := differ.Diff(models.Snapshot{}, current)

	require.Len(t, changes, 2)
	for _, entry := range changes {
		assert.Equal(t, models.KindNew, entry.Kind)
	}
}
