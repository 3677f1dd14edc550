package render_test

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renderwatch/internal/render"
)

// testImage paints three vertical stripes so the sampler has distinct
// clusters to find.
func testImage(stripes ...color.RGBA) *image.RGBA {
	const width, height = 90, 30
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stripeWidth := width / len(stripes)
	for x := 0; x < width; x++ {
		c := stripes[min(x/stripeWidth, len(stripes)-1)]
		for y := 0; y < height; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))

	return path
}

func TestAccentColor(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := render.NewResolver(logger, t.TempDir(), "")

	t.Run("picks a non-white dominant color", func(t *testing.T) {
		t.Parallel()
		img := testImage(
			color.RGBA{R: 255, A: 255},
			color.RGBA{G: 255, A: 255},
			color.RGBA{B: 255, A: 255},
		)

		got := r.AccentColor(img)

		rC, gC, bC := got>>16&0xFF, got>>8&0xFF, got&0xFF
		assert.False(t, rC > 230 && gC > 230 && bC > 230, "accent %06X is near-white", got)
		assert.NotEqual(t, render.DefaultAccent, got)
	})

	t.Run("skips near-white colors", func(t *testing.T) {
		t.Parallel()
		img := testImage(
			color.RGBA{R: 255, G: 255, B: 255, A: 255},
			color.RGBA{R: 250, G: 250, B: 245, A: 255},
			color.RGBA{R: 128, G: 0, B: 64, A: 255},
		)

		got := r.AccentColor(img)

		// The sampler may blend at stripe edges, so check the channel
		// shape instead of the exact value.
		rC, gC, bC := got>>16&0xFF, got>>8&0xFF, got&0xFF
		assert.False(t, rC > 230 && gC > 230 && bC > 230, "accent %06X is near-white", got)
		assert.Greater(t, rC, gC, "expected the dark red stripe to win, got %06X", got)
	})
}

func TestAccentColorFile(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := render.NewResolver(logger, t.TempDir(), "")

	t.Run("reads color from a png file", func(t *testing.T) {
		t.Parallel()
		path := writeTestPNG(t, testImage(
			color.RGBA{R: 200, G: 40, B: 40, A: 255},
			color.RGBA{R: 40, G: 200, B: 40, A: 255},
			color.RGBA{R: 40, G: 40, B: 200, A: 255},
		))

		got := r.AccentColorFile(path)

		assert.NotEqual(t, render.DefaultAccent, got)
	})

	t.Run("missing file falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, render.DefaultAccent, r.AccentColorFile("/nonexistent.png"))
	})

	t.Run("undecodable file falls back to default", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "junk.png")
		require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

		assert.Equal(t, render.DefaultAccent, r.AccentColorFile(path))
	})
}

func TestAccentColorLink(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := render.NewResolver(logger, t.TempDir(), "")

	t.Run("fetches and samples a remote image", func(t *testing.T) {
		t.Parallel()
		img := testImage(
			color.RGBA{R: 10, G: 20, B: 30, A: 255},
			color.RGBA{R: 30, G: 20, B: 10, A: 255},
			color.RGBA{R: 90, G: 90, B: 90, A: 255},
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			require.NoError(t, png.Encode(w, img))
		}))
		defer server.Close()

		got := r.AccentColorLink(t.Context(), server.URL+"/a.png")

		assert.NotEqual(t, render.DefaultAccent, got)
	})

	t.Run("fetch failure falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, render.DefaultAccent, r.AccentColorLink(t.Context(), "http://127.0.0.1:1/a.png"))
	})
}
