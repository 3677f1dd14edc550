// Package render turns remote product media references into locally
// usable images: pdf labels are fetched and rasterized, plain image
// links pass through, and an accent color is sampled for card styling.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/go-resty/resty/v2"
)

// labelDPI renders pdf pages at 1.5x the 72dpi pdf point scale.
const labelDPI = 108

var unsafeChars = regexp.MustCompile(`[^\w.-]`)

// Handle is a resolved image: a local file path, a remote URL, or both.
type Handle struct {
	Path string
	URL  string
}

// Resolver fetches remote assets and converts pdf labels to png files.
// There is no cache: every resolution re-fetches and re-converts,
// overwriting the same derived filename. Request volume is low enough
// that this is acceptable.
type Resolver struct {
	log       *slog.Logger
	client    *resty.Client
	outDir    string
	converter string
}

func NewResolver(log *slog.Logger, outDir, converterCmd string) *Resolver {
	return &Resolver{
		log:       log,
		client:    resty.New(),
		outDir:    outDir,
		converter: converterCmd,
	}
}

// ResolvePDF downloads a pdf and renders its first page to a png named
// after the product. Any fetch, convert or write failure yields nil;
// callers degrade to a card without an image.
func (r *Resolver) ResolvePDF(ctx context.Context, link, name string) *Handle {
	const opn = "render.ResolvePDF"
	log := r.log.With("op", opn, "link", link)

	data, err := r.fetch(ctx, link)
	if err != nil {
		log.Error("failed to fetch pdf", "error", err)
		return nil
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		log.Error("failed to open pdf", "error", err)
		return nil
	}
	defer doc.Close()

	img, err := doc.ImageDPI(0, labelDPI)
	if err != nil {
		log.Error("failed to render pdf page", "error", err)
		return nil
	}

	outPath := filepath.Join(r.outDir, SafeFilename(name)+".png")
	if err = r.writePNG(outPath, img); err != nil {
		log.Error("failed to write png", "path", outPath, "error", err)
		return nil
	}
	log.Debug("converted pdf to png", "path", outPath)

	return &Handle{Path: outPath}
}

// ResolveImage wraps a direct image link; no fetch or conversion.
func (r *Resolver) ResolveImage(link string) *Handle {
	if link == "" {
		return nil
	}
	return &Handle{URL: link}
}

// Convert runs the external image post-processor with two positional
// arguments (input reference, output path) and returns the output
// path. A non-zero exit surfaces the process stderr to the caller.
func (r *Resolver) Convert(ctx context.Context, input, outName string) (string, error) {
	const opn = "render.Convert"

	output := filepath.Join(r.outDir, "output", SafeFilename(outName))
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", fmt.Errorf("%s: failed to create output dir: %w", opn, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.converter, input, output)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: converter failed: %s", opn, msg)
		}
		return "", fmt.Errorf("%s: converter failed: %w", opn, err)
	}

	return output, nil
}

func (r *Resolver) fetch(ctx context.Context, link string) ([]byte, error) {
	resp, err := r.client.R().SetContext(ctx).Get(link)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("status code error: [%d] %s", resp.StatusCode(), resp.Status())
	}

	return resp.Body(), nil
}

func (r *Resolver) writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err = png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}

	return nil
}

// SafeFilename maps a product name to a filesystem-safe derived name,
// replacing every rune outside [A-Za-z0-9_.-] with an underscore.
func SafeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}
