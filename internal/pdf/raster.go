package pdf

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Rasterizer renders PDF pages to bitmaps by shelling out to pdftoppm
// (poppler-utils). Rendering is synchronous; the caller decides what size it
// wants and caches the result.
type Rasterizer struct {
	binary string
}

// NewRasterizer locates pdftoppm on PATH. The returned error is advisory:
// the app still runs without rendering, the organizer just shows
// placeholders.
func NewRasterizer() (*Rasterizer, error) {
	bin, err := exec.LookPath("pdftoppm")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm not found (install poppler-utils): %w", err)
	}
	return &Rasterizer{binary: bin}, nil
}

// RenderPage rasterizes the 0-based page of the PDF at path, scaled to
// targetWidth pixels with the aspect ratio preserved.
func (r *Rasterizer) RenderPage(ctx context.Context, path string, pageIndex int, targetWidth int) (image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "pdfpresenter-render-")
	if err != nil {
		return nil, fmt.Errorf("render temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pageNum := strconv.Itoa(pageIndex + 1) // pdftoppm pages are 1-based
	prefix := filepath.Join(tmpDir, "page")

	cmd := exec.CommandContext(ctx, r.binary,
		"-png",
		"-f", pageNum,
		"-l", pageNum,
		"-scale-to-x", strconv.Itoa(targetWidth),
		"-scale-to-y", "-1",
		"-singlefile",
		path, prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm %s page %d: %w: %s", path, pageIndex, err, out)
	}

	f, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("render output missing: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page: %w", err)
	}

	log.Debug().Str("path", path).Int("page", pageIndex).Int("width", targetWidth).Msg("page rendered")
	return img, nil
}
