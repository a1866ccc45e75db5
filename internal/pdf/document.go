// Package pdf wraps the external PDF collaborators: ledongthuc/pdf for
// document metadata (page count, page geometry) and pdftoppm for rasterizing
// pages into bitmaps. Open failures are recoverable per file; a document that
// opened successfully is treated as immutable for the session.
package pdf

import (
	"fmt"
	"math"
	"os"

	ledongthuc "github.com/ledongthuc/pdf"
)

// Document is an open PDF source. It stays open for the session so pages can
// be re-rendered at new sizes without reloading.
type Document struct {
	path   string
	file   *os.File
	reader *ledongthuc.Reader
	pages  int
}

// Open loads the PDF at path. Errors are per-file and recoverable: a batch
// import skips the bad file and carries on.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat pdf: %w", err)
	}
	reader, err := ledongthuc.NewReader(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	pages := reader.NumPage()
	if pages < 1 {
		f.Close()
		return nil, fmt.Errorf("pdf %s has no pages", path)
	}
	return &Document{path: path, file: f, reader: reader, pages: pages}, nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.pages
}

// PagePointSize returns the page size in PDF points (1/72 inch) for a
// 0-based page index, taken from the MediaBox with parent inheritance.
func (d *Document) PagePointSize(index int) (w, h float64, err error) {
	if index < 0 || index >= d.pages {
		return 0, 0, fmt.Errorf("page %d out of range [0,%d)", index, d.pages)
	}
	page := d.reader.Page(index + 1) // ledongthuc pages are 1-based
	box := inheritedMediaBox(page.V)
	if box.IsNull() || box.Len() != 4 {
		// US Letter fallback when the MediaBox is absent or malformed.
		return 612, 792, nil
	}
	w = math.Abs(box.Index(2).Float64() - box.Index(0).Float64())
	h = math.Abs(box.Index(3).Float64() - box.Index(1).Float64())
	if w == 0 || h == 0 {
		return 612, 792, nil
	}
	return w, h, nil
}

// Close releases the underlying file. Call at session end only; handles are
// shared by every slide referencing the document.
func (d *Document) Close() error {
	return d.file.Close()
}

func inheritedMediaBox(v ledongthuc.Value) ledongthuc.Value {
	for !v.IsNull() {
		if box := v.Key("MediaBox"); !box.IsNull() {
			return box
		}
		v = v.Key("Parent")
	}
	return ledongthuc.Value{}
}
