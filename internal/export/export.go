// Package export materializes the presentation order into a new PDF file.
// It is a pure function of the order and the page registry: source documents
// are only read, and a failed export leaves no in-memory state to undo.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"
)

// Page selects one page of one source document, in output order.
type Page struct {
	Path      string
	PageIndex int
}

// Run is a maximal stretch of consecutive output pages drawn from the same
// source document. pdfcpu collects each run in one pass, then the runs are
// merged.
type Run struct {
	Path  string
	Pages []int // 0-based page indices, in output order
}

// SplitRuns groups pages into per-source runs while preserving order.
func SplitRuns(pages []Page) []Run {
	var runs []Run
	for _, p := range pages {
		if n := len(runs); n > 0 && runs[n-1].Path == p.Path {
			runs[n-1].Pages = append(runs[n-1].Pages, p.PageIndex)
			continue
		}
		runs = append(runs, Run{Path: p.Path, Pages: []int{p.PageIndex}})
	}
	return runs
}

// Deck writes the selected pages, in order, to outPath.
func Deck(pages []Page, outPath string) error {
	if len(pages) == 0 {
		return fmt.Errorf("export: no slides to export")
	}

	runs := SplitRuns(pages)

	if len(runs) == 1 {
		if err := collectRun(runs[0], outPath); err != nil {
			return err
		}
		log.Info().Str("out", outPath).Int("slides", len(pages)).Msg("deck exported")
		return nil
	}

	tmpDir, err := os.MkdirTemp("", "pdfpresenter-export-")
	if err != nil {
		return fmt.Errorf("export temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	parts := make([]string, 0, len(runs))
	for i, run := range runs {
		part := filepath.Join(tmpDir, fmt.Sprintf("part-%03d.pdf", i))
		if err := collectRun(run, part); err != nil {
			return err
		}
		parts = append(parts, part)
	}

	if err := api.MergeCreateFile(parts, outPath, false, nil); err != nil {
		return fmt.Errorf("export: merge into %s: %w", outPath, err)
	}

	log.Info().Str("out", outPath).Int("slides", len(pages)).Int("parts", len(parts)).Msg("deck exported")
	return nil
}

// collectRun extracts run.Pages from its source into dest, in order.
func collectRun(run Run, dest string) error {
	selected := make([]string, 0, len(run.Pages))
	for _, idx := range run.Pages {
		selected = append(selected, strconv.Itoa(idx+1)) // pdfcpu pages are 1-based
	}
	if err := api.CollectFile(run.Path, dest, selected, nil); err != nil {
		return fmt.Errorf("export: collect pages from %s: %w", run.Path, err)
	}
	return nil
}
