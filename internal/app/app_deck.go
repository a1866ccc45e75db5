package app

import (
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"pdfpresenter/internal/domain"
)

// ============================================================
// Deck — import, organize, export
// ============================================================

// PickPDFFiles opens a native multi-select file picker for PDFs.
func (a *App) PickPDFFiles() ([]string, error) {
	return wailsRuntime.OpenMultipleFilesDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Import PDF Files",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "PDF Documents", Pattern: "*.pdf"},
			{DisplayName: "All Files", Pattern: "*.*"},
		},
	})
}

// ImportFiles loads the given PDFs into the deck. Files that fail to open
// are reported in the result; the rest of the batch still imports.
func (a *App) ImportFiles(paths []string) (*domain.ImportResult, error) {
	result, err := a.deck.ImportFiles(a.ctx, paths)
	if err != nil {
		return nil, err
	}

	// The first successful import fixes which sidecar notes load from.
	if a.present.NotesSidecarPath() == "" {
		if current := a.deck.CurrentFile(); current != "" {
			if err := a.present.LoadNotes(current); err != nil {
				return nil, fmt.Errorf("load notes: %w", err)
			}
			if a.watcher != nil {
				a.watcher.Watch(current)
			}
		}
	}
	return result, nil
}

// MoveSlide moves the slide at from to position to. Returns false for
// out-of-range positions.
func (a *App) MoveSlide(from, to int) bool {
	previousID, hadID := a.deck.Order().IDAt(a.deck.Order().Current())
	if !a.deck.Move(a.ctx, from, to) {
		return false
	}
	if hadID {
		a.present.ReconcileAfterMutation(a.ctx, previousID)
	}
	return true
}

// RemoveSlide drops the slide at position from the order. The last
// remaining slide cannot be removed.
func (a *App) RemoveSlide(position int) bool {
	previousID, hadID := a.deck.Order().IDAt(a.deck.Order().Current())
	if !a.deck.Remove(a.ctx, position) {
		return false
	}
	if hadID {
		a.present.ReconcileAfterMutation(a.ctx, previousID)
	}
	return true
}

// SelectSlide moves the organizer selection to position. Landing on a
// different slide resets the presentation scroll offset, same as any other
// organizer mutation.
func (a *App) SelectSlide(position int) bool {
	previousID, hadID := a.deck.Order().IDAt(a.deck.Order().Current())
	if !a.deck.JumpTo(a.ctx, position) {
		return false
	}
	if hadID {
		a.present.ReconcileAfterMutation(a.ctx, previousID)
	}
	return true
}

// GetDeckState returns the full organizer state for the frontend.
func (a *App) GetDeckState() domain.DeckState {
	return a.deck.State()
}

// ExportDeck asks for an output path and writes the current order as a new
// PDF. Returns the chosen path, or "" if the dialog was cancelled.
func (a *App) ExportDeck() (string, error) {
	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export Presentation",
		DefaultFilename: "presentation.pdf",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "PDF Documents", Pattern: "*.pdf"},
		},
	})
	if err != nil || path == "" {
		return "", err
	}
	if err := a.deck.Export(a.ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveLayout persists the current order for the current file.
func (a *App) SaveLayout() error {
	return a.deck.SaveLayout()
}

// RestoreLayout re-imports a previously saved order for path.
func (a *App) RestoreLayout(path string) error {
	return a.deck.RestoreLayout(a.ctx, path)
}

// BrowseFolder lists subfolders and PDFs under path for the import sidebar.
func (a *App) BrowseFolder(path string) ([]domain.FileEntry, error) {
	return a.deck.BrowseFolder(path)
}

// ListRecentFiles returns the recently opened files, newest first.
func (a *App) ListRecentFiles() ([]domain.RecentFile, error) {
	return a.deck.RecentFiles(10)
}

// ForgetRecentFile removes a path from the recent-files list.
func (a *App) ForgetRecentFile(path string) error {
	return a.deck.ForgetRecent(path)
}
