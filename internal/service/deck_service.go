package service

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"pdfpresenter/internal/deck"
	"pdfpresenter/internal/domain"
	"pdfpresenter/internal/export"
	"pdfpresenter/internal/render"
	"pdfpresenter/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Deck Service — import, organize, export
// ─────────────────────────────────────────────────────────────

// PageRenderer rasterizes one document page at a target width. The concrete
// implementation shells out to pdftoppm; tests inject a stub. A nil renderer
// is tolerated: slides then simply have no cached bitmaps.
type PageRenderer interface {
	RenderPage(ctx context.Context, path string, pageIndex int, targetWidth int) (image.Image, error)
}

// DeckService owns the session's deck: the page registry, the presentation
// order, and the thumbnail cache. All organizer operations come through
// here, and every mutation ends with a deck:changed event carrying the new
// state.
type DeckService struct {
	mu       sync.Mutex
	registry *deck.Registry
	order    *deck.Order
	cache    *render.Cache
	renderer PageRenderer
	recents  *storage.RecentStore
	layouts  *storage.LayoutStore
	emitter  EventEmitter

	thumbWidth  int
	currentFile string
}

// NewDeckService creates a DeckService. recents and layouts may be nil when
// running without session storage (standalone MCP mode uses this).
func NewDeckService(
	opener deck.Opener,
	renderer PageRenderer,
	cache *render.Cache,
	recents *storage.RecentStore,
	layouts *storage.LayoutStore,
	thumbWidth int,
	emitter EventEmitter,
) *DeckService {
	return &DeckService{
		registry:   deck.NewRegistry(opener),
		order:      deck.NewOrder(),
		cache:      cache,
		renderer:   renderer,
		recents:    recents,
		layouts:    layouts,
		thumbWidth: thumbWidth,
		emitter:    emitter,
	}
}

// Order exposes the presentation order for the presentation service. Both
// services share the one instance; that sharing is what keeps the organizer
// and the presenter views pointed at the same deck.
func (s *DeckService) Order() *deck.Order {
	return s.order
}

// Registry exposes the page registry (read access for export and rendering).
func (s *DeckService) Registry() *deck.Registry {
	return s.registry
}

// CurrentFile returns the first successfully imported path. Notes and saved
// layouts are keyed by it.
func (s *DeckService) CurrentFile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentFile
}

// RecentFiles returns the most recently opened files for the start screen.
func (s *DeckService) RecentFiles(limit int) ([]domain.RecentFile, error) {
	if s.recents == nil {
		return nil, nil
	}
	return s.recents.List(limit)
}

// ForgetRecent drops a path from the recent-files list.
func (s *DeckService) ForgetRecent(path string) error {
	if s.recents == nil {
		return nil
	}
	return s.recents.Remove(path)
}

// ImportFiles loads each file, registers its pages, renders thumbnails and
// appends the new slides to the order. One bad file does not abort the
// batch: its failure is collected, emitted as deck:import-failed and the
// import carries on with the rest.
func (s *DeckService) ImportFiles(ctx context.Context, paths []string) (*domain.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &domain.ImportResult{}

	for _, path := range paths {
		if _, ok := s.registry.IDFor(path, 0); ok {
			// Same path twice dedupes: the document and its slides are
			// already in the session.
			log.Info().Str("path", path).Msg("already imported, skipping")
			continue
		}

		doc, err := s.registry.RegisterDocument(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("import failed")
			failure := domain.ImportFailure{Path: path, Error: err.Error()}
			result.Failures = append(result.Failures, failure)
			s.emitter.Emit(ctx, "deck:import-failed", failure)
			continue
		}

		ids := s.registry.AddPages(doc, doc.PageCount())
		s.order.Append(ids)
		s.renderThumbnails(ctx, path, ids)

		if s.currentFile == "" {
			s.currentFile = path
		}
		if s.recents != nil {
			if err := s.recents.Touch(path, doc.PageCount()); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("recents update failed")
			}
		}

		for i, id := range ids {
			result.Added = append(result.Added, domain.Slide{
				ID:         id,
				SourcePath: path,
				PageIndex:  i,
			})
		}
		log.Info().Str("path", path).Int("pages", len(ids)).Msg("file imported")
	}

	s.emitChangedLocked(ctx)
	return result, nil
}

// Move reorders the deck. Out-of-range positions are no-ops.
func (s *DeckService) Move(ctx context.Context, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.order.Move(from, to) {
		return false
	}
	s.emitChangedLocked(ctx)
	return true
}

// Remove deletes the slide at position from the order. The last remaining
// slide cannot be removed, and out-of-range positions are no-ops. The
// slide's registry entry and notes survive; only the order changes.
func (s *DeckService) Remove(ctx context.Context, position int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.order.Delete(position) {
		return false
	}
	s.emitChangedLocked(ctx)
	return true
}

// JumpTo sets the current position from the organizer.
func (s *DeckService) JumpTo(ctx context.Context, position int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.order.JumpTo(position) {
		return false
	}
	s.emitChangedLocked(ctx)
	return true
}

// State returns the organizer state.
func (s *DeckService) State() domain.DeckState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Export writes the current order to outPath. In-memory state is untouched
// either way: export only reads the order and the registry.
func (s *DeckService) Export(ctx context.Context, outPath string) error {
	s.mu.Lock()
	pages, err := s.exportPagesLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := export.Deck(pages, outPath); err != nil {
		log.Error().Err(err).Str("out", outPath).Msg("export failed")
		return err
	}
	s.emitter.Emit(ctx, "export:done", map[string]string{"path": outPath})
	return nil
}

// SaveLayout persists the current order, keyed by the current file.
func (s *DeckService) SaveLayout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.layouts == nil || s.currentFile == "" {
		return nil
	}
	entries := make([]domain.LayoutEntry, 0, s.order.Len())
	for _, id := range s.order.IDs() {
		ref, err := s.registry.Resolve(id)
		if err != nil {
			return err
		}
		entries = append(entries, domain.LayoutEntry{
			SourcePath: ref.Doc.Path(),
			PageIndex:  ref.PageIndex,
		})
	}
	return s.layouts.Save(s.currentFile, entries)
}

// RestoreLayout re-imports the sources of a saved layout and rebuilds the
// order from it. Entries whose source fails to load are skipped, keeping the
// partial-failure semantics of a normal import.
func (s *DeckService) RestoreLayout(ctx context.Context, path string) error {
	if s.layouts == nil {
		return nil
	}
	entries, err := s.layouts.Load(path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	var paths []string
	seen := make(map[string]bool)
	for _, e := range entries {
		if !seen[e.SourcePath] {
			seen[e.SourcePath] = true
			paths = append(paths, e.SourcePath)
		}
	}
	if _, err := s.ImportFiles(ctx, paths); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		if id, ok := s.registry.IDFor(e.SourcePath, e.PageIndex); ok {
			ids = append(ids, id)
		}
	}
	s.order.Replace(ids)
	s.emitChangedLocked(ctx)
	return nil
}

// BrowseFolder lists path's subfolders and PDF files for the import
// sidebar, folders first, each group sorted by name.
func (s *DeckService) BrowseFolder(path string) ([]domain.FileEntry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("browse %s: %w", path, err)
	}

	var entries []domain.FileEntry
	for _, d := range dirents {
		if strings.HasPrefix(d.Name(), ".") {
			continue
		}
		if d.IsDir() {
			entries = append(entries, domain.FileEntry{
				Name:  d.Name(),
				Path:  filepath.Join(path, d.Name()),
				IsDir: true,
			})
			continue
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			entries = append(entries, domain.FileEntry{
				Name: d.Name(),
				Path: filepath.Join(path, d.Name()),
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// ── internals ──────────────────────────────────────────────

func (s *DeckService) renderThumbnails(ctx context.Context, path string, ids []int) {
	if s.renderer == nil || s.cache == nil {
		return
	}
	for i, id := range ids {
		img, err := s.renderer.RenderPage(ctx, path, i, s.thumbWidth)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Int("page", i).Msg("thumbnail render failed")
			continue
		}
		s.cache.SetThumbnail(id, img)
	}
}

func (s *DeckService) stateLocked() domain.DeckState {
	slides := make([]domain.Slide, 0, s.order.Len())
	for pos, id := range s.order.IDs() {
		slide := domain.Slide{ID: id, Position: pos}
		if ref, err := s.registry.Resolve(id); err == nil {
			slide.SourcePath = ref.Doc.Path()
			slide.PageIndex = ref.PageIndex
		}
		slides = append(slides, slide)
	}
	return domain.DeckState{
		Slides:          slides,
		CurrentPosition: s.order.Current(),
		CurrentFile:     s.currentFile,
	}
}

func (s *DeckService) emitChangedLocked(ctx context.Context) {
	s.emitter.Emit(ctx, "deck:changed", s.stateLocked())
}

func (s *DeckService) exportPagesLocked() ([]export.Page, error) {
	pages := make([]export.Page, 0, s.order.Len())
	for _, id := range s.order.IDs() {
		ref, err := s.registry.Resolve(id)
		if err != nil {
			return nil, err
		}
		pages = append(pages, export.Page{Path: ref.Doc.Path(), PageIndex: ref.PageIndex})
	}
	return pages, nil
}
