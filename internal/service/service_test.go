package service_test

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"pdfpresenter/internal/deck"
	"pdfpresenter/internal/domain"
	"pdfpresenter/internal/render"
	"pdfpresenter/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Shared fakes
// ─────────────────────────────────────────────────────────────

type stubDoc struct {
	path  string
	pages int
}

func (d *stubDoc) Path() string                                { return d.path }
func (d *stubDoc) PageCount() int                              { return d.pages }
func (d *stubDoc) PagePointSize(int) (float64, float64, error) { return 612, 792, nil }

type stubOpener struct {
	docs map[string]int // path -> page count; absent paths fail to open
}

func (o *stubOpener) Open(path string) (deck.Document, error) {
	pages, ok := o.docs[path]
	if !ok {
		return nil, errors.New("not a pdf")
	}
	return &stubDoc{path: path, pages: pages}, nil
}

// stubRenderer returns fixed-size images, optionally tall ones per path.
type stubRenderer struct {
	heights map[string]int // path -> rendered height (default 1080)
	calls   int
}

func (r *stubRenderer) RenderPage(_ context.Context, path string, _ int, targetWidth int) (image.Image, error) {
	r.calls++
	h := 1080
	if override, ok := r.heights[path]; ok {
		h = override
	}
	return image.NewRGBA(image.Rect(0, 0, targetWidth, h)), nil
}

func newDeckService(opener *stubOpener, renderer service.PageRenderer, emitter *service.MockEmitter) *service.DeckService {
	return service.NewDeckService(opener, renderer, render.NewCache(), nil, nil, 200, emitter)
}

// ─────────────────────────────────────────────────────────────
// DeckService
// ─────────────────────────────────────────────────────────────

func TestDeckService_ImportPartialFailure(t *testing.T) {
	emitter := &service.MockEmitter{}
	svc := newDeckService(&stubOpener{docs: map[string]int{"a.pdf": 3, "c.pdf": 2}}, nil, emitter)

	result, err := svc.ImportFiles(context.Background(), []string{"a.pdf", "broken.pdf", "c.pdf"})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(result.Added) != 5 {
		t.Fatalf("expected 5 slides added, got %d", len(result.Added))
	}
	if len(result.Failures) != 1 || result.Failures[0].Path != "broken.pdf" {
		t.Fatalf("expected one failure for broken.pdf, got %+v", result.Failures)
	}
	if got := len(emitter.Named("deck:import-failed")); got != 1 {
		t.Fatalf("expected 1 import-failed event, got %d", got)
	}

	state := svc.State()
	if len(state.Slides) != 5 {
		t.Fatalf("expected 5 slides in order, got %d", len(state.Slides))
	}
	for i, s := range state.Slides {
		if s.ID != i {
			t.Fatalf("expected global ids 0..4 in import order, got %+v", state.Slides)
		}
	}
	if state.CurrentFile != "a.pdf" {
		t.Fatalf("expected a.pdf as current file, got %q", state.CurrentFile)
	}
}

func TestDeckService_ReimportSamePathDedupes(t *testing.T) {
	emitter := &service.MockEmitter{}
	svc := newDeckService(&stubOpener{docs: map[string]int{"a.pdf": 3}}, nil, emitter)

	svc.ImportFiles(context.Background(), []string{"a.pdf"})
	result, _ := svc.ImportFiles(context.Background(), []string{"a.pdf"})

	if len(result.Added) != 0 {
		t.Fatalf("expected re-import to add nothing, got %d slides", len(result.Added))
	}
	if got := svc.Order().Len(); got != 3 {
		t.Fatalf("expected 3 slides, got %d", got)
	}
}

func TestDeckService_ImportRendersThumbnails(t *testing.T) {
	emitter := &service.MockEmitter{}
	renderer := &stubRenderer{}
	opener := &stubOpener{docs: map[string]int{"a.pdf": 4}}
	svc := service.NewDeckService(opener, renderer, render.NewCache(), nil, nil, 200, emitter)

	svc.ImportFiles(context.Background(), []string{"a.pdf"})
	if renderer.calls != 4 {
		t.Fatalf("expected 4 thumbnail renders, got %d", renderer.calls)
	}
}

func TestDeckService_MoveAndRemoveEmitState(t *testing.T) {
	emitter := &service.MockEmitter{}
	svc := newDeckService(&stubOpener{docs: map[string]int{"a.pdf": 4}}, nil, emitter)
	ctx := context.Background()
	svc.ImportFiles(ctx, []string{"a.pdf"})

	if !svc.Move(ctx, 0, 2) {
		t.Fatal("expected move to succeed")
	}
	if svc.Move(ctx, 9, 0) {
		t.Fatal("expected out-of-range move to be rejected")
	}
	if !svc.Remove(ctx, 0) {
		t.Fatal("expected remove to succeed")
	}

	events := emitter.Named("deck:changed")
	// import + successful move + successful remove; the rejected move must
	// not emit.
	if len(events) != 3 {
		t.Fatalf("expected 3 deck:changed events, got %d", len(events))
	}
	last := events[len(events)-1].Data.(domain.DeckState)
	want := []int{2, 0, 3}
	for i, s := range last.Slides {
		if s.ID != want[i] {
			t.Fatalf("expected order %v, got %+v", want, last.Slides)
		}
	}
}

func TestDeckService_BrowseFolder(t *testing.T) {
	dir := t.TempDir()
	emitter := &service.MockEmitter{}
	svc := newDeckService(&stubOpener{}, nil, emitter)

	writeFile := func(name string) {
		t.Helper()
		if err := writeTestFile(dir, name); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("talk.pdf")
	writeFile("Notes.PDF")
	writeFile("readme.txt")
	writeFile(".hidden.pdf")

	entries, err := svc.BrowseFolder(dir)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 pdf entries, got %+v", entries)
	}
	if entries[0].Name != "Notes.PDF" || entries[1].Name != "talk.pdf" {
		t.Fatalf("expected case-insensitive pdf match sorted by name, got %+v", entries)
	}
}

func writeTestFile(dir, name string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644)
}

// ─────────────────────────────────────────────────────────────
// PresentService
// ─────────────────────────────────────────────────────────────

func newPresentPair(t *testing.T, tallPaths map[string]int, docs map[string]int) (*service.DeckService, *service.PresentService, *service.MockEmitter) {
	t.Helper()
	emitter := &service.MockEmitter{}
	renderer := &stubRenderer{heights: tallPaths}
	cache := render.NewCache()
	deckSvc := service.NewDeckService(&stubOpener{docs: docs}, renderer, cache, nil, nil, 200, emitter)
	presentSvc := service.NewPresentService(deckSvc.Order(), deckSvc.Registry(), cache, renderer, 1920, 1080, 0, emitter)
	return deckSvc, presentSvc, emitter
}

func TestPresentService_TallSlideNavigation(t *testing.T) {
	deckSvc, presentSvc, emitter := newPresentPair(t,
		map[string]int{"tall.pdf": 2400}, map[string]int{"tall.pdf": 2})
	ctx := context.Background()

	deckSvc.ImportFiles(ctx, []string{"tall.pdf"})
	presentSvc.Enter(ctx)

	presentSvc.Next(ctx)
	state := presentSvc.State()
	if state.Position != 0 || state.VerticalOffset != 1.0 {
		t.Fatalf("expected scroll within slide 0, got %+v", state)
	}
	if got := len(emitter.Named("presentation:offset-changed")); got != 1 {
		t.Fatalf("expected one offset event, got %d", got)
	}

	presentSvc.Next(ctx)
	state = presentSvc.State()
	if state.Position != 1 || state.VerticalOffset != 0.0 {
		t.Fatalf("expected advance to slide 1, got %+v", state)
	}
}

func TestPresentService_OrganizerSelectionResetsOffset(t *testing.T) {
	deckSvc, presentSvc, _ := newPresentPair(t,
		map[string]int{"tall.pdf": 2400}, map[string]int{"tall.pdf": 3})
	ctx := context.Background()

	deckSvc.ImportFiles(ctx, []string{"tall.pdf"})
	presentSvc.Enter(ctx)

	// Scroll within the tall first slide, then select another slide in the
	// organizer: the new slide must start at its top.
	presentSvc.Next(ctx)
	if state := presentSvc.State(); state.VerticalOffset != 1.0 {
		t.Fatalf("expected scrolled slide, got %+v", state)
	}

	previousID, _ := deckSvc.Order().IDAt(deckSvc.Order().Current())
	if !deckSvc.JumpTo(ctx, 2) {
		t.Fatal("expected selection to succeed")
	}
	presentSvc.ReconcileAfterMutation(ctx, previousID)

	state := presentSvc.State()
	if state.Position != 2 || state.VerticalOffset != 0.0 {
		t.Fatalf("expected slide 2 at offset 0, got %+v", state)
	}

	// Re-selecting the current slide keeps the scroll position.
	presentSvc.Next(ctx)
	previousID, _ = deckSvc.Order().IDAt(deckSvc.Order().Current())
	deckSvc.JumpTo(ctx, 2)
	presentSvc.ReconcileAfterMutation(ctx, previousID)
	if state := presentSvc.State(); state.VerticalOffset != 1.0 {
		t.Fatalf("expected offset preserved on same-slide selection, got %+v", state)
	}
}

func TestPresentService_NotesFollowSlideAcrossMove(t *testing.T) {
	deckSvc, presentSvc, _ := newPresentPair(t, nil, map[string]int{"a.pdf": 3})
	ctx := context.Background()
	deckSvc.ImportFiles(ctx, []string{"a.pdf"})

	if !presentSvc.SetNotesFor(0, "belongs to the opening slide") {
		t.Fatal("expected note to be recorded")
	}

	// Move the first slide to the end; its note must travel with it.
	deckSvc.Move(ctx, 0, 2)

	if got := presentSvc.NotesFor(2); got != "belongs to the opening slide" {
		t.Fatalf("expected note at new position 2, got %q", got)
	}
	if got := presentSvc.NotesFor(0); got != "" {
		t.Fatalf("expected no note at position 0, got %q", got)
	}
}

func TestPresentService_EnterIsIdempotent(t *testing.T) {
	deckSvc, presentSvc, _ := newPresentPair(t, nil, map[string]int{"a.pdf": 2})
	ctx := context.Background()
	deckSvc.ImportFiles(ctx, []string{"a.pdf"})

	presentSvc.Enter(ctx)
	first := presentSvc.State()
	presentSvc.Enter(ctx) // e.g. projector reopened
	second := presentSvc.State()

	if first.Position != second.Position || second.SlideCount != 2 {
		t.Fatalf("expected stable state across re-enter, got %+v then %+v", first, second)
	}
}

func TestPresentService_JumpToEmitsSlideChanged(t *testing.T) {
	deckSvc, presentSvc, emitter := newPresentPair(t, nil, map[string]int{"a.pdf": 3})
	ctx := context.Background()
	deckSvc.ImportFiles(ctx, []string{"a.pdf"})

	if !presentSvc.JumpTo(ctx, 2) {
		t.Fatal("expected jump to succeed")
	}
	if presentSvc.JumpTo(ctx, 9) {
		t.Fatal("expected out-of-range jump to be rejected")
	}

	events := emitter.Named("presentation:slide-changed")
	if len(events) != 1 {
		t.Fatalf("expected 1 slide-changed event, got %d", len(events))
	}
	state := events[0].Data.(domain.PresentationState)
	if state.Position != 2 {
		t.Fatalf("expected position 2, got %+v", state)
	}
}

func TestPresentService_AutosaveSpec(t *testing.T) {
	_, presentSvc, _ := newPresentPair(t, nil, map[string]int{"a.pdf": 1})
	defer presentSvc.Close()

	if err := presentSvc.StartAutosave(""); err != nil {
		t.Fatalf("empty spec must disable autosave, got %v", err)
	}
	if err := presentSvc.StartAutosave("not a cron spec"); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	if err := presentSvc.StartAutosave("@every 1m"); err != nil {
		t.Fatalf("valid spec: %v", err)
	}
}
