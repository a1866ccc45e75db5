package storage_test

import (
	"path/filepath"
	"testing"

	"pdfpresenter/internal/domain"
	"pdfpresenter/internal/storage"
)

func testDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "pdfpresenter.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecentStore_TouchAndList(t *testing.T) {
	store := storage.NewRecentStore(testDB(t))

	if err := store.Touch("/talks/a.pdf", 12); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := store.Touch("/talks/b.pdf", 4); err != nil {
		t.Fatalf("touch: %v", err)
	}
	// Re-touch must update, not duplicate.
	if err := store.Touch("/talks/a.pdf", 13); err != nil {
		t.Fatalf("re-touch: %v", err)
	}

	files, err := store.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(files))
	}
	if files[0].Path != "/talks/a.pdf" || files[0].SlideCount != 13 {
		t.Fatalf("expected updated a.pdf first, got %+v", files[0])
	}
}

func TestRecentStore_Remove(t *testing.T) {
	store := storage.NewRecentStore(testDB(t))
	store.Touch("/talks/gone.pdf", 1)

	if err := store.Remove("/talks/gone.pdf"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	files, _ := store.List(10)
	if len(files) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(files))
	}
}

func TestLayoutStore_RoundTrip(t *testing.T) {
	store := storage.NewLayoutStore(testDB(t))

	layout := []domain.LayoutEntry{
		{SourcePath: "/talks/a.pdf", PageIndex: 2},
		{SourcePath: "/talks/b.pdf", PageIndex: 0},
		{SourcePath: "/talks/a.pdf", PageIndex: 0},
	}
	if err := store.Save("/talks/a.pdf", layout); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load("/talks/a.pdf")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for i := range layout {
		if got[i] != layout[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, layout[i], got[i])
		}
	}
}

func TestLayoutStore_LoadMissing(t *testing.T) {
	store := storage.NewLayoutStore(testDB(t))
	got, err := store.Load("/talks/never-seen.pdf")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil layout, got %v", got)
	}
}
