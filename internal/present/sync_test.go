package present_test

import (
	"testing"

	"pdfpresenter/internal/deck"
	"pdfpresenter/internal/present"
)

// fakeMetrics maps slide ids to projection heights over a fixed viewport.
type fakeMetrics struct {
	heights  map[int]int
	viewport int
}

func (m *fakeMetrics) ImageHeight(id int) (int, bool) {
	h, ok := m.heights[id]
	return h, ok
}

func (m *fakeMetrics) ViewportHeight() int { return m.viewport }

func newSync(t *testing.T, heights map[int]int, ids ...int) *present.Sync {
	t.Helper()
	o := deck.NewOrder()
	o.Append(ids)
	return present.NewSync(o, &fakeMetrics{heights: heights, viewport: 1080})
}

func TestSync_NextThroughTallSlide(t *testing.T) {
	s := newSync(t, map[int]int{0: 2400, 1: 1000}, 0, 1)

	// First next scrolls the tall slide to its bottom without advancing.
	if step := s.Next(); step != present.StepScrolled {
		t.Fatalf("expected StepScrolled, got %v", step)
	}
	if s.Position() != 0 || s.VerticalOffset() != 1.0 {
		t.Fatalf("expected position 0 at offset 1.0, got %d at %v", s.Position(), s.VerticalOffset())
	}

	// Second next advances and resets the offset.
	if step := s.Next(); step != present.StepSlide {
		t.Fatalf("expected StepSlide, got %v", step)
	}
	if s.Position() != 1 || s.VerticalOffset() != 0.0 {
		t.Fatalf("expected position 1 at offset 0, got %d at %v", s.Position(), s.VerticalOffset())
	}

	// At the deck end nothing moves.
	if step := s.Next(); step != present.StepNone {
		t.Fatalf("expected StepNone at end of deck, got %v", step)
	}
}

func TestSync_PrevArrivesAtBottomOfTallSlide(t *testing.T) {
	s := newSync(t, map[int]int{0: 2400, 1: 1000}, 0, 1)
	s.JumpTo(1)

	if step := s.Prev(); step != present.StepSlide {
		t.Fatalf("expected StepSlide, got %v", step)
	}
	if s.Position() != 0 || s.VerticalOffset() != 1.0 {
		t.Fatalf("expected bottom of tall slide 0, got position %d offset %v", s.Position(), s.VerticalOffset())
	}

	// Prev from the bottom scrolls to the top first.
	if step := s.Prev(); step != present.StepScrolled {
		t.Fatalf("expected StepScrolled, got %v", step)
	}
	if s.Position() != 0 || s.VerticalOffset() != 0.0 {
		t.Fatalf("expected top of slide 0, got position %d offset %v", s.Position(), s.VerticalOffset())
	}

	if step := s.Prev(); step != present.StepNone {
		t.Fatalf("expected StepNone at start of deck, got %v", step)
	}
}

func TestSync_ShortSlidesAdvanceDirectly(t *testing.T) {
	s := newSync(t, map[int]int{0: 800, 1: 800, 2: 800}, 0, 1, 2)

	for want := 1; want <= 2; want++ {
		if step := s.Next(); step != present.StepSlide {
			t.Fatalf("expected StepSlide, got %v", step)
		}
		if s.Position() != want {
			t.Fatalf("expected position %d, got %d", want, s.Position())
		}
	}
}

func TestSync_JumpToResetsOffset(t *testing.T) {
	s := newSync(t, map[int]int{0: 2400, 1: 800, 2: 800}, 0, 1, 2)
	s.Next() // scroll the tall slide

	if !s.JumpTo(2) {
		t.Fatal("expected jump to succeed")
	}
	if s.VerticalOffset() != 0 {
		t.Fatalf("expected offset reset, got %v", s.VerticalOffset())
	}
	if s.JumpTo(5) {
		t.Fatal("expected out-of-range jump to be rejected")
	}
	if s.Position() != 2 {
		t.Fatalf("expected position unchanged, got %d", s.Position())
	}
}

func TestSync_UnrenderedSlideIsNotTall(t *testing.T) {
	s := newSync(t, map[int]int{}, 0, 1)
	if step := s.Next(); step != present.StepSlide {
		t.Fatalf("expected direct advance without metrics, got %v", step)
	}
}

func TestProjectorFrame(t *testing.T) {
	tests := []struct {
		name       string
		imageH     int
		viewportH  int
		offset     float64
		wantY      float64
		wantSrcH   float64
		wantDestY  float64
		wantCenter bool
	}{
		{"fits and centers", 800, 1080, 0, 0, 800, 140, true},
		{"exact fit", 1080, 1080, 0.5, 0, 1080, 0, true},
		{"tall at top", 2080, 1080, 0, 0, 1080, 0, false},
		{"tall at bottom", 2080, 1080, 1, 1000, 1080, 0, false},
		{"tall midway", 2080, 1080, 0.5, 500, 1080, 0, false},
		{"offset clamped", 2080, 1080, 1.5, 1000, 1080, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := present.ProjectorFrame(tt.imageH, tt.viewportH, tt.offset)
			if f.SourceY != tt.wantY || f.SourceHeight != tt.wantSrcH ||
				f.DestY != tt.wantDestY || f.Centered != tt.wantCenter {
				t.Fatalf("got %+v", f)
			}
		})
	}
}
