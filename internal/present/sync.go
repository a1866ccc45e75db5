// Package present holds the presentation-mode logic: the navigation state
// shared by the presenter and projector views, the projector framing rule
// for over-tall pages, and the talk timer.
package present

// SlideSource is the presentation order Sync navigates over. deck.Order
// satisfies it; tests inject something smaller.
type SlideSource interface {
	Len() int
	Current() int
	JumpTo(position int) bool
	IDAt(position int) (id int, ok bool)
}

// Metrics reports rendered projection geometry so Sync can tell whether the
// current slide is taller than the projector viewport.
type Metrics interface {
	// ImageHeight returns the projection image height for a slide id.
	// ok is false when the slide has not been rendered yet.
	ImageHeight(slideID int) (h int, ok bool)
	// ViewportHeight is the projector window height in pixels.
	ViewportHeight() int
}

// Step describes what a Next or Prev call actually did.
type Step int

const (
	// StepNone means nothing changed (already at the deck edge).
	StepNone Step = iota
	// StepScrolled means only the vertical offset moved; the slide held.
	StepScrolled
	// StepSlide means the position changed to another slide.
	StepSlide
)

// Sync is the single navigation state both views render from. A "next" on a
// page taller than the viewport first scrolls it to the bottom and only then
// advances, so one key walks through everything; "previous" mirrors this and
// lands at the bottom of a tall preceding page.
type Sync struct {
	order   SlideSource
	metrics Metrics
	offset  float64
}

// NewSync returns a Sync over the given order and projection metrics.
func NewSync(order SlideSource, metrics Metrics) *Sync {
	return &Sync{order: order, metrics: metrics}
}

// Position returns the current position in the order.
func (s *Sync) Position() int {
	return s.order.Current()
}

// VerticalOffset returns the scroll progress through the current slide,
// 0 at the top and 1 at the bottom.
func (s *Sync) VerticalOffset() float64 {
	return s.offset
}

// JumpTo moves directly to a position and resets the scroll offset.
// Out-of-range positions are ignored.
func (s *Sync) JumpTo(position int) bool {
	if !s.order.JumpTo(position) {
		return false
	}
	s.offset = 0
	return true
}

// Next advances: scroll a tall page to its bottom edge first, then step to
// the following slide.
func (s *Sync) Next() Step {
	if s.currentIsTall() && s.offset < 1.0 {
		s.offset = 1.0
		return StepScrolled
	}
	if !s.order.JumpTo(s.order.Current() + 1) {
		return StepNone
	}
	s.offset = 0
	return StepSlide
}

// Prev retreats: scroll back to the top edge first, then step to the
// preceding slide, arriving at its bottom when it is tall.
func (s *Sync) Prev() Step {
	if s.offset > 0 {
		s.offset = 0
		return StepScrolled
	}
	if !s.order.JumpTo(s.order.Current() - 1) {
		return StepNone
	}
	if s.currentIsTall() {
		s.offset = 1.0
	} else {
		s.offset = 0
	}
	return StepSlide
}

// ClampAfterMutation re-reads the order after an organizer mutation
// (move/delete) and resets the offset when the current slide changed
// identity. id is the slide id that was current before the mutation.
func (s *Sync) ClampAfterMutation(previousID int) {
	id, ok := s.order.IDAt(s.order.Current())
	if !ok || id != previousID {
		s.offset = 0
	}
}

func (s *Sync) currentIsTall() bool {
	id, ok := s.order.IDAt(s.order.Current())
	if !ok {
		return false
	}
	h, ok := s.metrics.ImageHeight(id)
	if !ok {
		return false
	}
	return h > s.metrics.ViewportHeight()
}
