package service

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"pdfpresenter/internal/deck"
	"pdfpresenter/internal/domain"
	"pdfpresenter/internal/notes"
	"pdfpresenter/internal/present"
	"pdfpresenter/internal/render"
)

// ─────────────────────────────────────────────────────────────
// Presentation Service — presenter/projector sync, notes, timer
// ─────────────────────────────────────────────────────────────

// PresentService drives presentation mode. It shares the deck service's
// Order instance, so organizer mutations and presenter navigation act on the
// same current position, and pushes every change to both views through
// presentation:* events.
type PresentService struct {
	mu       sync.Mutex
	order    *deck.Order
	registry *deck.Registry
	cache    *render.Cache
	renderer PageRenderer
	notes    *notes.Store
	sync     *present.Sync
	timer    *present.PauseableTimer
	emitter  EventEmitter

	active         bool
	notesPath      string
	projW, projH   int
	viewportHeight int
	autosave       *cron.Cron
}

// NewPresentService wires the presentation state over the shared order.
// projW/projH is the target size projection images are rendered for; tick
// is the timer update interval (0 disables the background ticker, which
// tests rely on).
func NewPresentService(
	order *deck.Order,
	registry *deck.Registry,
	cache *render.Cache,
	renderer PageRenderer,
	projW, projH int,
	tick time.Duration,
	emitter EventEmitter,
) *PresentService {
	s := &PresentService{
		order:          order,
		registry:       registry,
		cache:          cache,
		renderer:       renderer,
		notes:          notes.New(),
		emitter:        emitter,
		projW:          projW,
		projH:          projH,
		viewportHeight: projH,
	}
	s.sync = present.NewSync(order, s)
	s.timer = present.NewTimerWithClock(func(display string) {
		// Runs on the ticker goroutine; EventsEmit hands the value to the
		// frontend event loop, so no UI state is touched off-thread.
		s.emitter.Emit(context.Background(), "timer:tick", map[string]string{"display": display})
	}, time.Now, tick)
	return s
}

// ImageHeight implements present.Metrics over the projection cache.
func (s *PresentService) ImageHeight(slideID int) (int, bool) {
	return s.cache.ProjectionHeight(slideID)
}

// ViewportHeight implements present.Metrics.
func (s *PresentService) ViewportHeight() int {
	return s.viewportHeight
}

// SetViewportHeight records the projector window height. Called by the
// frontend on projector resize; the next framing query uses it.
func (s *PresentService) SetViewportHeight(h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h > 0 {
		s.viewportHeight = h
	}
}

// Enter switches to presentation mode: renders projection images for every
// slide in the order (idempotent, safe to repeat after a resize) and
// announces the current slide to both views.
func (s *PresentService) Enter(ctx context.Context) {
	s.mu.Lock()
	s.active = true
	for _, id := range s.order.IDs() {
		if s.cache.HasProjection(id) {
			continue
		}
		ref, err := s.registry.Resolve(id)
		if err != nil {
			log.Error().Err(err).Int("slide", id).Msg("projection skipped")
			continue
		}
		if s.renderer == nil {
			continue
		}
		img, err := s.renderer.RenderPage(ctx, ref.Doc.Path(), ref.PageIndex, s.projW)
		if err != nil {
			log.Warn().Err(err).Int("slide", id).Msg("projection render failed")
			continue
		}
		s.cache.SetProjection(id, render.FitWidth(img, s.projW))
	}
	s.mu.Unlock()

	s.emitter.Emit(ctx, "presentation:mode-changed", map[string]bool{"active": true})
	s.emitSlideChanged(ctx)
	log.Info().Int("slides", s.order.Len()).Msg("presentation started")
}

// Exit leaves presentation mode, stopping the timer and dropping the
// projection images.
func (s *PresentService) Exit(ctx context.Context) {
	s.mu.Lock()
	s.active = false
	s.cache.ClearProjections()
	s.mu.Unlock()

	s.timer.Stop()
	s.emitter.Emit(ctx, "presentation:mode-changed", map[string]bool{"active": false})
}

// Active reports whether presentation mode is on.
func (s *PresentService) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Next advances through the deck, scrolling tall slides first.
func (s *PresentService) Next(ctx context.Context) {
	s.step(ctx, s.sync.Next)
}

// Prev retreats through the deck, scrolling back up tall slides first.
func (s *PresentService) Prev(ctx context.Context) {
	s.step(ctx, s.sync.Prev)
}

// JumpTo moves both views directly to a position.
func (s *PresentService) JumpTo(ctx context.Context, position int) bool {
	s.mu.Lock()
	ok := s.sync.JumpTo(position)
	s.mu.Unlock()
	if ok {
		s.emitSlideChanged(ctx)
	}
	return ok
}

// ReconcileAfterMutation resets the scroll offset when an organizer
// mutation changed which slide is current, then re-announces the state.
func (s *PresentService) ReconcileAfterMutation(ctx context.Context, previousID int) {
	s.mu.Lock()
	s.sync.ClampAfterMutation(previousID)
	s.mu.Unlock()
	s.emitSlideChanged(ctx)
}

// Frame returns the projector framing for the current slide.
func (s *PresentService) Frame() present.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.order.CurrentID()
	if !ok {
		return present.Frame{}
	}
	h, ok := s.cache.ProjectionHeight(id)
	if !ok {
		return present.Frame{}
	}
	return present.ProjectorFrame(h, s.viewportHeight, s.sync.VerticalOffset())
}

// State returns the current presenter-view state.
func (s *PresentService) State() domain.PresentationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// ── Timer ──────────────────────────────────────────────────

func (s *PresentService) StartTimer() {
	s.timer.Start()
}

func (s *PresentService) StopTimer() {
	s.timer.Stop()
}

func (s *PresentService) TimerDisplay() string {
	return s.timer.Display()
}

// ── Notes ──────────────────────────────────────────────────

// LoadNotes reads the sidecar next to pdfPath and remembers the path for
// later saves. A missing sidecar leaves the store empty.
func (s *PresentService) LoadNotes(pdfPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notesPath = pdfPath
	return s.notes.Load(pdfPath)
}

// CurrentNotes returns the note text for the current slide.
func (s *PresentService) CurrentNotes() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.order.CurrentID()
	if !ok {
		return ""
	}
	return s.notes.Get(id)
}

// SetCurrentNotes records note text against the current slide's global id,
// so the note follows the slide through reorders.
func (s *PresentService) SetCurrentNotes(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.order.CurrentID()
	if !ok {
		return
	}
	s.notes.Set(id, text)
}

// NotesFor returns the note for the slide at a given position.
func (s *PresentService) NotesFor(position int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.order.IDAt(position)
	if !ok {
		return ""
	}
	return s.notes.Get(id)
}

// SetNotesFor records a note for the slide at a given position.
func (s *PresentService) SetNotesFor(position int, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.order.IDAt(position)
	if !ok {
		return false
	}
	s.notes.Set(id, text)
	return true
}

// SaveNotes writes the sidecar. A store with no entries is a logged no-op.
func (s *PresentService) SaveNotes() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notesPath == "" {
		log.Debug().Msg("no presentation loaded, nothing to save")
		return nil
	}
	return s.notes.Save(s.notesPath)
}

// NotesSaveCount reports how many times the sidecar has been written by
// this process. The notes watcher compares it across file events to skip
// the ones our own saves caused.
func (s *PresentService) NotesSaveCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.SaveCount()
}

// NotesSidecarPath returns the sidecar path notes are saved to, or "".
func (s *PresentService) NotesSidecarPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notesPath == "" {
		return ""
	}
	return notes.SidecarPath(s.notesPath)
}

// StartAutosave schedules background saving of dirty notes. An empty spec
// disables it.
func (s *PresentService) StartAutosave(spec string) error {
	if spec == "" {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		s.mu.Lock()
		dirty := s.notes.Dirty() && s.notesPath != ""
		s.mu.Unlock()
		if !dirty {
			return
		}
		if err := s.SaveNotes(); err != nil {
			log.Warn().Err(err).Msg("notes autosave failed")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	s.autosave = c
	log.Info().Str("schedule", spec).Msg("notes autosave scheduled")
	return nil
}

// Close stops background work (autosave, timer).
func (s *PresentService) Close() {
	if s.autosave != nil {
		s.autosave.Stop()
	}
	s.timer.Stop()
}

// ── internals ──────────────────────────────────────────────

func (s *PresentService) step(ctx context.Context, fn func() present.Step) {
	s.mu.Lock()
	step := fn()
	s.mu.Unlock()

	switch step {
	case present.StepSlide:
		s.emitSlideChanged(ctx)
	case present.StepScrolled:
		s.emitter.Emit(ctx, "presentation:offset-changed", map[string]float64{
			"verticalOffset": s.sync.VerticalOffset(),
		})
	}
}

func (s *PresentService) emitSlideChanged(ctx context.Context) {
	s.mu.Lock()
	state := s.stateLocked()
	s.mu.Unlock()
	s.emitter.Emit(ctx, "presentation:slide-changed", state)
}

func (s *PresentService) stateLocked() domain.PresentationState {
	id, _ := s.order.CurrentID()
	return domain.PresentationState{
		Active:         s.active,
		Position:       s.order.Current(),
		SlideID:        id,
		VerticalOffset: s.sync.VerticalOffset(),
		Notes:          s.notes.Get(id),
		TimerDisplay:   s.timer.Display(),
		TimerRunning:   s.timer.Running(),
		SlideCount:     s.order.Len(),
	}
}
