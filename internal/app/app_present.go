package app

import (
	"pdfpresenter/internal/domain"
	"pdfpresenter/internal/present"
)

// ============================================================
// Presentation — navigation, projector framing, timer
// ============================================================

// StartPresentation enters presentation mode, rendering projector images
// for every slide that doesn't have one yet.
func (a *App) StartPresentation() {
	a.present.Enter(a.ctx)
}

// StopPresentation leaves presentation mode. The timer keeps its elapsed
// time so the talk can resume where it stopped.
func (a *App) StopPresentation() {
	a.present.Exit(a.ctx)
}

// IsPresenting reports whether presentation mode is active.
func (a *App) IsPresenting() bool {
	return a.present.Active()
}

// NextSlide advances the presentation. A slide taller than the projector
// scrolls to its bottom half first.
func (a *App) NextSlide() {
	a.present.Next(a.ctx)
}

// PrevSlide steps back. A scrolled slide returns to its top first, and
// stepping back onto a tall slide lands at its bottom.
func (a *App) PrevSlide() {
	a.present.Prev(a.ctx)
}

// JumpToSlide shows the slide at position directly, from the top.
func (a *App) JumpToSlide(position int) bool {
	return a.present.JumpTo(a.ctx, position)
}

// GetPresentationState returns the presenter-view state: position, scroll
// offset, notes and timer.
func (a *App) GetPresentationState() domain.PresentationState {
	return a.present.State()
}

// GetProjectorFrame returns how the current slide maps onto the projector:
// either centered, or a viewport-high slice at the scroll offset.
func (a *App) GetProjectorFrame() present.Frame {
	return a.present.Frame()
}

// SetProjectorViewport tells the backend the projector window's pixel
// height, which decides when a slide needs two-phase scrolling.
func (a *App) SetProjectorViewport(height int) {
	a.present.SetViewportHeight(height)
}

// StartTimer starts or resumes the talk timer.
func (a *App) StartTimer() {
	a.present.StartTimer()
}

// StopTimer pauses the talk timer, keeping the elapsed time.
func (a *App) StopTimer() {
	a.present.StopTimer()
}

// GetTimerDisplay returns the current timer reading as mm:ss.
func (a *App) GetTimerDisplay() string {
	return a.present.TimerDisplay()
}
