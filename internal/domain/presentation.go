package domain

// PresentationState is the presenter-view state sent with
// presentation:slide-changed events. Both the presenter and the projector
// view render from the same state object, which is what keeps them in
// lock-step.
type PresentationState struct {
	Active         bool    `json:"active"`
	Position       int     `json:"position"`
	SlideID        int     `json:"slideId"`
	VerticalOffset float64 `json:"verticalOffset"`
	Notes          string  `json:"notes"`
	TimerDisplay   string  `json:"timerDisplay"`
	TimerRunning   bool    `json:"timerRunning"`
	SlideCount     int     `json:"slideCount"`
}

// FileEntry is one row of the folder browser tree.
type FileEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"isDir"`
}
