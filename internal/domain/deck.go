package domain

import "time"

// Slide is one entry of the presentation order as shown to the frontend.
// ID is the session-global slide id; Position is its index in the current
// order. SourcePath and PageIndex identify the underlying document page.
type Slide struct {
	ID         int    `json:"id"`
	Position   int    `json:"position"`
	SourcePath string `json:"sourcePath"`
	PageIndex  int    `json:"pageIndex"`
}

// DeckState is the full organizer state sent with deck:changed events.
type DeckState struct {
	Slides          []Slide `json:"slides"`
	CurrentPosition int     `json:"currentPosition"`
	CurrentFile     string  `json:"currentFile"`
}

// ImportFailure reports one file of a batch import that could not be loaded.
// The rest of the batch is unaffected.
type ImportFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ImportResult summarizes a batch import.
type ImportResult struct {
	Added    []Slide         `json:"added"`
	Failures []ImportFailure `json:"failures"`
}

// LayoutEntry is one slide of a persisted deck layout. Global slide ids are
// volatile per session, so layouts are stored as (path, page) pairs and
// re-resolved on restore.
type LayoutEntry struct {
	SourcePath string `json:"sourcePath"`
	PageIndex  int    `json:"pageIndex"`
}

// RecentFile is one row of the recently-opened list.
type RecentFile struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	SlideCount int       `json:"slideCount"`
	LastOpened time.Time `json:"lastOpened"`
}
