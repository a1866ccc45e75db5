package app

// ============================================================
// Speaker Notes
// ============================================================

// GetCurrentNotes returns the note text for the current slide.
func (a *App) GetCurrentNotes() string {
	return a.present.CurrentNotes()
}

// SetCurrentNotes replaces the note text for the current slide. Notes are
// keyed by the slide's id, so they follow the slide through reorders.
func (a *App) SetCurrentNotes(text string) {
	a.present.SetCurrentNotes(text)
}

// GetNotesFor returns the note for the slide at position.
func (a *App) GetNotesFor(position int) string {
	return a.present.NotesFor(position)
}

// SetNotesFor replaces the note for the slide at position.
func (a *App) SetNotesFor(position int, text string) bool {
	return a.present.SetNotesFor(position, text)
}

// SaveNotes writes all notes to the sidecar file next to the PDF.
func (a *App) SaveNotes() error {
	return a.present.SaveNotes()
}

// GetNotesSidecarPath returns the path notes are saved to, or "" when no
// file is loaded yet.
func (a *App) GetNotesSidecarPath() string {
	return a.present.NotesSidecarPath()
}
