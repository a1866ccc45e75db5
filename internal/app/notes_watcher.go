package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"pdfpresenter/internal/notes"
	"pdfpresenter/internal/service"
)

// notesReloader is the slice of PresentService the watcher needs: reload
// the store from disk and tell the app's own sidecar writes apart from
// external ones.
type notesReloader interface {
	LoadNotes(pdfPath string) error
	NotesSaveCount() uint64
}

// notesWatcher watches the notes sidecar file on disk. When an external
// editor saves it, the store is reloaded and the frontend gets a
// notes:file-changed event so the presenter view refreshes. Writes made by
// the app itself (SaveNotes, autosave) are recognized by the store's save
// counter and skipped, so a save never clobbers in-flight edits or echoes
// back as a change event.
type notesWatcher struct {
	watcher *fsnotify.Watcher
	present notesReloader
	emitter service.EventEmitter

	mu       sync.Mutex
	pdfPath  string
	sidecar  string
	lastSave uint64
}

func newNotesWatcher(present notesReloader, emitter service.EventEmitter) (*notesWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &notesWatcher{
		watcher: watcher,
		present: present,
		emitter: emitter,
	}

	go w.watchLoop()

	return w, nil
}

// Watch switches the watcher to the sidecar of pdfPath.
func (w *notesWatcher) Watch(pdfPath string) error {
	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.pdfPath = absPath
	w.sidecar = notes.SidecarPath(absPath)
	w.lastSave = w.present.NotesSaveCount()
	w.mu.Unlock()

	// Watch the directory (fsnotify watches dirs for file events); the
	// sidecar usually doesn't exist until the first save.
	return w.watcher.Add(filepath.Dir(absPath))
}

// Close stops the watcher.
func (w *notesWatcher) Close() error {
	return w.watcher.Close()
}

func (w *notesWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.handleEvent(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("notes watcher error")
		}
	}
}

// handleEvent reacts to one write/create under the watched directory.
// Returns true when the event was an external sidecar edit that triggered a
// reload and a notes:file-changed emission.
func (w *notesWatcher) handleEvent(name string) bool {
	absPath, _ := filepath.Abs(name)

	w.mu.Lock()
	pdfPath := w.pdfPath
	watched := absPath == w.sidecar
	saves := w.present.NotesSaveCount()
	selfWrite := saves != w.lastSave
	w.lastSave = saves
	w.mu.Unlock()

	if !watched || selfWrite {
		return false
	}
	if err := w.present.LoadNotes(pdfPath); err != nil {
		log.Warn().Err(err).Str("path", absPath).Msg("reload notes")
		return false
	}
	w.emitter.Emit(context.Background(), "notes:file-changed", map[string]string{
		"path": absPath,
	})
	return true
}
