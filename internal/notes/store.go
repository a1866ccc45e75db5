// Package notes persists per-slide speaker notes in a sidecar text file next
// to the presented PDF. The format is line-oriented: a marker line
// "==XXslide<id>" introduces a slide, and everything up to the next marker is
// that slide's note text. Notes are keyed by the session-global slide id, not
// by position, so they stay attached to the right slide across reordering.
package notes

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const marker = "==XXslide"

// SidecarPath returns the notes file path for a presented PDF.
func SidecarPath(pdfPath string) string {
	return pdfPath + ".notes"
}

// Store holds slide-id → note text. The zero value is not usable; call New.
type Store struct {
	entries map[int]string
	dirty   bool
	saves   uint64
}

// New returns an empty Store.
func New() *Store {
	return &Store{entries: make(map[int]string)}
}

// Get returns the note for a slide id, or "" when none exists.
func (s *Store) Get(id int) string {
	return s.entries[id]
}

// Set records the note for a slide id. An empty text is still an entry:
// a deliberately blank note is not the same as no note at all.
func (s *Store) Set(id int, text string) {
	if old, ok := s.entries[id]; ok && old == text {
		return
	}
	s.entries[id] = text
	s.dirty = true
}

// Len returns the number of slides with a note entry.
func (s *Store) Len() int {
	return len(s.entries)
}

// Dirty reports whether the store has unsaved changes.
func (s *Store) Dirty() bool {
	return s.dirty
}

// SaveCount returns how many times Save has written the sidecar. File
// watchers use it to tell the app's own writes apart from external edits.
func (s *Store) SaveCount() uint64 {
	return s.saves
}

// IDs returns the slide ids that have a note entry, in ascending order.
func (s *Store) IDs() []int {
	out := make([]int, 0, len(s.entries))
	for id := range s.entries {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Load reads the sidecar for pdfPath into the store, replacing its contents.
// A missing sidecar is not an error: presentations without notes are normal,
// and the store is simply left empty.
func (s *Store) Load(pdfPath string) error {
	s.entries = make(map[int]string)
	s.dirty = false

	path := SidecarPath(pdfPath)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open notes file: %w", err)
	}
	defer f.Close()

	var (
		current  = -1
		pending  strings.Builder
		haveNote bool
	)
	flush := func() {
		if !haveNote {
			return
		}
		// Save always appends one trailing newline after the note body;
		// strip exactly that one so Save→Load round-trips.
		s.entries[current] = strings.TrimSuffix(pending.String(), "\n")
		pending.Reset()
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if id, ok := parseMarker(line); ok {
			flush()
			current = id
			haveNote = true
			continue
		}
		if haveNote {
			pending.WriteString(line)
			pending.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read notes file: %w", err)
	}
	flush()

	log.Info().Str("path", path).Int("slides", len(s.entries)).Msg("notes loaded")
	return nil
}

// Save writes all entries to the sidecar for pdfPath. Saving an empty store
// is a logged no-op so an untouched presentation never gains a sidecar.
func (s *Store) Save(pdfPath string) error {
	if len(s.entries) == 0 {
		log.Debug().Str("path", pdfPath).Msg("no notes to save")
		return nil
	}

	path := SidecarPath(pdfPath)
	var buf strings.Builder
	for _, id := range s.IDs() {
		fmt.Fprintf(&buf, "%s%d\n", marker, id)
		buf.WriteString(s.entries[id])
		buf.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("write notes file: %w", err)
	}
	s.dirty = false
	s.saves++
	log.Info().Str("path", path).Int("slides", len(s.entries)).Msg("notes saved")
	return nil
}

func parseMarker(line string) (id int, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, marker) {
		return 0, false
	}
	id, err := strconv.Atoi(trimmed[len(marker):])
	if err != nil {
		return 0, false
	}
	return id, true
}
