package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pdfpresenter/internal/domain"
)

// LayoutStore persists deck layouts between sessions. Global slide ids are
// volatile, so a layout is a JSON list of (path, pageIndex) pairs keyed by
// the first imported file of the deck.
type LayoutStore struct {
	db *DB
}

func NewLayoutStore(db *DB) *LayoutStore {
	return &LayoutStore{db: db}
}

// Save stores (or replaces) the layout for a deck.
func (s *LayoutStore) Save(path string, entries []domain.LayoutEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	_, err = s.db.conn.Exec(
		`INSERT INTO deck_layouts (path, layout_json, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET layout_json = excluded.layout_json, updated_at = excluded.updated_at`,
		path, string(data), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

// Load returns the saved layout for a deck, or nil when none exists.
func (s *LayoutStore) Load(path string) ([]domain.LayoutEntry, error) {
	var raw string
	err := s.db.conn.QueryRow(`SELECT layout_json FROM deck_layouts WHERE path = ?`, path).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}

	var entries []domain.LayoutEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	return entries, nil
}

// Delete removes the saved layout for a deck.
func (s *LayoutStore) Delete(path string) error {
	_, err := s.db.conn.Exec(`DELETE FROM deck_layouts WHERE path = ?`, path)
	return err
}
