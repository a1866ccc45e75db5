package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pdfpresenter/internal/domain"
)

// RecentStore tracks recently opened PDF files.
type RecentStore struct {
	db *DB
}

func NewRecentStore(db *DB) *RecentStore {
	return &RecentStore{db: db}
}

// Touch records that path was opened now, inserting it on first sight.
func (s *RecentStore) Touch(path string, slideCount int) error {
	_, err := s.db.conn.Exec(
		`INSERT INTO recent_files (id, path, slide_count, last_opened_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET slide_count = excluded.slide_count, last_opened_at = excluded.last_opened_at`,
		uuid.New().String(), path, slideCount, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("touch recent file: %w", err)
	}
	return nil
}

// List returns the most recently opened files, newest first.
func (s *RecentStore) List(limit int) ([]domain.RecentFile, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, path, slide_count, last_opened_at FROM recent_files ORDER BY last_opened_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []domain.RecentFile
	for rows.Next() {
		var f domain.RecentFile
		if err := rows.Scan(&f.ID, &f.Path, &f.SlideCount, &f.LastOpened); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Remove drops a path from the list (e.g. after the file disappeared).
func (s *RecentStore) Remove(path string) error {
	_, err := s.db.conn.Exec(`DELETE FROM recent_files WHERE path = ?`, path)
	return err
}
