// Package storage holds the YAML configuration and the SQLite-backed
// repositories for the peripheral curation features: the persistent
// rejection list (stories never to place again) and the selection
// history of saved sessions. Both are passed explicitly to callers,
// never held as ambient state, so the engine stays testable without them.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database behind the two repositories.
type Store struct {
	db *sql.DB
}

// Rejection is one blocklisted source: stories from this URL are excluded
// from placement in every future batch.
type Rejection struct {
	ID        int64
	SourceURL string
	Reason    string
	CreatedAt time.Time
}

// Selection records one saved curation session.
type Selection struct {
	ID           int64
	BatchID      string
	SavedAt      time.Time
	SnapshotPath string
	StoryCount   int
	UnusedCount  int
	ChangeCount  int
}

// NewStore opens (and if needed creates) the database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddRejection blocklists a source URL. Re-adding an existing URL updates
// its reason.
func (s *Store) AddRejection(sourceURL, reason string) error {
	query, args, err := sq.Insert("rejections").
		Columns("source_url", "reason").
		Values(sourceURL, reason).
		Suffix("ON CONFLICT(source_url) DO UPDATE SET reason = excluded.reason").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("add rejection: %w", err)
	}
	return nil
}

// IsRejected reports whether a source URL is blocklisted.
func (s *Store) IsRejected(sourceURL string) (bool, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("rejections").
		Where(sq.Eq{"source_url": sourceURL}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}
	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check rejection: %w", err)
	}
	return count > 0, nil
}

// ListRejections returns all blocklisted sources, newest first.
func (s *Store) ListRejections() ([]Rejection, error) {
	query, args, err := sq.Select("id", "source_url", "reason", "created_at").
		From("rejections").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rejections: %w", err)
	}
	defer rows.Close()

	var out []Rejection
	for rows.Next() {
		var r Rejection
		if err := rows.Scan(&r.ID, &r.SourceURL, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rejection: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RemoveRejection deletes a blocklisted source URL.
func (s *Store) RemoveRejection(sourceURL string) error {
	query, args, err := sq.Delete("rejections").
		Where(sq.Eq{"source_url": sourceURL}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("remove rejection: %w", err)
	}
	return nil
}

// RecordSelection appends one saved session to the history.
func (s *Store) RecordSelection(sel Selection) (int64, error) {
	query, args, err := sq.Insert("selections").
		Columns("batch_id", "snapshot_path", "story_count", "unused_count", "change_count").
		Values(sel.BatchID, sel.SnapshotPath, sel.StoryCount, sel.UnusedCount, sel.ChangeCount).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("record selection: %w", err)
	}
	return res.LastInsertId()
}

// ListSelections returns saved sessions, newest first, up to limit.
func (s *Store) ListSelections(limit int) ([]Selection, error) {
	query, args, err := sq.Select("id", "batch_id", "saved_at", "snapshot_path", "story_count", "unused_count", "change_count").
		From("selections").
		OrderBy("saved_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	defer rows.Close()

	var out []Selection
	for rows.Next() {
		var sel Selection
		if err := rows.Scan(&sel.ID, &sel.BatchID, &sel.SavedAt, &sel.SnapshotPath, &sel.StoryCount, &sel.UnusedCount, &sel.ChangeCount); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		out = append(out, sel)
	}
	return out, rows.Err()
}
