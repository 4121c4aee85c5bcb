// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps a local record of sent digests in SQLite. The
// selection pipeline never reads it; each run selects papers statelessly and
// the archive exists only for the history command.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "digests.db"

// Entry is one archived digest.
type Entry struct {
	ID         int64
	SentAt     time.Time
	Subject    string
	Language   string
	PaperCount int
	HTML       string
}

// Store manages the digest archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database under dir, creating the schema
// when missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS digests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sent_at TEXT NOT NULL,
		subject TEXT NOT NULL,
		language TEXT NOT NULL,
		paper_count INTEGER NOT NULL,
		html TEXT NOT NULL
	)`)
	return err
}

// Record stores one sent digest.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO digests (sent_at, subject, language, paper_count, html) VALUES (?, ?, ?, ?, ?)`,
		e.SentAt.UTC().Format(time.RFC3339), e.Subject, e.Language, e.PaperCount, e.HTML,
	)
	if err != nil {
		return fmt.Errorf("recording digest: %w", err)
	}
	return nil
}

// List returns the most recent digests, newest first, without the HTML body.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, sent_at, subject, language, paper_count FROM digests ORDER BY sent_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing digests: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var sentAt string
		if err := rows.Scan(&e.ID, &sentAt, &e.Subject, &e.Language, &e.PaperCount); err != nil {
			return nil, fmt.Errorf("scanning digest row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, sentAt); parseErr == nil {
			e.SentAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one archived digest including its HTML body.
func (s *Store) Get(id int64) (Entry, error) {
	var e Entry
	var sentAt string
	err := s.db.QueryRow(
		`SELECT id, sent_at, subject, language, paper_count, html FROM digests WHERE id = ?`, id,
	).Scan(&e.ID, &sentAt, &e.Subject, &e.Language, &e.PaperCount, &e.HTML)
	if err != nil {
		return Entry{}, fmt.Errorf("loading digest %d: %w", id, err)
	}
	if t, parseErr := time.Parse(time.RFC3339, sentAt); parseErr == nil {
		e.SentAt = t
	}
	return e, nil
}
