// Package history persists successful analyses in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/senti/internal/sentiment"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an entry does not exist.
var ErrNotFound = errors.New("history entry not found")

var schema = []string{`
CREATE TABLE IF NOT EXISTS analyses (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	text         TEXT    NOT NULL,
	category     TEXT    NOT NULL,
	polarity     REAL    NOT NULL,
	subjectivity REAL    NOT NULL,
	result       TEXT    NOT NULL,
	created_at   INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,
}

// Entry is one recorded analysis.
type Entry struct {
	ID        int64
	Text      string
	Result    sentiment.Result
	CreatedAt time.Time
}

// Store is a SQLite-backed history of analyses.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating history schema: %w", err)
		}
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a successful analysis of text.
func (s *Store) Record(ctx context.Context, text string, res *sentiment.Result) (int64, error) {
	if res == nil {
		return 0, errors.New("recording analysis: nil result")
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return 0, fmt.Errorf("marshaling result: %w", err)
	}

	r, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (text, category, polarity, subjectivity, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		text,
		res.Overall.Category,
		res.Overall.Polarity,
		res.Overall.Subjectivity,
		string(payload),
		s.now().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting analysis: %w", err)
	}

	return r.LastInsertId()
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, text, result, created_at FROM analyses ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}

	return entries, nil
}

// Get returns the entry with id.
func (s *Store) Get(ctx context.Context, id int64) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, text, result, created_at FROM analyses WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// Delete removes the entry with id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	r, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	if n, _ := r.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	r, err := s.db.ExecContext(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, fmt.Errorf("clearing analyses: %w", err)
	}
	return r.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e         Entry
		payload   string
		createdAt int64
	)
	if err := sc.Scan(&e.ID, &e.Text, &payload, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scanning analysis: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &e.Result); err != nil {
		return Entry{}, fmt.Errorf("parsing stored result %d: %w", e.ID, err)
	}
	e.CreatedAt = time.Unix(0, createdAt)
	return e, nil
}
