// Package sqlite stores the library in a SQLite table keyed by title.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/ports"
)

const dirMode = 0o700

// Store implements ports.LibraryStore on a saved_papers table.
type Store struct {
	db *sql.DB
}

var _ ports.LibraryStore = (*Store)(nil)

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("create library directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open library database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create library schema: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS saved_papers (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL UNIQUE,
		authors TEXT NOT NULL,
		abstract TEXT NOT NULL,
		year INTEGER,
		venue TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		saved_at TEXT NOT NULL DEFAULT ''
	)`)
	return err
}

func (s *Store) List(ctx context.Context) ([]domain.Paper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, authors, abstract, year, venue, tags, saved_at FROM saved_papers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query saved papers: %w", err)
	}
	defer rows.Close()

	var papers []domain.Paper
	for rows.Next() {
		var (
			paper   domain.Paper
			year    sql.NullInt64
			tags    string
			savedAt string
		)
		if err := rows.Scan(&paper.Title, &paper.Authors, &paper.Abstract, &year, &paper.Venue, &tags, &savedAt); err != nil {
			return nil, fmt.Errorf("scan saved paper: %w", err)
		}
		if year.Valid {
			paper.Year = domain.IntPtr(int(year.Int64))
		}
		if err := json.Unmarshal([]byte(tags), &paper.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of %q: %w", paper.Title, err)
		}
		if len(paper.Tags) == 0 {
			paper.Tags = nil
		}
		paper.SavedAt = parseTime(savedAt)
		papers = append(papers, paper)
	}

	return papers, rows.Err()
}

// Add inserts paper; an existing row with the same title is left as is.
func (s *Store) Add(ctx context.Context, paper domain.Paper) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	tags := paper.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return false, fmt.Errorf("encode tags: %w", err)
	}

	var year sql.NullInt64
	if paper.Year != nil {
		year = sql.NullInt64{Int64: int64(*paper.Year), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_papers (title, authors, abstract, year, venue, tags, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(title) DO NOTHING`,
		paper.Title, paper.Authors, paper.Abstract, year, paper.Venue, string(tagsJSON), formatTime(paper.SavedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert saved paper: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count inserted rows: %w", err)
	}
	return inserted > 0, nil
}

func (s *Store) Remove(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM saved_papers WHERE title = ?`, title)
	if err != nil {
		return fmt.Errorf("delete saved paper: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved paper: %w", err)
	}
	if affected == 0 {
		return domain.ErrPaperNotFound
	}

	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_papers`); err != nil {
		return fmt.Errorf("clear saved papers: %w", err)
	}

	return nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
