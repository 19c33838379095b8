package portal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/simars/portal/content"
)

// Store mirrors the content directory into SQLite and answers listing
// queries against it.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema. ":memory:" keeps everything in
// process.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page renders read while a content reload writes; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	if path == ":memory:" {
		// every connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    title TEXT NOT NULL,
    date TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0,
    summary TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '',
    seq INTEGER NOT NULL,
    source TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_listing ON posts (published, date DESC, seq);
CREATE INDEX IF NOT EXISTS posts_path ON posts (path);
`)
	return err
}

// ReplaceAll swaps the stored posts for posts in one transaction, so
// readers see either the old or the new content, never a mix.
func (s *Store) ReplaceAll(ctx context.Context, posts []content.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (id, path, title, date, author, published, summary, body, seq, source) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range posts {
		published := 0
		if p.Published {
			published = 1
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Path, p.Title, p.DateString(), p.Author, published, p.Summary, p.Body, p.Seq, p.Source); err != nil {
			return fmt.Errorf("insert %s: %w", p.Source, err)
		}
	}
	return tx.Commit()
}

// ListPosts returns published posts, newest first. Equal dates keep source
// order; undated posts store an empty date, which sorts last.
func (s *Store) ListPosts(ctx context.Context, q content.Query) ([]content.Post, error) {
	query := `SELECT id, path, title, date, author, published, summary, body, seq, source FROM posts WHERE published = 1 ORDER BY date DESC, seq ASC, id ASC`
	var args []any
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// ListAllPosts returns every post, drafts included, in source order.
func (s *Store) ListAllPosts(ctx context.Context) ([]content.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, path, title, date, author, published, summary, body, seq, source FROM posts ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (content.Post, error) {
	var (
		p         content.Post
		date      string
		published int
	)
	if err := row.Scan(&p.ID, &p.Path, &p.Title, &date, &p.Author, &published, &p.Summary, &p.Body, &p.Seq, &p.Source); err != nil {
		return content.Post{}, err
	}
	if date != "" {
		t, err := time.Parse(content.DateLayout, date)
		if err != nil {
			return content.Post{}, fmt.Errorf("post %s: bad stored date %q: %w", p.ID, date, err)
		}
		p.Date = t
	}
	p.Published = published == 1
	return p, nil
}

func scanPosts(rows *sql.Rows) ([]content.Post, error) {
	var posts []content.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
