// Package store archives scraped posts in a local SQLite file, one row per
// distinct post text.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xyjwsj/tweetgrab/lib/post"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
	key        TEXT PRIMARY KEY,
	query      TEXT NOT NULL,
	text       TEXT NOT NULL,
	body       TEXT NOT NULL DEFAULT '',
	author     TEXT NOT NULL DEFAULT '',
	permalink  TEXT NOT NULL DEFAULT '',
	posted_at  INTEGER NOT NULL DEFAULT 0,
	scraped_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_query ON posts (query, scraped_at);
`

// Store is an open archive.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path)+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts p under query. It reports false when a post with the same
// text is already archived.
func (s *Store) Save(ctx context.Context, query string, p post.Post) (bool, error) {
	scraped := p.ScrapedAt
	if scraped.IsZero() {
		scraped = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO posts (key, query, text, body, author, permalink, posted_at, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Key(), query, p.Text, p.Body, p.Author, p.Permalink, unixNano(p.PostedAt), scraped.UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("store: save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns archived posts for query, or every post when query is empty,
// oldest first.
func (s *Store) List(ctx context.Context, query string) ([]post.Post, error) {
	q := `SELECT text, body, author, permalink, posted_at, scraped_at FROM posts`
	var args []interface{}
	if query != "" {
		q += ` WHERE query = ?`
		args = append(args, query)
	}
	q += ` ORDER BY scraped_at, rowid`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []post.Post
	for rows.Next() {
		var p post.Post
		var posted, scraped int64
		if err := rows.Scan(&p.Text, &p.Body, &p.Author, &p.Permalink, &posted, &scraped); err != nil {
			return nil, err
		}
		p.PostedAt = fromUnixNano(posted)
		p.ScrapedAt = fromUnixNano(scraped)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the number of archived posts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

// Sink returns a post.Sink that archives under query. Duplicates are skipped
// without error.
func (s *Store) Sink(ctx context.Context, query string) post.Sink {
	return post.SinkFunc(func(p post.Post) error {
		_, err := s.Save(ctx, query, p)
		return err
	})
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
