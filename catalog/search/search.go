// Package search maintains a SQLite name index over a catalog mirror, so
// materials can be found by fragments of their identifier or display names
// without re-reading the library on every query.
package search

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/ultrafast-optics/ultrafast/catalog/lookup"
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	id        TEXT PRIMARY KEY,
	shelf     TEXT NOT NULL,
	book      TEXT NOT NULL,
	page      TEXT NOT NULL,
	book_name TEXT,
	page_name TEXT,
	path      TEXT NOT NULL
);
`

// Result is one indexed library page.
type Result struct {
	ID       string
	BookName string
	PageName string
	Path     string
}

// Option configures an Index.
type Option func(*Index)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(ix *Index) { ix.log = log }
}

// Index is a SQLite-backed page index. Open with a file path for a
// persistent index or ":memory:" for a throwaway one.
type Index struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (and if needed initializes) the index database at path.
func Open(path string, opts ...Option) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("search: open index %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("search: init schema: %w", err)
	}

	ix := &Index{db: db, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(ix)
	}

	return ix, nil
}

// Close releases the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Rebuild replaces the index contents with the catalog's current library
// pages and returns the number of pages indexed.
func (ix *Index) Rebuild(c *lookup.Catalog) (int, error) {
	pages := c.Pages()

	tx, err := ix.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("search: begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pages`); err != nil {
		return 0, fmt.Errorf("search: clear index: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO pages (id, shelf, book, page, book_name, page_name, path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("search: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pages {
		if _, err := stmt.Exec(p.ID(), p.Shelf, p.Book, p.Page, p.BookName, p.PageName, p.Path); err != nil {
			return 0, fmt.Errorf("search: index %s: %w", p.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("search: commit rebuild: %w", err)
	}

	ix.log.Info().Int("pages", len(pages)).Msg("search index rebuilt")

	return len(pages), nil
}

// Query returns pages whose identifier or display names contain the
// fragment, ordered by identifier. Matching is case-insensitive.
func (ix *Index) Query(fragment string) ([]Result, error) {
	pattern := "%" + fragment + "%"

	rows, err := ix.db.Query(`SELECT id, book_name, page_name, path FROM pages
		WHERE id LIKE ? OR book_name LIKE ? OR page_name LIKE ?
		ORDER BY id`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search: query %q: %w", fragment, err)
	}
	defer rows.Close()

	var results []Result

	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.BookName, &r.PageName, &r.Path); err != nil {
			return nil, fmt.Errorf("search: scan result: %w", err)
		}

		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search: read results: %w", err)
	}

	return results, nil
}
