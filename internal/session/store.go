package session

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bookmarks (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS bookmark_views (
	bookmark_id TEXT NOT NULL REFERENCES bookmarks(id) ON DELETE CASCADE,
	pane        TEXT NOT NULL,
	x0          REAL NOT NULL,
	x1          REAL NOT NULL,
	y0          REAL NOT NULL,
	y1          REAL NOT NULL,
	PRIMARY KEY (bookmark_id, pane)
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_name ON bookmarks(name);
`

// Bookmark is a named capture of every pane's view range.
type Bookmark struct {
	ID        string
	Name      string
	CreatedAt string
	Views     []PaneView
}

// PaneView is one pane's captured range.
type PaneView struct {
	Pane           string
	X0, X1, Y0, Y1 float64
}

// Store persists view bookmarks in a sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the session database and ensures the schema
// is at the current version.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	ver, err := currentSchemaVersion(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("check schema version: %w", err)
	}
	if ver < schemaVersion {
		if err := migrateSchema(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func currentSchemaVersion(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_meta'
	`).Scan(&count)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	var ver int
	err = db.QueryRow("SELECT version FROM schema_meta LIMIT 1").Scan(&ver)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return ver, err
}

// migrateSchema drops and recreates. Bookmarks are cheap to remake, so
// nothing fancier is warranted.
func migrateSchema(db *sql.DB) error {
	drops := []string{
		"DROP TABLE IF EXISTS bookmark_views",
		"DROP TABLE IF EXISTS bookmarks",
		"DROP TABLE IF EXISTS schema_meta",
	}
	for _, stmt := range drops {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	if _, err := db.Exec(schemaV1); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_meta (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("insert schema version: %w", err)
	}
	return nil
}

// SaveBookmark stores a named capture and returns its id.
func (s *Store) SaveBookmark(name string, views []PaneView) (string, error) {
	if name == "" {
		return "", fmt.Errorf("save bookmark: empty name")
	}
	if len(views) == 0 {
		return "", fmt.Errorf("save bookmark: no views")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	if _, err := tx.Exec("INSERT INTO bookmarks (id, name) VALUES (?, ?)", id, name); err != nil {
		return "", fmt.Errorf("insert bookmark: %w", err)
	}
	for _, v := range views {
		_, err := tx.Exec(
			"INSERT INTO bookmark_views (bookmark_id, pane, x0, x1, y0, y1) VALUES (?, ?, ?, ?, ?, ?)",
			id, v.Pane, v.X0, v.X1, v.Y0, v.Y1,
		)
		if err != nil {
			return "", fmt.Errorf("insert bookmark view: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListBookmarks returns all bookmarks, newest first, without views.
func (s *Store) ListBookmarks() ([]Bookmark, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM bookmarks ORDER BY created_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// LoadBookmark returns one bookmark with its pane views.
func (s *Store) LoadBookmark(id string) (Bookmark, error) {
	var b Bookmark
	err := s.db.QueryRow("SELECT id, name, created_at FROM bookmarks WHERE id = ?", id).
		Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return Bookmark{}, fmt.Errorf("load bookmark: %q not found", id)
	}
	if err != nil {
		return Bookmark{}, fmt.Errorf("load bookmark: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT pane, x0, x1, y0, y1 FROM bookmark_views WHERE bookmark_id = ? ORDER BY pane", id)
	if err != nil {
		return Bookmark{}, fmt.Errorf("load bookmark views: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v PaneView
		if err := rows.Scan(&v.Pane, &v.X0, &v.X1, &v.Y0, &v.Y1); err != nil {
			return Bookmark{}, fmt.Errorf("scan bookmark view: %w", err)
		}
		b.Views = append(b.Views, v)
	}
	return b, rows.Err()
}

// DeleteBookmark removes a bookmark and its views. Unknown ids are a
// no-op.
func (s *Store) DeleteBookmark(id string) error {
	if _, err := s.db.Exec("DELETE FROM bookmarks WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}
