// Package db provides the persistence layer used by the application. It wraps
// a SQLite database and exposes helper methods for the artist lookup cache
// and the generated-album history. The package is intentionally small;
// callers are expected to open a single DB instance using New and reuse it
// for all operations.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"Concept-Album-Go/pkg/music"
)

// DB wraps a sql.DB connection and exposes helper methods for the
// application's persistence layer.
type DB struct {
	*sql.DB
}

// New opens the SQLite database located at path. If the file does not exist
// it is created along with the required schema. The returned DB value wraps
// the sql.DB connection for use by the rest of the application.
func New(path string) (*DB, error) {
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS artist_cache (name TEXT PRIMARY KEY, profile TEXT NOT NULL, fetched_at TIMESTAMP NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS albums (id TEXT PRIMARY KEY, title TEXT NOT NULL, theme TEXT, created_at TIMESTAMP NOT NULL, payload TEXT NOT NULL)`,
		`CREATE INDEX IF NOT EXISTS idx_albums_created ON albums(created_at)`,
	}
	// Errors here likely mean the database file is not writable.
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			d.Close()
			return nil, fmt.Errorf("init db: %w", err)
		}
	}
	return &DB{d}, nil
}

// PutProfile stores the profile for a normalized artist name. An existing row
// is replaced wholesale; cache entries never receive partial updates.
func (db *DB) PutProfile(ctx context.Context, name string, p music.ArtistProfile, fetchedAt time.Time) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO artist_cache(name, profile, fetched_at) VALUES(?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET profile=excluded.profile, fetched_at=excluded.fetched_at`,
		name, string(b), fetchedAt)
	return err
}

// GetProfile retrieves the cached profile stored for a normalized artist
// name along with the time it was fetched. sql.ErrNoRows is returned when
// the artist has never been cached.
func (db *DB) GetProfile(ctx context.Context, name string) (music.ArtistProfile, time.Time, error) {
	var (
		data      string
		fetchedAt time.Time
	)
	if err := db.QueryRowContext(ctx, `SELECT profile, fetched_at FROM artist_cache WHERE name=?`, name).Scan(&data, &fetchedAt); err != nil {
		return music.ArtistProfile{}, time.Time{}, err
	}
	var p music.ArtistProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return music.ArtistProfile{}, time.Time{}, err
	}
	return p, fetchedAt, nil
}

// SaveAlbum appends a generated album to the history. The full album is
// stored as JSON so history entries survive schema evolution of the summary
// columns.
func (db *DB) SaveAlbum(ctx context.Context, a music.Album) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO albums(id, title, theme, created_at, payload) VALUES(?,?,?,?,?)`,
		a.ID, a.Title, a.Theme, a.CreatedAt, string(b))
	return err
}

// GetAlbum loads one album from the history by ID. sql.ErrNoRows is returned
// when the ID does not exist, which allows callers to respond with a 404.
func (db *DB) GetAlbum(ctx context.Context, id string) (music.Album, error) {
	var data string
	if err := db.QueryRowContext(ctx, `SELECT payload FROM albums WHERE id=?`, id).Scan(&data); err != nil {
		return music.Album{}, err
	}
	var a music.Album
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return music.Album{}, err
	}
	return a, nil
}

// ListAlbums returns up to limit albums from the history, most recent first.
// A non-positive limit returns everything.
func (db *DB) ListAlbums(ctx context.Context, limit int) ([]music.Album, error) {
	q := `SELECT payload FROM albums ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []music.Album
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var a music.Album
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	// rows.Err returns the first error encountered while iterating.
	return albums, rows.Err()
}
