// Package unihan annotates text with kCangjie readings from the Unihan
// database, through a persistent lookup cache.
package unihan

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache is a persistent kCangjie cache backed by a SQLite file. Empty
// strings are cached too, marking characters known to have no reading.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(
		"CREATE TABLE IF NOT EXISTS unihan (char TEXT PRIMARY KEY, kcangjie TEXT)",
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached reading for ch and whether one was recorded.
func (c *Cache) Get(ch rune) (string, bool, error) {
	var code string
	err := c.db.QueryRow("SELECT kcangjie FROM unihan WHERE char = ?", string(ch)).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying cache: %w", err)
	}
	return code, true, nil
}

// Put records the reading for ch, replacing any earlier value.
func (c *Cache) Put(ch rune, code string) error {
	if _, err := c.db.Exec(
		"INSERT OR REPLACE INTO unihan (char, kcangjie) VALUES (?, ?)", string(ch), code,
	); err != nil {
		return fmt.Errorf("updating cache: %w", err)
	}
	return nil
}

// Len returns the number of cached characters.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM unihan").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache: %w", err)
	}
	return n, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
