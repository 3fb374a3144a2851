// Package cache persists finished transcriptions in a SQLite database so
// that repeated words skip the engine round-trip. Entries are keyed by word
// and by the phonological variant they were produced under.
package cache

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache is a word-to-IPA transcription store backed by SQLite. A nil *Cache
// is valid and caches nothing, so callers need not branch on whether caching
// is enabled.
type Cache struct {
	db *sql.DB
}

// Open opens (and if necessary initialises) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database %s: %w", path, err)
	}

	query := `CREATE TABLE IF NOT EXISTS transcriptions (
		word text NOT NULL,
		variant text NOT NULL,
		ipa text NOT NULL,
		PRIMARY KEY (word, variant)
	)`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise cache database: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get returns the cached transcription for word under the given variant key,
// or ok=false if none is stored.
func (c *Cache) Get(word, variant string) (ipa string, ok bool, err error) {
	if c == nil {
		return "", false, nil
	}

	row := c.db.QueryRow(
		`SELECT ipa FROM transcriptions WHERE word = ? AND variant = ?`,
		word, variant,
	)
	switch err := row.Scan(&ipa); {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("cache lookup for %q failed: %w", word, err)
	}
	return ipa, true, nil
}

// Put stores (or replaces) the transcription for word under the variant key.
func (c *Cache) Put(word, variant, ipa string) error {
	if c == nil {
		return nil
	}

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO transcriptions (word, variant, ipa) VALUES (?, ?, ?)`,
		word, variant, ipa,
	)
	if err != nil {
		return fmt.Errorf("failed to cache transcription for %q: %w", word, err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}
