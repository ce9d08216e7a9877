package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/specforge-ai/specforge/pkg/models"
)

// SQLite is the durable backend, a single-file store that survives
// process restarts. Hit and miss counters are persisted alongside the
// entries so statistics also survive restarts.
//
// Every operation is fail-open: a storage failure degrades to the
// "nothing happened" result for that operation (miss, false, zero)
// instead of propagating an error.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
}

const createCacheSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS cache_stats (
	name TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
INSERT OR IGNORE INTO cache_stats (name, value) VALUES ('hits', 0), ('misses', 0);
`

// NewSQLite opens or creates the cache database at path and ensures
// the schema exists. Safe to call on an already-initialized file.
func NewSQLite(path string, ttl time.Duration) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(createCacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &SQLite{db: db, ttl: ttl}, nil
}

// Get returns the value stored under key if it is present and fresh.
// A stale row is deleted and counted as a miss; read errors are
// indistinguishable from absence.
func (s *SQLite) Get(key string) ([]byte, bool) {
	var value []byte
	var createdAt int64

	err := s.db.QueryRow(
		`SELECT value, created_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&value, &createdAt)
	if err != nil {
		s.bump("misses")
		return nil, false
	}

	if !Fresh(s.ttl, time.Unix(0, createdAt)) {
		_, _ = s.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key)
		s.bump("misses")
		return nil, false
	}

	s.bump("hits")
	return value, true
}

// Set upserts the row for key with the current timestamp. Returns
// false on a write failure.
func (s *SQLite) Set(key string, value []byte) bool {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO cache_entries (key, value, created_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UnixNano(),
	)
	return err == nil
}

// Delete removes the row for key, reporting whether one was removed.
func (s *SQLite) Delete(key string) bool {
	res, err := s.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key)
	if err != nil {
		return false
	}
	n, err := res.RowsAffected()
	return err == nil && n > 0
}

// Clear removes every entry. The persisted counters are untouched.
func (s *SQLite) Clear() bool {
	_, err := s.db.Exec(`DELETE FROM cache_entries`)
	return err == nil
}

// Stats returns the persisted counters and a live count of rows.
func (s *SQLite) Stats() models.CacheStats {
	var st models.CacheStats
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM cache_entries`).Scan(&st.Entries)

	rows, err := s.db.Query(`SELECT name, value FROM cache_stats`)
	if err != nil {
		return st
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			continue
		}
		switch name {
		case "hits":
			st.Hits = value
		case "misses":
			st.Misses = value
		}
	}
	return st
}

// PruneExpired deletes every row older than the TTL in one pass and
// returns the number removed. A no-op when the TTL means never
// expire.
func (s *SQLite) PruneExpired() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-s.ttl).UnixNano()
	res, err := s.db.Exec(`DELETE FROM cache_entries WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) bump(counter string) {
	_, _ = s.db.Exec(`UPDATE cache_stats SET value = value + 1 WHERE name = ?`, counter)
}
