// Package cache memoizes LLM completions by a fingerprint of the
// request parameters. Two backends share a single key and freshness
// policy: a process-local map and a durable SQLite store.
package cache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/specforge-ai/specforge/pkg/models"
)

// Backend kinds recognized by New.
const (
	KindMemory = "memory"
	KindDisk   = "disk"
)

// Backend is the capability set every cache storage medium implements.
//
// Get reports a miss for both absent and stale keys; a stale entry is
// removed as a side effect of the lookup so the slot is free for the
// next Set. Mutating operations never return errors: a false result
// means the backend could not apply the change and the caller should
// carry on as if the cache were empty. The cache is an optimization —
// a broken backend must only ever cost a recomputation, never an
// error in the pipeline above it.
type Backend interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) bool
	Delete(key string) bool
	Clear() bool
	Stats() models.CacheStats
}

// Config selects and parameterizes a backend.
type Config struct {
	Backend string
	Path    string
	TTL     time.Duration
}

// New constructs the backend named by cfg. An unrecognized backend
// kind is a configuration error, reported immediately rather than on
// first use. A disk backend with no explicit path uses DefaultPath.
func New(cfg Config) (Backend, error) {
	switch cfg.Backend {
	case KindMemory:
		return NewMemory(cfg.TTL), nil
	case KindDisk:
		path := cfg.Path
		if path == "" {
			var err error
			path, err = DefaultPath()
			if err != nil {
				return nil, fmt.Errorf("resolve cache path: %w", err)
			}
		}
		return NewSQLite(path, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want %q or %q)", cfg.Backend, KindMemory, KindDisk)
	}
}

// DefaultPath returns the default on-disk cache location,
// ~/.specforge/cache.db, creating the directory if needed.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".specforge")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// GenerateKey derives the fingerprint for a completion request from
// the serialized message content, the provider-qualified model name,
// and the sampling temperature. Identical inputs always produce the
// identical key; changing any one input changes the key.
func GenerateKey(content, model string, temperature float64) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", content, model, strconv.FormatFloat(temperature, 'g', -1, 64))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Fresh reports whether an entry written at ts is still usable under
// ttl. A zero or negative ttl means entries never expire.
func Fresh(ttl time.Duration, ts time.Time) bool {
	if ttl <= 0 {
		return true
	}
	return time.Since(ts) < ttl
}
