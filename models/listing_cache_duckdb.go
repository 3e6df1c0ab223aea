package models

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"goflix/metrics"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// DuckCache stores listings in DuckDB. An empty path keeps the database in
// memory; a file path lets a restarted server start warm.
type DuckCache struct {
	db  *sql.DB
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time
}

const createListingCacheSQL = `
CREATE TABLE IF NOT EXISTS listing_cache (
    endpoint   VARCHAR PRIMARY KEY,
    payload    BLOB NOT NULL,
    expires_at TIMESTAMP NOT NULL
)`

// OpenDuckCache opens (or creates) the cache database and its table.
func OpenDuckCache(path string, ttl time.Duration) (*DuckCache, error) {
	// DuckDB's go driver uses an empty DSN for an in-memory database
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open duckdb cache")
	}

	if _, err := db.Exec(createListingCacheSQL); err != nil {
		db.Close()
		return nil, serr.Wrap(err, "failed to create listing_cache table")
	}

	c := &DuckCache{db: db, ttl: ttl, now: time.Now}

	// Stale rows from a previous run are useless
	if err := c.purgeExpired(); err != nil {
		logger.LogErr(err, "failed to purge expired cache rows")
	}

	if path == "" {
		logger.Info("Opened in-memory DuckDB listing cache")
	} else {
		logger.Info("Opened DuckDB listing cache", "path", path)
	}
	return c, nil
}

func (c *DuckCache) Get(ctx context.Context, endpoint string) (*Listing, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var payload []byte
	var expiresAt time.Time
	err := c.db.QueryRowContext(ctx,
		"SELECT payload, expires_at FROM listing_cache WHERE endpoint = ?", endpoint,
	).Scan(&payload, &expiresAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.LogErr(serr.Wrap(err, "duckdb cache read failed"), "endpoint", endpoint)
		}
		metrics.ObserveCache(CacheDuckDB, false)
		return nil, false
	}

	if c.now().After(expiresAt) {
		metrics.ObserveCache(CacheDuckDB, false)
		return nil, false
	}

	listing, err := decodeListing(payload)
	if err != nil {
		logger.LogErr(err, "dropping undecodable cache row", "endpoint", endpoint)
		metrics.ObserveCache(CacheDuckDB, false)
		return nil, false
	}

	metrics.ObserveCache(CacheDuckDB, true)
	return listing, true
}

func (c *DuckCache) Set(ctx context.Context, endpoint string, listing *Listing) {
	payload, err := encodeListing(listing)
	if err != nil {
		logger.LogErr(err, "listing not cached", "endpoint", endpoint)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO listing_cache (endpoint, payload, expires_at) VALUES (?, ?, ?)",
		endpoint, payload, c.now().Add(c.ttl),
	)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "duckdb cache write failed"), "endpoint", endpoint)
	}
}

// purgeExpired deletes rows past their expiry.
func (c *DuckCache) purgeExpired() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec("DELETE FROM listing_cache WHERE expires_at < ?", c.now()); err != nil {
		return serr.Wrap(err, "failed to delete expired rows")
	}
	return nil
}

func (c *DuckCache) Close() error {
	return c.db.Close()
}
