package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CacheEntry is the on-disk envelope of one cached registry response
type CacheEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // Unix milliseconds
	TTL       int             `json:"ttl"`       // seconds
}

// Valid reports whether the entry is still live at now
func (e *CacheEntry) Valid(now time.Time) bool {
	return now.UnixMilli()-e.Timestamp <= int64(e.TTL)*1000
}

// Cache stores registry responses as one JSON file per key. One Cache is
// constructed per invocation and handed to the HTTP client.
type Cache struct {
	dir string
	ttl int
	now func() time.Time
}

// NewCache creates a cache rooted at dir whose entries live ttl seconds
func NewCache(dir string, ttl int) *Cache {
	return &Cache{dir: dir, ttl: ttl, now: time.Now}
}

// Dir returns the cache directory
func (c *Cache) Dir() string {
	return c.dir
}

// Get decodes a live entry for key into v. Expired or unreadable entries
// are deleted and reported as a miss.
func (c *Cache) Get(key string, v any) bool {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		os.Remove(path)
		return false
	}

	if !entry.Valid(c.now()) {
		os.Remove(path)
		return false
	}

	if err := json.Unmarshal(entry.Data, v); err != nil {
		os.Remove(path)
		return false
	}

	return true
}

// Set writes v under key, stamped with the current time
func (c *Cache) Set(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	entry := CacheEntry{
		Data:      payload,
		Timestamp: c.now().UnixMilli(),
		TTL:       c.ttl,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0644)
}

// Clear deletes every entry
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return os.MkdirAll(c.dir, 0755)
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, cacheFileName(key)+".json")
}

// cacheFileName maps a request-shaped key to a safe file name. Keys that
// need rewriting get a hash suffix so distinct keys never share a file.
func cacheFileName(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			return r
		}
		return '_'
	}, key)

	if safe == key && !strings.HasPrefix(key, ".") {
		return key
	}

	sum := sha256.Sum256([]byte(key))
	return safe + "-" + hex.EncodeToString(sum[:4])
}
