package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const fileExt = ".json"

// FileCache stores train API responses as one JSON file per request URL
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// fileEntry is the on-disk representation of a cached response
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewFileCache creates the cache directory if needed and returns a cache
// whose entries expire after ttl
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}

	return &FileCache{
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}, nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/saarthi, falling back to ~/.cache/saarthi
func DefaultCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "saarthi")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "saarthi-cache")
	}

	return filepath.Join(home, ".cache", "saarthi")
}

// Dir returns the cache directory
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+fileExt)
}

// readEntry loads an entry and removes it when it is corrupt or expired
func (c *FileCache) readEntry(filename string) (*fileEntry, bool) {
	// #nosec G304 -- filename is a hash inside the cache directory
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, false
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil || c.now().After(entry.ExpiresAt) {
		_ = os.Remove(filename)
		return nil, false
	}

	return &entry, true
}

// Get returns the cached response for key if present and not expired
func (c *FileCache) Get(key string) ([]byte, bool) {
	entry, ok := c.readEntry(c.path(key))
	if !ok || entry.Key != key {
		return nil, false
	}
	return entry.Data, true
}

// Set stores value under key
func (c *FileCache) Set(key string, value []byte) error {
	data, err := json.Marshal(fileEntry{
		Key:       key,
		Data:      value,
		ExpiresAt: c.now().Add(c.ttl),
	})
	if err != nil {
		return err
	}

	return os.WriteFile(c.path(key), data, 0600)
}

// Clear removes all cache entries and returns how many were removed
func (c *FileCache) Clear() (int, error) {
	return c.sweep(func(string) bool { return true })
}

// Cleanup removes expired or unreadable entries and returns how many were removed
func (c *FileCache) Cleanup() (int, error) {
	return c.sweep(func(filename string) bool {
		_, ok := c.readEntry(filename)
		return !ok
	})
}

func (c *FileCache) sweep(remove func(filename string) bool) (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		filename := filepath.Join(c.dir, entry.Name())
		if !remove(filename) {
			continue
		}
		// readEntry may already have deleted it
		if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
			continue
		}
		removed++
	}

	return removed, nil
}
