package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache persists entries under a directory so CLI runs can reuse
// each other's work. Keys carry a stage prefix ("items:", "layout:",
// "artifact:", "http:") and entries are grouped into one subdirectory
// per stage, which keeps `timegrid cache` reporting and clearing cheap.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating it
// if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope around cached bytes.
type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value, treating expired or unreadable entries as
// misses and removing them.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if entryExpired(entry, time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value under the key's stage directory. A ttl of 0 means
// no expiration.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	blob, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0644)
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing; entries stay on disk for the next run.
func (c *FileCache) Close() error {
	return nil
}

// StageStat summarizes the live entries of one pipeline stage.
type StageStat struct {
	Entries int
	Bytes   int64
}

// Stats counts live entries per stage. Expired entries are skipped but
// left for Get or Clear to remove.
func (c *FileCache) Stats() (map[string]StageStat, error) {
	stats := make(map[string]StageStat)
	now := time.Now()

	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		var entry fileEntry
		if err := json.Unmarshal(data, &entry); err != nil || entryExpired(entry, now) {
			return nil
		}
		stage := filepath.Base(filepath.Dir(path))
		s := stats[stage]
		s.Entries++
		s.Bytes += int64(len(data))
		stats[stage] = s
		return nil
	})
	return stats, err
}

// Clear removes every entry and returns how many were deleted. Stage
// directories are left in place.
func (c *FileCache) Clear() (int, error) {
	count := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		if os.Remove(path) == nil {
			count++
		}
		return nil
	})
	return count, err
}

// entryExpired reports whether the entry's deadline has passed.
func entryExpired(e fileEntry, now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// path maps a key to <dir>/<stage>/<hash>.json. The stage comes from
// the key's prefix so related entries share a directory.
func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, stageFor(key), Hash([]byte(key))+".json")
}

// stageFor extracts the stage prefix from a cache key.
func stageFor(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "misc"
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
