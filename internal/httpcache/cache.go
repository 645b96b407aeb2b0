// Package httpcache fetches remote include targets over HTTP and caches the
// downloaded bytes on disk with a time-to-live, so repeated builds do not
// hammer the origin.
package httpcache

import (
	"crypto/sha512"
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Cache is a flat-file response cache. Each entry is one file named by an
// URL digest; the first line holds the creation time as a unix timestamp
// and the rest is the raw response body.
type Cache struct {
	Directory string
	TTL       time.Duration
}

// New returns a cache rooted at directory with entries valid for ttl.
// A nil cache is valid and caches nothing.
func New(directory string, ttl time.Duration) *Cache {
	if directory == "" || ttl <= 0 {
		return nil
	}
	return &Cache{Directory: directory, TTL: ttl}
}

// entryPath derives the cache file for an URL. The digest is url-safe
// base64 so it is filename-clean on every platform.
func (c *Cache) entryPath(url string) string {
	sum := sha512.Sum512([]byte(url))
	name := base64.URLEncoding.EncodeToString(sum[:])
	return filepath.Join(c.Directory, name)
}

// Get returns the cached body for url, or ok false when the entry is
// missing, expired or unreadable. Expired entries are removed on read.
func (c *Cache) Get(url string) (data []byte, ok bool) {
	if c == nil {
		return nil, false
	}
	path := c.entryPath(url)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	line, body, found := strings.Cut(string(raw), "\n")
	if !found {
		return nil, false
	}
	created, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return nil, false
	}
	if time.Since(time.Unix(created, 0)) > c.TTL {
		_ = os.Remove(path)
		return nil, false
	}
	return []byte(body), true
}

// Set stores the body for url, creating the cache directory as needed.
// Storage failures are silent; the cache is an optimization, not a store.
func (c *Cache) Set(url string, data []byte) {
	if c == nil {
		return
	}
	if err := os.MkdirAll(c.Directory, 0o755); err != nil {
		return
	}
	entry := strconv.FormatInt(time.Now().Unix(), 10) + "\n" + string(data)
	_ = os.WriteFile(c.entryPath(url), []byte(entry), 0o644)
}

// Clean removes every expired entry and returns how many were dropped.
func (c *Cache) Clean() (removed int, err error) {
	if c == nil {
		return 0, nil
	}
	entries, err := os.ReadDir(c.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(c.Directory, e.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		line, _, found := strings.Cut(string(raw), "\n")
		if !found {
			continue
		}
		created, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			continue
		}
		if time.Since(time.Unix(created, 0)) > c.TTL {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}
