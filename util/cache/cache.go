// Package cache implements a tiny on-disk cache for remote content keyed by URL.
//
// Entries are written to a temporary file and renamed into place, so that
// concurrent writers of the same key never leave a partial entry behind:
// the last completed write wins.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
	"github.com/thanhpk/randstr"
)

const slugLength = 48

type Cache struct {
	dir string
	ttl time.Duration
}

// New returns a cache rooted in dir whose entries expire after ttl,
// zero ttl entries never expire
func New(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

func (cache *Cache) path(key string) string {
	var (
		sum  = sha256.Sum256([]byte(key))
		name = slug.Make(key)
	)
	if len(name) > slugLength {
		name = name[len(name)-slugLength:]
	}
	return filepath.Join(cache.dir, hex.EncodeToString(sum[:8])+"-"+name)
}

// Get returns the content cached for key, if any and not expired
func (cache *Cache) Get(key string) ([]byte, bool) {
	path := cache.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if cache.ttl > 0 && time.Since(info.ModTime()) > cache.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores data for key, replacing any previous entry
func (cache *Cache) Put(key string, data []byte) error {
	if err := os.MkdirAll(cache.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	var (
		path = cache.path(key)
		tmp  = path + "." + randstr.Hex(8) + ".tmp"
	)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Purge removes expired entries and returns how many were removed
func (cache *Cache) Purge() (int, error) {
	if cache.ttl <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(cache.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	purged := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil || entry.IsDir() || time.Since(info.ModTime()) <= cache.ttl {
			continue
		}
		if err := os.Remove(filepath.Join(cache.dir, entry.Name())); err == nil {
			purged++
		}
	}
	return purged, nil
}
