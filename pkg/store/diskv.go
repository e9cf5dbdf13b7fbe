// Package store is the local key/value mirror of the diary session: the
// entries, the name of the file they came from, and the last-saved marker.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// KV is a string keyed, string valued store with synchronous access.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// Load creates a diskv backed KV rooted at cfg.BasePath().
func Load(cfg Config) (*Local, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Local{d: diskv.New(diskv.Options{
		BasePath:  basePath,
		TempDir:   filepath.Join(basePath, tempDirName),
		Transform: flatTransform,
		// Another session may rewrite a key at any time, so reads always go to disk.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

const tempDirName = ".tmp"

// Local is the on-disk KV.
type Local struct {
	d        *diskv.Diskv
	basePath string
}

var _ KV = (*Local)(nil)

// BasePath is the directory the keys live in.
func (l *Local) BasePath() string {
	return l.basePath
}

func (l *Local) Get(key string) (string, bool, error) {
	if !l.d.Has(key) {
		return "", false, nil
	}
	val, err := l.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(val), true, nil
}

func (l *Local) Set(key, value string) error {
	if err := l.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (l *Local) Remove(key string) error {
	if !l.d.Has(key) {
		return nil
	}
	if err := l.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys.
func (l *Local) Keys() []string {
	var keys []string
	for k := range l.d.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}

func flatTransform(string) []string {
	return []string{}
}

// Stat reports the size and modification time of key's file.
func (l *Local) Stat(key string) (os.FileInfo, error) {
	return os.Stat(filepath.Join(l.basePath, key))
}
