package readable

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ArtifactCache stores generated artifacts by name.
//
// Get returns ErrArtifactNotFound (possibly wrapped) when name is absent.
// Put replaces the whole value; implementations never expose a partially
// written artifact.
type ArtifactCache interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}

// DirCache keeps artifacts as files in a directory.
type DirCache struct {
	Dir  string
	Perm fs.FileMode
}

// NewDirCache returns a DirCache rooted at dir.
func NewDirCache(dir string) *DirCache {
	return &DirCache{Dir: dir, Perm: 0o644}
}

// Get reads the artifact file called name.
func (c *DirCache) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(c.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrArtifactNotFound)
	}
	return data, err
}

// Put writes data to a temporary file and renames it over the artifact, so a
// concurrent reader sees either the old or the new artifact.
func (c *DirCache) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(c.Dir, os.ModePerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.Dir, "."+name+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, c.Perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(c.Dir, name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// MemoryCache is an in-process ArtifactCache.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string][]byte
	puts  map[string]int
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string][]byte),
		puts:  make(map[string]int),
	}
}

// Get returns a copy of the stored artifact.
func (c *MemoryCache) Get(_ context.Context, name string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.items[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrArtifactNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data under name.
func (c *MemoryCache) Put(_ context.Context, name string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[name] = append([]byte(nil), data...)
	c.puts[name]++
	return nil
}

// Puts returns how many times name has been written.
func (c *MemoryCache) Puts(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.puts[name]
}
