// Package assets locates model files on disk and loads them with caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/objkit/pkg/encoding"
	"github.com/Faultbox/objkit/pkg/wavefront"
)

// ErrNotFound is returned when no search path holds the requested file.
var ErrNotFound = errors.New("file not found")

// Manager loads files from a list of search directories.
type Manager struct {
	roots []string
	cache *Cache
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewManager creates a new asset manager caching up to cacheSize files.
// A nil logger discards diagnostics.
func NewManager(cacheSize int, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cache: NewCache(cacheSize),
		log:   log,
	}
}

// AddSearchPath adds a directory to the manager.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddSearchPath(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding search path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding search path %s: not a directory", dir)
	}

	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()

	return nil
}

// Resolve returns the on-disk path of a file. Absolute paths and paths
// that exist relative to the working directory are used as-is.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) || len(m.searchPaths()) == 0 {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return name, nil
	}

	roots := m.searchPaths()
	for i := len(roots) - 1; i >= 0; i-- {
		candidate := filepath.Join(roots[i], name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load reads a file through the cache.
func (m *Manager) Load(name string) ([]byte, error) {
	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	return m.read(path)
}

// read loads a resolved path through the cache.
func (m *Manager) read(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m.cache.Set(path, data)
	return data, nil
}

// LoadModel loads an OBJ file and every material library it references.
// Libraries are looked up next to the OBJ file and kept apart by file name,
// so equal material names in different libraries do not clash. A missing
// library is logged and skipped.
func (m *Manager) LoadModel(name string, props *wavefront.LoadProperties, opts wavefront.Options) (*wavefront.Model, error) {
	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := m.read(path)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = m.log
	}

	model, err := wavefront.ParseObjects(data, props, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, lib := range model.Libraries {
		mtlPath := filepath.Join(dir, filepath.FromSlash(encoding.NormalizePath(lib)))
		mtl, err := m.read(mtlPath)
		if errors.Is(err, ErrNotFound) {
			m.log.Warn("material library not found",
				zap.String("model", path),
				zap.String("library", lib))
			continue
		}
		if err != nil {
			return nil, err
		}
		materials, err := wavefront.ParseMTL(mtl, opts)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", mtlPath, err)
		}
		model.Materials[lib] = materials
	}

	m.log.Debug("model ready",
		zap.String("path", path),
		zap.Int("objects", len(model.Order)),
		zap.Int("libraries", len(model.Materials)),
		zap.Int("materials", model.MaterialCount()))
	return model, nil
}

// CacheStats returns the file cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all search paths and cached files.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.cache.Clear()
}

func (m *Manager) searchPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.roots
}

// Cache is a bounded in-memory cache for loaded files.
// The oldest entry is evicted first.
type Cache struct {
	data     map[string][]byte
	order    []string
	capacity int
	mu       sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a cache holding up to capacity entries.
// A capacity of zero disables caching.
func NewCache(capacity int) *Cache {
	return &Cache{
		data:     make(map[string][]byte),
		capacity: capacity,
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[key]; !ok {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.data, oldest)
		}
		c.order = append(c.order, key)
	}
	c.data[key] = data
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.order = nil
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
