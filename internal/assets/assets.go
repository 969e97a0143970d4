// Package assets locates and caches patch documents, including the
// embedded Utah teapot.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Faultbox/bezier-teapot/pkg/formats"
)

// Names of the embedded documents. Both hold the same 28 bicubic patches.
const (
	TeapotText = "teapot.txt"
	TeapotJSON = "teapot.json"
)

//go:embed teapot.txt teapot.json
var embedded embed.FS

// ErrNotFound is returned when no directory or embedded file has the name.
var ErrNotFound = errors.New("patch document not found")

// Teapot parses the embedded teapot.
func Teapot() (*formats.TeapotDocument, error) {
	return loadEmbedded(TeapotText)
}

// Manager resolves document names against search directories, the file
// system and the embedded documents, in that order.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a search directory.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding search dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding search dir %s: not a directory", dir)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()

	return nil
}

// Load returns the named document. An empty name or "teapot" selects the
// embedded teapot.
func (m *Manager) Load(name string) (*formats.TeapotDocument, error) {
	if name == "" || name == "teapot" {
		name = TeapotText
	}

	// Check cache first
	if doc, ok := m.cache.Get(name); ok {
		return doc, nil
	}

	doc, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	m.cache.Set(name, doc)
	return doc, nil
}

func (m *Manager) resolve(name string) (*formats.TeapotDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !filepath.IsAbs(name) {
		for i := len(m.dirs) - 1; i >= 0; i-- {
			p := filepath.Join(m.dirs[i], name)
			if _, err := os.Stat(p); err == nil {
				return formats.LoadTeapot(p)
			}
		}
	}
	if _, err := os.Stat(name); err == nil {
		return formats.LoadTeapot(name)
	}

	doc, err := loadEmbedded(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return doc, err
}

func loadEmbedded(name string) (*formats.TeapotDocument, error) {
	data, err := embedded.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(path.Ext(name), ".json") {
		return formats.ParseTeapotJSON(data)
	}
	return formats.ParseTeapotText(data)
}

// Close drops every cached document.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dirs = nil
	m.cache.Clear()
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for parsed documents.
type Cache struct {
	data map[string]*formats.TeapotDocument
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*formats.TeapotDocument),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*formats.TeapotDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return doc, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, doc *formats.TeapotDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = doc
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*formats.TeapotDocument)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
