package adapter

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	m "mvnscan/internal/model"
)

// Current schema version - increment when PomEntry format changes.
const pomCacheSchemaVersion uint16 = 1

// defaultCacheDirName is the conventional cache location below the user's
// home directory when no directory is configured.
const defaultCacheDirName = ".mvnscan-cache"

// PomEntry is the cached form of one parsed descriptor. Entries are immutable
// once stored; conflicting writes are last-writer-wins.
type PomEntry struct {
	Schema uint16

	Group    string
	Artifact string
	Version  string
	Name     string

	Packaging  string
	Properties map[string]string
	Modules    []string
}

// PomCache is a key-value store for parsed descriptor entries. Keys are
// content hashes of the descriptor bytes. Implementations must be safe for
// concurrent use.
type PomCache interface {
	// Get returns the entry stored for key. The boolean reports a hit.
	Get(key string) (*PomEntry, bool, error)

	// Put stores entry under key, replacing any previous value.
	Put(key string, entry *PomEntry) error
}

// DiskPomCache persists descriptor entries as one msgpack file per key below
// its root directory.
type DiskPomCache struct {
	mu  sync.RWMutex
	dir string
}

// NewDiskPomCache initializes a persistent descriptor cache rooted at dir.
func NewDiskPomCache(dir m.Path) (*DiskPomCache, error) {
	entryDir := filepath.Join(string(dir), "poms")
	if err := os.MkdirAll(entryDir, 0o750); err != nil {
		return nil, err
	}

	// Probe writability up front so an unusable directory fails construction
	// instead of every Put.
	probe, err := os.CreateTemp(entryDir, "probe-*")
	if err != nil {
		return nil, err
	}

	_ = probe.Close()
	_ = os.Remove(probe.Name())

	return &DiskPomCache{dir: entryDir}, nil
}

func (c *DiskPomCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".mp")
}

// Get reads and decodes the entry for key. A missing file is a miss, not an
// error.
func (c *DiskPomCache) Get(key string) (*PomEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, err
	}

	defer func() { _ = f.Close() }()

	var entry PomEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, err
	}

	if entry.Schema != pomCacheSchemaVersion {
		// Stale schema entries are treated as misses and overwritten later.
		return nil, false, nil
	}

	return &entry, true, nil
}

// Put encodes entry to a temp file and atomically renames it into place.
func (c *DiskPomCache) Put(key string, entry *PomEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.Schema = pomCacheSchemaVersion

	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}

	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), c.pathFor(key))
}

// MemoryPomCache is a volatile in-memory descriptor cache used when
// persistent storage is unavailable.
type MemoryPomCache struct {
	mu      sync.RWMutex
	entries map[string]*PomEntry
}

// NewMemoryPomCache constructs an empty volatile cache.
func NewMemoryPomCache() *MemoryPomCache {
	return &MemoryPomCache{entries: make(map[string]*PomEntry)}
}

// Get returns the entry stored for key.
func (c *MemoryPomCache) Get(key string) (*PomEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]

	return entry, ok, nil
}

// Put stores entry under key.
func (c *MemoryPomCache) Put(key string, entry *PomEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry

	return nil
}

// nopPomCache never stores anything; every lookup is a miss.
type nopPomCache struct{}

func (nopPomCache) Get(string) (*PomEntry, bool, error) { return nil, false, nil }
func (nopPomCache) Put(string, *PomEntry) error         { return nil }

// InitializeCache chooses the descriptor cache backing for one invocation.
// With caching disabled it returns an always-miss cache. Otherwise it
// attempts a persistent cache at dir (or the conventional home-directory
// default when dir is empty) and falls back to a volatile in-memory cache on
// any construction failure. This function never reports an error to the
// caller; failures are logged and degrade capability only.
func InitializeCache(enabled bool, dir m.Path, logger *slog.Logger) PomCache {
	if !enabled {
		return nopPomCache{}
	}

	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Warn("unable to locate home directory for descriptor cache, falling back to in-memory cache",
				"error", &m.CacheInitializationError{Err: err})

			return NewMemoryPomCache()
		}

		dir = m.Path(filepath.Join(home, defaultCacheDirName))
	}

	cache, err := NewDiskPomCache(dir)
	if err != nil {
		logger.Warn("unable to initialize disk descriptor cache, falling back to in-memory cache",
			"error", &m.CacheInitializationError{Dir: dir, Err: err})

		return NewMemoryPomCache()
	}

	return cache
}
