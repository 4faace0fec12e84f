package driver

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"reprint/internal/diag"
)

// Current schema version - increment when CachePayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты перепечатки по ключу cacheKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is what a cache entry holds: enough to rebuild a Result
// without parsing.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path    string
	Output  string
	Changed bool
	Edits   int

	// Diagnostics reported while printing (fallbacks), without notes.
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is the flat, serialisable form of a diag.Diagnostic.
type CachedDiagnostic struct {
	Code     uint16
	Severity uint8
	Message  string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	// Подкаталог по первым двум символам, чтобы не копить тысячи файлов в одном.
	return filepath.Join(c.dir, "prints", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. Entries written
// with another schema version are misses.
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func resultToPayload(r *Result) *CachePayload {
	payload := &CachePayload{
		Schema:  diskCacheSchemaVersion,
		Path:    r.Path,
		Output:  r.Output,
		Changed: r.Changed,
		Edits:   r.Edits,
	}
	if r.Bag != nil {
		for _, d := range r.Bag.Items() {
			payload.Diagnostics = append(payload.Diagnostics, CachedDiagnostic{
				Code:     uint16(d.Code),
				Severity: uint8(d.Severity),
				Message:  d.Message,
			})
		}
	}
	return payload
}

func payloadToResult(path string, payload *CachePayload, maxDiagnostics int) Result {
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range payload.Diagnostics {
		entry := diag.New(diag.Severity(d.Severity), diag.Code(d.Code), zeroRange, d.Message)
		entry.Path = path
		bag.Add(entry)
	}
	return Result{
		Path:    path,
		Output:  payload.Output,
		Changed: payload.Changed,
		Edits:   payload.Edits,
		Cached:  true,
		Bag:     bag,
	}
}
