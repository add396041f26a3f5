package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"pyfix/internal/fix"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest — фиксированный 256-битный ключ кэша.
type Digest [32]byte

// DiskCache хранит результаты починок по хешу (содержимое + настройки).
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores a cached per-file fix outcome.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path    string
	Output  string
	Changed bool
	Applied []fix.AppliedFix
	Skipped []fix.SkippedFix
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
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "fixes".
	return filepath.Join(c.dir, "fixes", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
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
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// Устаревшая схема считается промахом.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
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
	defer func() {
		_ = f.Close()
	}()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим целиком
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// FixCacheKey строит ключ кэша из содержимого файла и настроек починки.
func FixCacheKey(content []byte, opts FixPathsOptions, reports []fix.Report) Digest {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(opts.digest()))
	for _, rep := range reports {
		h.Write([]byte{0})
		h.Write([]byte(rep.Code))
		var pos [8]byte
		putUint32(pos[0:4], uint32(rep.Line)) // #nosec G115 -- line numbers fit uint32
		putUint32(pos[4:8], uint32(rep.Col))  // #nosec G115 -- columns fit uint32
		h.Write(pos[:])
		// Сообщение тоже формирует результат: E231 берёт из него
		// целевой символ.
		h.Write([]byte{0})
		h.Write([]byte(rep.Message))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
