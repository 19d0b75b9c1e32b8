package script

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/mediaspawn/mediaspawn/util"
	"github.com/mediaspawn/mediaspawn/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

const cacheExt = ".json"

// diskCache keeps downloaded script bodies under where.Scripts(), one gache file per URL.
type diskCache struct {
	mu       sync.Mutex
	lifetime time.Duration
	entries  map[string]*gache.Cache[string]
}

func newDiskCache(lifetime time.Duration) *diskCache {
	return &diskCache{
		lifetime: lifetime,
		entries:  make(map[string]*gache.Cache[string]),
	}
}

func (c *diskCache) entry(url string) *gache.Cache[string] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[url]; ok {
		return e
	}

	e := gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Scripts(), util.SanitizeFilename(url)+cacheExt),
		Lifetime:   c.lifetime,
		FileSystem: &filesystem.GacheFs{},
	})
	c.entries[url] = e
	return e
}

func (c *diskCache) Get(url string) mo.Option[string] {
	if c.lifetime <= 0 {
		return mo.None[string]()
	}

	body, expired, err := c.entry(url).Get()
	if err != nil || expired || body == "" {
		return mo.None[string]()
	}
	return mo.Some(body)
}

func (c *diskCache) Set(url, body string) error {
	if c.lifetime <= 0 {
		return nil
	}
	return c.entry(url).Set(body)
}

// Cached lists the cached script files.
func Cached() ([]string, error) {
	dir := where.Scripts()
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), cacheExt) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// ClearCache removes every cached script.
func ClearCache() error {
	return filesystem.API().RemoveAll(where.Scripts())
}
