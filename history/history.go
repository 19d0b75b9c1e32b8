// Package history remembers played plans so they can be replayed or searched.
package history

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/mediaspawn/mediaspawn/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Record is one played plan.
type Record struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Runs     int       `json:"runs"`
	Failures int       `json:"failures"`
	LastRun  time.Time `json:"last_run"`
}

var (
	once   sync.Once
	cached *gache.Cache[map[string]*Record]
)

func cacher() *gache.Cache[map[string]*Record] {
	once.Do(func() {
		cached = gache.New[map[string]*Record](&gache.Options{
			Path:       where.History(),
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cached
}

// Get returns every record keyed by absolute plan path.
func Get() (map[string]*Record, error) {
	records, expired, err := cacher().Get()
	if err != nil {
		return nil, err
	}
	if expired || records == nil {
		return make(map[string]*Record), nil
	}
	return records, nil
}

// Save records a run of the plan at path that ended with failures errors.
func Save(path, name string, failures int) error {
	path = absolute(path)

	records, err := Get()
	if err != nil {
		return err
	}

	r, ok := records[path]
	if !ok {
		r = &Record{Path: path}
		records[path] = r
	}

	r.Name = name
	r.Runs++
	r.Failures = failures
	r.LastRun = time.Now()

	return cacher().Set(records)
}

// Remove forgets the plan at path.
func Remove(path string) error {
	records, err := Get()
	if err != nil {
		return err
	}

	delete(records, absolute(path))
	return cacher().Set(records)
}

// Recent returns records, most recently played first.
func Recent() ([]*Record, error) {
	records, err := Get()
	if err != nil {
		return nil, err
	}

	list := lo.Values(records)
	sort.Slice(list, func(i, j int) bool {
		return list[i].LastRun.After(list[j].LastRun)
	})
	return list, nil
}

// Last returns the most recently played plan.
func Last() mo.Option[*Record] {
	recent, err := Recent()
	if err != nil || len(recent) == 0 {
		return mo.None[*Record]()
	}
	return mo.Some(recent[0])
}

// Search returns records whose name or path fuzzy matches q, most played first.
func Search(q string) ([]*Record, error) {
	recent, err := Recent()
	if err != nil {
		return nil, err
	}

	found := lo.Filter(recent, func(r *Record, _ int) bool {
		return fuzzy.MatchFold(q, r.Name) || fuzzy.MatchFold(q, r.Path)
	})
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Runs > found[j].Runs
	})
	return found, nil
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
