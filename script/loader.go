package script

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/mediaspawn/mediaspawn/key"
	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/loop"
	"github.com/mediaspawn/mediaspawn/network"
	"github.com/mediaspawn/mediaspawn/util"
	"github.com/spf13/viper"
)

// Loader is the Fetcher used in production. Builtin and local scripts are read
// synchronously; remote ones are downloaded on a separate goroutine. Execution
// always happens on the scheduler.
type Loader struct {
	sched   loop.Scheduler
	runtime *Runtime
	client  *http.Client
	cache   *diskCache

	mu      sync.Mutex
	fetches map[string]int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithClient overrides the HTTP client used for remote scripts.
func WithClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		l.client = c
	}
}

// WithCacheTTL overrides fetch.cache_ttl. Zero disables the disk cache.
func WithCacheTTL(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.cache = newDiskCache(d)
	}
}

// NewLoader returns a loader executing scripts in rt on s.
func NewLoader(s loop.Scheduler, rt *Runtime, opts ...LoaderOption) *Loader {
	l := &Loader{
		sched:   s,
		runtime: rt,
		fetches: make(map[string]int),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		l.client = network.Select()
	}
	if l.cache == nil {
		l.cache = newDiskCache(time.Duration(viper.GetInt(key.FetchCacheTTL)) * time.Hour)
	}

	return l
}

// Fetches returns how many times url was requested.
func (l *Loader) Fetches(url string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fetches[url]
}

// Fetch implements Fetcher.
func (l *Loader) Fetch(url string, onComplete func()) {
	l.mu.Lock()
	l.fetches[url]++
	l.mu.Unlock()

	log.Component("script").WithField("url", url).Debug("fetching script")

	if isRemote(url) {
		go func() {
			body, err := l.download(url)
			l.deliver(url, body, err, onComplete)
		}()
		return
	}

	body, err := l.read(url)
	l.deliver(url, body, err, onComplete)
}

func (l *Loader) deliver(url string, body []byte, err error, onComplete func()) {
	logger := log.Component("script").WithField("url", url)

	if err != nil {
		logger.WithError(err).Warn("script fetch failed")
		return
	}

	l.sched.Post(func() {
		if err := l.runtime.Exec(url, body); err != nil {
			logger.WithError(err).Warn("script execution failed")
			return
		}

		logger.Debug("script executed")
		onComplete()
	})
}

func (l *Loader) read(url string) ([]byte, error) {
	if isBuiltin(url) {
		return readBuiltin(url)
	}

	return filesystem.API().ReadFile(strings.TrimPrefix(url, "file://"))
}

func (l *Loader) download(url string) ([]byte, error) {
	if cached, ok := l.cache.Get(url).Get(); ok {
		return []byte(cached), nil
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: %d", url, ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(url, string(body)); err != nil {
		log.Component("script").WithError(err).Warn("caching script")
	}

	return body, nil
}
