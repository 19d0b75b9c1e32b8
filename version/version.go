// Package version looks up the latest mediaspawn release.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/mediaspawn/mediaspawn/network"
	"github.com/mediaspawn/mediaspawn/util"
	"github.com/mediaspawn/mediaspawn/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the release feed queried by Latest.
const ReleasesURL = "https://api.github.com/repos/mediaspawn/mediaspawn/releases/latest"

// ErrNoTag is returned when the release feed names no version.
var ErrNoTag = errors.New("release has no tag")

// Checker queries a release feed and caches the answer on disk.
type Checker struct {
	client *http.Client
	url    string
	cache  *gache.Cache[string]
}

// NewChecker returns a Checker of url caching its answer for lifetime.
func NewChecker(client *http.Client, url string, lifetime time.Duration) *Checker {
	if client == nil {
		client = network.Select()
	}

	return &Checker{
		client: client,
		url:    url,
		cache: gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), "version.json"),
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Latest returns the version of the latest release, without the v prefix.
func (c *Checker) Latest() (string, error) {
	if cached, expired, err := c.cache.Get(); err == nil && !expired && cached != "" {
		return cached, nil
	}

	req, err := http.NewRequest(http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release feed: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	tag := strings.TrimPrefix(release.TagName, "v")
	if tag == "" {
		return "", ErrNoTag
	}

	_ = c.cache.Set(tag)
	return tag, nil
}

// Newer returns the latest version when it is ahead of current.
func (c *Checker) Newer(current string) (string, bool, error) {
	latest, err := c.Latest()
	if err != nil {
		return "", false, err
	}

	cmp, err := Compare(latest, current)
	if err != nil {
		return "", false, err
	}
	return latest, cmp > 0, nil
}
