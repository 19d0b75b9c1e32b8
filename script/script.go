// Package script fetches player scripts and executes them against the namespace.
package script

import (
	"embed"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/mediaspawn/mediaspawn/constant"
)

// Fetcher loads and executes external code. onComplete fires once, asynchronously,
// on the loop after the script ran. There is no failure callback.
type Fetcher interface {
	Fetch(url string, onComplete func())
}

var (
	ErrNotFound   = errors.New("script not found")
	ErrNoFunction = errors.New("function is not defined")
	ErrBadStatus  = errors.New("unexpected status code")
	ErrClosed     = errors.New("runtime is closed")
)

//go:embed builtin/*.lua
var builtins embed.FS

// Builtins lists the script URLs shipped with the binary.
func Builtins() []string {
	entries, _ := fs.ReadDir(builtins, "builtin")

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, constant.BuiltinScheme+strings.TrimSuffix(e.Name(), ".lua"))
	}
	sort.Strings(urls)
	return urls
}

func readBuiltin(url string) ([]byte, error) {
	name := strings.TrimPrefix(url, constant.BuiltinScheme)
	body, err := builtins.ReadFile(path.Join("builtin", name+".lua"))
	if err != nil {
		return nil, errors.Join(ErrNotFound, err)
	}
	return body, nil
}

func isBuiltin(url string) bool {
	return strings.HasPrefix(url, constant.BuiltinScheme)
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
