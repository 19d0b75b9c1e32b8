// Package filesystem routes every file access through a swappable afero backend.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// Set replaces the backend, mostly for tests that need a prepared tree.
func Set(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	Set(afero.NewOsFs())
}

// SetMemMapFs switches to a volatile in-memory backend.
func SetMemMapFs() {
	Set(afero.NewMemMapFs())
}
