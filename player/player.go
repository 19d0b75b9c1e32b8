// Package player builds the media players spawned into containers.
// HTML sources get a native handle driving a playback backend; services like
// YouTube get a handle delegating to the player script that defined them.
package player

import (
	"errors"

	"github.com/mediaspawn/mediaspawn/media"
)

var (
	// ErrModuleMissing is returned when the generic player module has not been defined yet.
	ErrModuleMissing = errors.New("player module is not loaded")

	// ErrImplementationMissing is returned when the type specific player script has not been defined yet.
	ErrImplementationMissing = errors.New("player implementation is not loaded")

	// ErrDestroyed is returned by handles used after Destroy.
	ErrDestroyed = errors.New("player is destroyed")
)

// Handle is a constructed player.
type Handle interface {
	// Type is the media type the handle plays.
	Type() media.Type

	Play() error
	Pause() error

	// Controls toggles native playback controls. Only HTML players have them.
	Controls(enabled bool)

	// Surface is the presentation area of the player.
	Surface() *Surface

	// Destroy releases the player. Calling it twice is a no-op.
	Destroy() error
}

// Factory constructs a player for source inside the container with the given id.
type Factory interface {
	Build(containerID, source string) (Handle, error)
}
