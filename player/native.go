package player

import (
	"sync"

	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/media"
)

// Backend plays HTML media for a native handle.
type Backend interface {
	Load(source string) error
	SetPaused(paused bool) error
	SetControls(enabled bool) error
	Resize(width, height int, visible bool) error
	Close() error
}

type nativeHandle struct {
	mu        sync.Mutex
	kind      media.Type
	backend   Backend
	surface   *Surface
	controls  bool
	playing   bool
	destroyed bool
}

func newNativeHandle(kind media.Type, backend Backend) *nativeHandle {
	h := &nativeHandle{
		kind:    kind,
		backend: backend,
		surface: newSurface(),
	}

	h.surface.Observe(func(width, height int, visible bool) {
		if err := backend.Resize(width, height, visible); err != nil {
			log.Component("player").WithError(err).Debug("resize")
		}
	})
	return h
}

func (h *nativeHandle) Type() media.Type {
	return h.kind
}

func (h *nativeHandle) Surface() *Surface {
	return h.surface
}

func (h *nativeHandle) Play() error {
	return h.setPlaying(true)
}

func (h *nativeHandle) Pause() error {
	return h.setPlaying(false)
}

func (h *nativeHandle) setPlaying(playing bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.destroyed {
		return ErrDestroyed
	}
	if err := h.backend.SetPaused(!playing); err != nil {
		return err
	}
	h.playing = playing
	return nil
}

// Playing reports whether the handle was last told to play.
func (h *nativeHandle) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing
}

func (h *nativeHandle) Controls(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.controls = enabled
	if err := h.backend.SetControls(enabled); err != nil {
		log.Component("player").WithError(err).Debug("controls")
	}
}

func (h *nativeHandle) HasControls() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.controls
}

func (h *nativeHandle) Destroy() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.destroyed {
		return nil
	}
	h.destroyed = true
	h.playing = false
	return h.backend.Close()
}
