package player

import (
	"sync"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/media"
	"github.com/mediaspawn/mediaspawn/script"
	lua "github.com/yuin/gopher-lua"
)

// scriptedHandle delegates playback to a player script: impl:play(p), impl:pause(p), impl:destroy(p),
// where p is the value impl:build(containerID, source) returned.
type scriptedHandle struct {
	mu        sync.Mutex
	kind      media.Type
	impl      *script.Implementation
	instance  lua.LValue
	surface   *Surface
	destroyed bool
}

func newScriptedHandle(kind media.Type, impl *script.Implementation, containerID, source string) (*scriptedHandle, error) {
	instance, err := impl.Call(constant.BuildFn, lua.LString(containerID), lua.LString(source))
	if err != nil {
		return nil, err
	}

	return &scriptedHandle{
		kind:     kind,
		impl:     impl,
		instance: instance,
		surface:  newSurface(),
	}, nil
}

func (h *scriptedHandle) Type() media.Type {
	return h.kind
}

func (h *scriptedHandle) Surface() *Surface {
	return h.surface
}

// Controls is a no-op, third party players bring their own.
func (h *scriptedHandle) Controls(bool) {}

func (h *scriptedHandle) Play() error {
	return h.call(constant.PlayFn)
}

func (h *scriptedHandle) Pause() error {
	return h.call(constant.PauseFn)
}

func (h *scriptedHandle) call(fn string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.destroyed {
		return ErrDestroyed
	}
	_, err := h.impl.Call(fn, h.instance)
	return err
}

func (h *scriptedHandle) Destroy() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.destroyed {
		return nil
	}
	h.destroyed = true

	if !h.impl.Has(constant.DestroyFn) {
		return nil
	}
	_, err := h.impl.Call(constant.DestroyFn, h.instance)
	return err
}

// Instance exposes the script's player value.
func (h *scriptedHandle) Instance() lua.LValue {
	return h.instance
}
