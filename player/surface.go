package player

import "sync"

// Surface is a player's presentation area.
type Surface struct {
	mu       sync.RWMutex
	width    int
	height   int
	visible  bool
	observer func(width, height int, visible bool)
}

func newSurface() *Surface {
	return &Surface{}
}

// Show sizes the surface and makes it visible.
func (s *Surface) Show(width, height int) {
	s.set(width, height, true)
}

// Hide collapses the surface to zero size.
func (s *Surface) Hide() {
	s.set(0, 0, false)
}

func (s *Surface) set(width, height int, visible bool) {
	s.mu.Lock()
	s.width, s.height, s.visible = width, height, visible
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer(width, height, visible)
	}
}

// Hidden reports whether the surface is collapsed.
func (s *Surface) Hidden() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.visible
}

// Size returns the current width and height.
func (s *Surface) Size() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// Observe registers fn to be called after every change.
func (s *Surface) Observe(fn func(width, height int, visible bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}
