package player

import "sync"

// HeadlessState is what a headless backend has been told to do.
type HeadlessState struct {
	Source   string
	Paused   bool
	Controls bool
	Width    int
	Height   int
	Visible  bool
	Closed   bool
}

// Headless is an in-memory Backend.
type Headless struct {
	mu    sync.Mutex
	state HeadlessState
}

// NewHeadless returns a paused headless backend.
func NewHeadless() *Headless {
	return &Headless{state: HeadlessState{Paused: true}}
}

func (h *Headless) Load(source string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Source = source
	return nil
}

func (h *Headless) SetPaused(paused bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Paused = paused
	return nil
}

func (h *Headless) SetControls(enabled bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Controls = enabled
	return nil
}

func (h *Headless) Resize(width, height int, visible bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Width, h.state.Height, h.state.Visible = width, height, visible
	return nil
}

func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Closed = true
	h.state.Paused = true
	return nil
}

// State returns a copy of the current state.
func (h *Headless) State() HeadlessState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}
