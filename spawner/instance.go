package spawner

import (
	"sync"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/media"
	"github.com/mediaspawn/mediaspawn/page"
	"github.com/mediaspawn/mediaspawn/player"
	"github.com/mediaspawn/mediaspawn/poller"
	"github.com/samber/mo"
)

// State is the position of an instance in its load sequence.
type State int

const (
	Resolving State = iota
	AwaitingModule
	AwaitingImplementation
	Constructing
	Ready
	Failed
	TornDown
)

func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case AwaitingModule:
		return "awaiting-module"
	case AwaitingImplementation:
		return "awaiting-implementation"
	case Constructing:
		return "constructing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case TornDown:
		return "torn-down"
	default:
		return "unknown"
	}
}

// Loading reports whether s is before Ready.
func (s State) Loading() bool {
	return s < Ready
}

// Final reports whether no further transition can happen except teardown.
func (s State) Final() bool {
	return s >= Ready
}

// Instance is one spawned player.
type Instance struct {
	spawner *Spawner
	opts    Options
	kind    media.Type
	width   int
	height  int
	target  *page.Element
	wrapper *page.Element
	caption *page.Element

	mu       sync.Mutex
	state    State
	handle   player.Handle
	wait     *poller.Wait
	inside   bool
	queued   mo.Option[bool]
	err      error
	doneOnce sync.Once
	done     chan struct{}
}

func (i *Instance) attach(doc *page.Document) {
	i.wrapper = doc.CreateElement(page.GUID(constant.ContainerPrefix))

	if i.opts.Caption != "" {
		i.caption = doc.CreateElement(i.wrapper.ID() + "-caption")
		i.caption.SetText(i.opts.Caption)
		i.caption.SetDisplay(page.DisplayNone)
		i.wrapper.AppendChild(i.caption)
	}

	i.target.AppendChild(i.wrapper)
}

// State returns the current state.
func (i *Instance) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Type returns the resolved media type.
func (i *Instance) Type() media.Type {
	return i.kind
}

// Options returns the options the instance was set up with.
func (i *Instance) Options() Options {
	return i.opts
}

// Size returns the width and height the player shows at.
func (i *Instance) Size() (width, height int) {
	return i.width, i.height
}

// ContainerID returns the id of the wrapper container.
func (i *Instance) ContainerID() string {
	return i.wrapper.ID()
}

// Wrapper returns the wrapper container.
func (i *Instance) Wrapper() *page.Element {
	return i.wrapper
}

// Caption returns the caption container, if any.
func (i *Instance) Caption() mo.Option[*page.Element] {
	if i.caption == nil {
		return mo.None[*page.Element]()
	}
	return mo.Some(i.caption)
}

// Handle returns the player once Ready.
func (i *Instance) Handle() mo.Option[player.Handle] {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.handle == nil {
		return mo.None[player.Handle]()
	}
	return mo.Some(i.handle)
}

// Err returns why the instance failed.
func (i *Instance) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

// Inside reports whether the instance is within its interval.
func (i *Instance) Inside() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.inside
}

// Done is closed once the instance is Ready, Failed or TornDown.
func (i *Instance) Done() <-chan struct{} {
	return i.done
}

// setState moves a loading instance forward. It returns false once the instance left the load sequence.
func (i *Instance) setState(s State) bool {
	i.mu.Lock()
	if !i.state.Loading() {
		i.mu.Unlock()
		return false
	}
	i.state = s
	i.mu.Unlock()

	i.notify(s)
	return true
}

func (i *Instance) notify(s State) {
	log.Component("spawner").WithField("container", i.wrapper.ID()).WithField("state", s).Debug("state")

	if s.Final() {
		i.doneOnce.Do(func() { close(i.done) })
	}

	if fn := i.spawner.deps.OnState; fn != nil {
		fn(i, s)
	}
}

// Enter reveals the player, resizing it to its configured size, and starts it when autoplay is set.
// Before Ready the call is remembered and applied once the player is built.
func (i *Instance) Enter() {
	i.interval(true)
}

// Exit collapses the player. HTML players are paused; third party players are left to react to being hidden.
// Before Ready the call is remembered and applied once the player is built.
func (i *Instance) Exit() {
	i.interval(false)
}

func (i *Instance) interval(enter bool) {
	i.mu.Lock()
	switch {
	case i.state.Loading():
		i.queued = mo.Some(enter)
		i.inside = enter
		i.mu.Unlock()
		return
	case i.state != Ready:
		i.mu.Unlock()
		return
	}
	i.inside = enter
	h := i.handle
	i.mu.Unlock()

	if enter {
		i.enter(h)
	} else {
		i.exit(h)
	}
}

func (i *Instance) enter(h player.Handle) {
	if i.caption != nil {
		i.caption.SetDisplay("")
	}

	h.Surface().Show(i.width, i.height)

	if i.opts.Autoplay {
		if err := h.Play(); err != nil {
			log.Component("spawner").WithError(err).WithField("container", i.wrapper.ID()).Warn("play")
		}
	}
}

func (i *Instance) exit(h player.Handle) {
	if i.caption != nil {
		i.caption.SetDisplay(page.DisplayNone)
	}

	h.Surface().Hide()

	if i.kind == media.HTML {
		if err := h.Pause(); err != nil {
			log.Component("spawner").WithError(err).WithField("container", i.wrapper.ID()).Warn("pause")
		}
	}
}

// Teardown destroys the player and detaches the wrapper from its target.
// A teardown during loading cancels the pending wait. Calling it twice is a no-op.
func (i *Instance) Teardown() {
	i.mu.Lock()
	if i.state == TornDown {
		i.mu.Unlock()
		return
	}
	i.state = TornDown
	h, w := i.handle, i.wait
	i.handle, i.wait = nil, nil
	i.inside = false
	i.mu.Unlock()

	if w != nil {
		w.Cancel()
	}

	if h != nil {
		if err := h.Destroy(); err != nil {
			log.Component("spawner").WithError(err).WithField("container", i.wrapper.ID()).Warn("destroy")
		}
	}

	doc := i.spawner.deps.Document
	if current, ok := doc.GetElementByID(i.target.ID()); ok && current == i.target && i.target.Contains(i.wrapper) {
		doc.Remove(i.wrapper.ID())
	}

	i.notify(TornDown)
}
