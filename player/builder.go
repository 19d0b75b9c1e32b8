package player

import (
	"fmt"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/key"
	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/media"
	"github.com/mediaspawn/mediaspawn/namespace"
	"github.com/mediaspawn/mediaspawn/script"
	"github.com/spf13/viper"
	lua "github.com/yuin/gopher-lua"
)

// Backends selectable with player.backend.
const (
	BackendHeadless = "headless"
	BackendMPV      = "mpv"
)

// Builder is the Factory backed by the namespace player scripts define into.
type Builder struct {
	ns         *namespace.Namespace
	newBackend func() Backend
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBackend overrides the backend constructor used for HTML sources.
func WithBackend(fn func() Backend) BuilderOption {
	return func(b *Builder) {
		b.newBackend = fn
	}
}

// NewBuilder returns a Builder. The HTML backend defaults to player.backend.
func NewBuilder(ns *namespace.Namespace, opts ...BuilderOption) *Builder {
	b := &Builder{ns: ns}
	for _, opt := range opts {
		opt(b)
	}

	if b.newBackend == nil {
		b.newBackend = BackendFor(viper.GetString(key.PlayerBackend))
	}
	return b
}

// BackendFor maps a backend name to its constructor. Unknown names fall back to headless.
func BackendFor(name string) func() Backend {
	switch name {
	case BackendMPV:
		return func() Backend { return NewMPVBackend() }
	default:
		return func() Backend { return NewHeadless() }
	}
}

// Build implements Factory.
func (b *Builder) Build(containerID, source string) (Handle, error) {
	module, ok := b.ns.Lookup(media.Module.String())
	if !ok {
		return nil, ErrModuleMissing
	}

	kind, err := media.Resolve(source)
	if err != nil {
		return nil, err
	}

	if err := checkSupport(module, kind); err != nil {
		return nil, err
	}

	logger := log.Component("player").WithField("container", containerID).WithField("type", kind)

	if !kind.NeedsImplementation() {
		backend := b.newBackend()
		if kind == media.HTML {
			if err := backend.Load(source); err != nil {
				return nil, fmt.Errorf("load %s: %w", source, err)
			}
		}

		logger.Debug("native player built")
		return newNativeHandle(kind, backend), nil
	}

	value, ok := b.ns.Lookup(kind.String())
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, ErrImplementationMissing)
	}

	impl, ok := value.(*script.Implementation)
	if !ok {
		return nil, fmt.Errorf("%s is %T, not a player script: %w", kind, value, ErrImplementationMissing)
	}

	h, err := newScriptedHandle(kind, impl, containerID, source)
	if err != nil {
		return nil, fmt.Errorf("build %s player: %w", kind, err)
	}

	logger.Debug("scripted player built")
	return h, nil
}

// checkSupport asks the module's supports function, when it has one, whether it can host kind.
func checkSupport(module any, kind media.Type) error {
	impl, ok := module.(*script.Implementation)
	if !ok || !impl.Has(constant.SupportsFn) {
		return nil
	}

	supported, err := impl.Call(constant.SupportsFn, lua.LString(kind))
	if err != nil {
		return err
	}
	if !lua.LVAsBool(supported) {
		return fmt.Errorf("%s: %w", kind, media.ErrUnsupported)
	}
	return nil
}
