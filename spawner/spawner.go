// Package spawner attaches media players to timeline entries.
//
// Setup resolves the media type of a spawn, creates its wrapper container and
// loads the player scripts the type needs. Every script is fetched at most once
// per process: the first spawn to claim a type in the registry fetches it, the
// others poll the namespace until the script has defined its symbol. Once the
// player is built it stays alive and hidden until the entry's interval is entered.
package spawner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/mediaspawn/mediaspawn/config"
	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/key"
	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/loop"
	"github.com/mediaspawn/mediaspawn/media"
	"github.com/mediaspawn/mediaspawn/namespace"
	"github.com/mediaspawn/mediaspawn/page"
	"github.com/mediaspawn/mediaspawn/player"
	"github.com/mediaspawn/mediaspawn/registry"
	"github.com/mediaspawn/mediaspawn/script"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var (
	// ErrConfig wraps every error Setup detects synchronously.
	ErrConfig = errors.New("configuration error")

	// ErrNoTarget is returned when the target container does not exist.
	ErrNoTarget = errors.New("target container does not exist")

	// ErrLoad is reported when a player dependency did not load in time.
	ErrLoad = errors.New("player dependency failed to load")

	// ErrBuild is reported when the player factory failed.
	ErrBuild = errors.New("player construction failed")
)

// Reporter is the error channel of the host.
type Reporter func(error)

// Options configure one spawn.
type Options struct {
	Source   string
	Target   string
	Start    time.Duration
	End      time.Duration
	Caption  string
	Autoplay bool
	Width    mo.Option[int]
	Height   mo.Option[int]
}

// Settings tune dependency loading and sizing.
type Settings struct {
	// ModuleURL locates the generic player module script.
	ModuleURL string

	// URLTemplate locates type specific scripts, %s is the media type.
	URLTemplate string

	PollInterval time.Duration

	// LoadTimeout bounds every dependency wait. Zero waits forever.
	LoadTimeout time.Duration

	// FallbackWidth and FallbackHeight apply when neither the options nor the target provide a size.
	FallbackWidth  int
	FallbackHeight int
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		ModuleURL:      constant.ModuleScriptURL,
		URLTemplate:    constant.PlayerScriptPattern,
		PollInterval:   constant.PollInterval,
		LoadTimeout:    constant.LoadTimeout,
		FallbackWidth:  constant.FallbackWidth,
		FallbackHeight: constant.FallbackHeight,
	}
}

// SettingsFromConfig reads the settings from the loaded configuration.
func SettingsFromConfig() Settings {
	return Settings{
		ModuleURL:      viper.GetString(key.PlayersModuleURL),
		URLTemplate:    viper.GetString(key.PlayersURLTemplate),
		PollInterval:   config.PollInterval(),
		LoadTimeout:    config.LoadTimeout(),
		FallbackWidth:  viper.GetInt(key.SpawnerDefaultWidth),
		FallbackHeight: viper.GetInt(key.SpawnerDefaultHeight),
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.ModuleURL == "" {
		s.ModuleURL = d.ModuleURL
	}
	if s.URLTemplate == "" {
		s.URLTemplate = d.URLTemplate
	}
	if s.PollInterval <= 0 {
		s.PollInterval = d.PollInterval
	}
	if s.LoadTimeout < 0 {
		s.LoadTimeout = 0
	}
	if s.FallbackWidth <= 0 {
		s.FallbackWidth = d.FallbackWidth
	}
	if s.FallbackHeight <= 0 {
		s.FallbackHeight = d.FallbackHeight
	}
	return s
}

// ImplementationURL returns where the script for t is fetched from.
func (s Settings) ImplementationURL(t media.Type) string {
	if !strings.Contains(s.URLTemplate, "%") {
		return s.URLTemplate
	}
	return fmt.Sprintf(s.URLTemplate, t)
}

// Deps are the collaborators of a Spawner. All callbacks run on Scheduler.
type Deps struct {
	Registry  *registry.Registry
	Namespace *namespace.Namespace
	Fetcher   script.Fetcher
	Factory   player.Factory
	Scheduler loop.Scheduler
	Document  *page.Document
	Report    Reporter
	Settings  Settings

	// OnState, when set, observes every state change.
	OnState func(*Instance, State)
}

// Spawner creates instances. It is meant to be driven from the scheduler goroutine.
type Spawner struct {
	deps     Deps
	settings Settings
}

// New returns a Spawner. A nil Report discards errors.
func New(deps Deps) *Spawner {
	if deps.Report == nil {
		deps.Report = func(error) {}
	}

	return &Spawner{
		deps:     deps,
		settings: deps.Settings.withDefaults(),
	}
}

// Settings returns the effective settings.
func (s *Spawner) Settings() Settings {
	return s.settings
}

// Setup validates opts, creates the wrapper container and starts loading the player.
// Configuration errors are reported and returned, in which case nothing was created or fetched.
func (s *Spawner) Setup(opts Options) (*Instance, error) {
	kind, target, err := s.validate(opts)
	if err != nil {
		log.Component("spawner").WithError(err).WithField("source", opts.Source).Warn("setup rejected")
		s.deps.Report(err)
		return nil, err
	}

	inst := &Instance{
		spawner: s,
		opts:    opts,
		kind:    kind,
		target:  target,
		state:   Resolving,
		done:    make(chan struct{}),
	}
	inst.width, inst.height = s.size(opts, target)
	inst.attach(s.deps.Document)

	log.Component("spawner").WithFields(log.Fields{
		"container": inst.ContainerID(),
		"type":      kind,
		"target":    opts.Target,
	}).Debug("setup")

	s.awaitModule(inst)
	return inst, nil
}

func (s *Spawner) validate(opts Options) (media.Type, *page.Element, error) {
	if strings.TrimSpace(opts.Source) == "" {
		return "", nil, fmt.Errorf("%w: %w", ErrConfig, media.ErrNoSource)
	}

	target, ok := s.deps.Document.GetElementByID(opts.Target)
	if !ok {
		return "", nil, s.errNoTarget(opts.Target)
	}

	kind, err := media.Resolve(opts.Source)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return kind, target, nil
}

// errNoTarget suggests the closest container. Spawned wrappers and captions are never suggested.
func (s *Spawner) errNoTarget(id string) error {
	ids := lo.Reject(s.deps.Document.IDs(), func(candidate string, _ int) bool {
		return strings.HasPrefix(candidate, constant.ContainerPrefix)
	})
	if len(ids) == 0 {
		return fmt.Errorf("%w: %w: %q", ErrConfig, ErrNoTarget, id)
	}

	closest := lo.MinBy(ids, func(a, b string) bool {
		return levenshtein.Distance(id, a) < levenshtein.Distance(id, b)
	})
	return fmt.Errorf("%w: %w: %q, did you mean %q?", ErrConfig, ErrNoTarget, id, closest)
}

// size prefers the options, then the target's rendered size, then the fallback.
func (s *Spawner) size(opts Options, target *page.Element) (width, height int) {
	width = opts.Width.OrElse(0)
	if width <= 0 {
		width = target.OffsetWidth()
	}
	if width <= 0 {
		width = s.settings.FallbackWidth
	}

	height = opts.Height.OrElse(0)
	if height <= 0 {
		height = target.OffsetHeight()
	}
	if height <= 0 {
		height = s.settings.FallbackHeight
	}
	return width, height
}
