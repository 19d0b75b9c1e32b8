// Package plan reads and writes plan files: the containers of a page and the
// media spawned into them over time.
package plan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/mediaspawn/mediaspawn/page"
	"github.com/mediaspawn/mediaspawn/spawner"
	"github.com/mediaspawn/mediaspawn/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var (
	ErrInvalid    = errors.New("invalid plan")
	ErrNoSpawns   = errors.New("plan has no spawns")
	ErrBadFormat  = errors.New("unsupported plan format")
	SupportedExts = []string{"toml", "yaml", "yml", "json"}
)

// Container is a target element of the page.
type Container struct {
	ID     string `mapstructure:"id" json:"id" jsonschema:"required"`
	Width  int    `mapstructure:"width" json:"width,omitempty"`
	Height int    `mapstructure:"height" json:"height,omitempty"`
}

// Spawn is one timed media insertion. Times are in seconds.
type Spawn struct {
	Source   string  `mapstructure:"source" json:"source" jsonschema:"required"`
	Target   string  `mapstructure:"target" json:"target" jsonschema:"required"`
	Start    float64 `mapstructure:"start" json:"start"`
	End      float64 `mapstructure:"end" json:"end"`
	Caption  string  `mapstructure:"caption" json:"caption,omitempty"`
	Autoplay bool    `mapstructure:"autoplay" json:"autoplay,omitempty"`
	Width    int     `mapstructure:"width" json:"width,omitempty"`
	Height   int     `mapstructure:"height" json:"height,omitempty"`
}

// Plan is a parsed plan file.
type Plan struct {
	Name       string      `mapstructure:"name" json:"name,omitempty"`
	Author     string      `mapstructure:"author" json:"author,omitempty"`
	Duration   float64     `mapstructure:"duration" json:"duration"`
	Containers []Container `mapstructure:"container" json:"container"`
	Spawns     []Spawn     `mapstructure:"spawn" json:"spawn"`
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func format(path string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if !lo.Contains(SupportedExts, ext) {
		return "", fmt.Errorf("%w: %q", ErrBadFormat, ext)
	}
	return ext, nil
}

// Load reads the plan at path. The format follows the file extension.
func Load(path string) (*Plan, error) {
	ext, err := format(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(filesystem.API())
	v.SetConfigFile(path)
	v.SetConfigType(ext)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	var p Plan
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	if p.Name == "" {
		p.Name = util.FileStem(path)
	}
	return &p, nil
}

// Validate checks the intervals and the duration. Missing targets and sources are left to the spawner.
func (p *Plan) Validate() error {
	if len(p.Spawns) == 0 {
		return ErrNoSpawns
	}

	var errs []error
	if p.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration %v is negative", p.Duration))
	}

	for i, s := range p.Spawns {
		switch {
		case s.Start < 0:
			errs = append(errs, fmt.Errorf("spawn %d: start %v is negative", i+1, s.Start))
		case s.End <= s.Start:
			errs = append(errs, fmt.Errorf("spawn %d: end %v is not after start %v", i+1, s.End, s.Start))
		case p.Duration > 0 && s.End > p.Duration:
			errs = append(errs, fmt.Errorf("spawn %d: end %v exceeds duration %v", i+1, s.End, p.Duration))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// TotalDuration returns the declared duration or the end of the last spawn.
func (p *Plan) TotalDuration() time.Duration {
	if p.Duration > 0 {
		return seconds(p.Duration)
	}
	return seconds(lo.Reduce(p.Spawns, func(d float64, s Spawn, _ int) float64 {
		return max(d, s.End)
	}, 0))
}

// Document builds the page holding the plan's containers.
func (p *Plan) Document() *page.Document {
	doc := page.NewDocument()
	for _, c := range p.Containers {
		doc.Add(c.ID, c.Width, c.Height)
	}
	return doc
}

// Options converts the spawns to spawner options.
func (p *Plan) Options() []spawner.Options {
	return lo.Map(p.Spawns, func(s Spawn, _ int) spawner.Options {
		return spawner.Options{
			Source:   s.Source,
			Target:   s.Target,
			Start:    seconds(s.Start),
			End:      seconds(s.End),
			Caption:  s.Caption,
			Autoplay: s.Autoplay,
			Width:    positive(s.Width),
			Height:   positive(s.Height),
		}
	})
}

func positive(n int) mo.Option[int] {
	if n > 0 {
		return mo.Some(n)
	}
	return mo.None[int]()
}

// settings flattens p into the keys Load decodes. Zero optional fields are left out.
func (p *Plan) settings() map[string]any {
	out := map[string]any{"duration": p.Duration}

	out["container"] = lo.Map(p.Containers, func(c Container, _ int) map[string]any {
		m := map[string]any{"id": c.ID}
		if c.Width > 0 {
			m["width"] = c.Width
		}
		if c.Height > 0 {
			m["height"] = c.Height
		}
		return m
	})

	out["spawn"] = lo.Map(p.Spawns, func(s Spawn, _ int) map[string]any {
		m := map[string]any{
			"source": s.Source,
			"target": s.Target,
			"start":  s.Start,
			"end":    s.End,
		}
		if s.Caption != "" {
			m["caption"] = s.Caption
		}
		if s.Autoplay {
			m["autoplay"] = true
		}
		if s.Width > 0 {
			m["width"] = s.Width
		}
		if s.Height > 0 {
			m["height"] = s.Height
		}
		return m
	})

	if p.Name != "" {
		out["name"] = p.Name
	}
	if p.Author != "" {
		out["author"] = p.Author
	}
	return out
}

// Write saves p to path. The format follows the file extension, as in Load.
func Write(path string, p *Plan) error {
	ext, err := format(path)
	if err != nil {
		return err
	}

	if err := filesystem.API().MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.SetFs(filesystem.API())
	v.SetConfigType(ext)
	for k, value := range p.settings() {
		v.Set(k, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}
