// Package manifest describes the plugin to authoring tools: who made it and
// which options a spawn accepts.
package manifest

import (
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/plan"
)

// About identifies the plugin.
type About struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Author  string `json:"author"`
	Website string `json:"website"`
}

// Option describes one spawn option as an editor would render it.
type Option struct {
	Name     string `json:"name"`
	Elem     string `json:"elem"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Optional bool   `json:"optional,omitempty"`
	Default  any    `json:"default,omitempty"`
}

// Manifest is the plugin description.
type Manifest struct {
	About   About    `json:"about"`
	Options []Option `json:"options"`
}

// Get returns the manifest of the media spawner.
func Get() Manifest {
	return Manifest{
		About: About{
			Name:    constant.Mediaspawn,
			Version: constant.Version,
			Author:  "mediaspawn authors",
			Website: "https://github.com/mediaspawn/mediaspawn",
		},
		Options: []Option{
			{Name: "source", Elem: "input", Type: "text", Label: "Media Source"},
			{Name: "caption", Elem: "input", Type: "text", Label: "Media Caption", Optional: true},
			{Name: "target", Elem: "input", Type: "text", Label: "Target Container", Default: "mediaspawner-container"},
			{Name: "start", Elem: "input", Type: "text", Label: "Start"},
			{Name: "end", Elem: "input", Type: "text", Label: "End"},
			{Name: "autoplay", Elem: "input", Type: "checkbox", Label: "Autoplay Video", Optional: true},
			{Name: "width", Elem: "input", Type: "text", Label: "Media Width", Optional: true, Default: constant.FallbackWidth},
			{Name: "height", Elem: "input", Type: "text", Label: "Media Height", Optional: true, Default: constant.FallbackHeight},
		},
	}
}

// Required returns the names of the options every spawn must set. A default
// only pre-fills the editor, the option stays required.
func (m Manifest) Required() []string {
	var names []string
	for _, o := range m.Options {
		if !o.Optional {
			names = append(names, o.Name)
		}
	}
	return names
}

// Schema returns the JSON Schema of a spawn, or of a whole plan when whole is set.
func Schema(whole bool) *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		if t.Name() == "" {
			return ""
		}
		return filepath.Base(t.PkgPath()) + "." + t.Name()
	}

	if whole {
		return reflector.Reflect(&plan.Plan{})
	}
	return reflector.Reflect(&plan.Spawn{})
}
