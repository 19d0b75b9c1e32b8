// Package media classifies spawn sources into the player type that can play them.
package media

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mediaspawn/mediaspawn/util"
)

// Type identifies the player implementation a source needs.
type Type string

const (
	HTML       Type = "html"
	YouTube    Type = "youtube"
	Vimeo      Type = "vimeo"
	SoundCloud Type = "soundcloud"
	// Module is the generic player module. Sources carrying the baseplayer marker are played by it directly.
	Module Type = "module"
)

var (
	// ErrNoSource is returned for an empty source.
	ErrNoSource = errors.New("source must be specified")

	// ErrUnsupported is returned for recognized services that have no player implementation.
	ErrUnsupported = errors.New("media type is not supported")
)

// Types returns every type Resolve can produce, supported or not.
func Types() []Type {
	return []Type{HTML, YouTube, Vimeo, SoundCloud, Module}
}

// Alternation order decides which marker wins when a source contains several.
var sourcePattern = regexp.MustCompile(`(?:https?://www\.|https?://|www\.|\.|^)(?P<marker>youtu|vimeo|soundcloud|baseplayer)`)

// Resolve determines the media type of source.
// vimeo and soundcloud are recognized and rejected with ErrUnsupported.
func Resolve(source string) (Type, error) {
	if strings.TrimSpace(source) == "" {
		return "", ErrNoSource
	}

	t := HTML
	switch util.ReGroups(sourcePattern, source)["marker"] {
	case "":
	case "youtu":
		t = YouTube
	case "vimeo":
		t = Vimeo
	case "soundcloud":
		t = SoundCloud
	case "baseplayer":
		t = Module
	}

	if !t.Supported() {
		return t, fmt.Errorf("%s: %w", t, ErrUnsupported)
	}
	return t, nil
}

// Supported reports whether a player exists for t.
func (t Type) Supported() bool {
	return t != Vimeo && t != SoundCloud
}

// NeedsImplementation reports whether t requires a type specific player script on top of the generic module.
func (t Type) NeedsImplementation() bool {
	return t != HTML && t != Module && t != ""
}

func (t Type) String() string {
	return string(t)
}
