package constant

import "time"

// Player script locations. The builtin scheme resolves to scripts embedded in the binary.
const (
	BuiltinScheme = "builtin:"

	ModuleScriptURL     = BuiltinScheme + "player"
	PlayerScriptPattern = BuiltinScheme + "%s"

	// Locations the Popcorn.js plugin fetched from, shown in config descriptions.
	RemoteModuleScriptURL     = "http://popcornjs.org/code/modules/player/popcorn.player.js"
	RemotePlayerScriptPattern = "http://popcornjs.org/code/players/%[1]s/popcorn.%[1]s.js"
)

// Spawner defaults.
const (
	PollInterval   = 300 * time.Millisecond
	LoadTimeout    = 30 * time.Second
	FallbackWidth  = 400
	FallbackHeight = 200

	// ContainerPrefix prefixes every generated wrapper container id.
	ContainerPrefix = "mediaSpawnerdiv-"
)

// Lua globals a player script may use.
const (
	DefineFn   = "define"
	PlayFn     = "play"
	PauseFn    = "pause"
	DestroyFn  = "destroy"
	BuildFn    = "build"
	SupportsFn = "supports"
)
