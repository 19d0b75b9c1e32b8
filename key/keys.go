// Package key defines the configuration identifiers shared by config, cmd and the runtime packages.
package key

// Spawner - lifecycle and dependency loading of spawned players.
const (
	SpawnerPollInterval  = "spawner.poll_interval"
	SpawnerLoadTimeout   = "spawner.load_timeout"
	SpawnerDefaultWidth  = "spawner.default_width"
	SpawnerDefaultHeight = "spawner.default_height"
)

// Player implementations.
const (
	PlayersModuleURL   = "players.module_url"
	PlayersURLTemplate = "players.url_template"
	PlayerBackend      = "player.backend"
)

// Script fetching.
const (
	FetchCacheTTL       = "fetch.cache_ttl"
	FetchTLSFingerprint = "fetch.tls_fingerprint"
)

// Timeline host.
const (
	TimelineTick = "timeline.tick"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	IconsVariant    = "icons.variant"
)
