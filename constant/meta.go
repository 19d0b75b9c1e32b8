// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Mediaspawn is the canonical application identifier used for filesystem paths and CLI branding.
	Mediaspawn = "mediaspawn"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is sent with every remote player script request.
	UserAgent = "mediaspawn/" + Version
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = ""
	BuiltBy  = "source"
	Revision = "unknown"
)
