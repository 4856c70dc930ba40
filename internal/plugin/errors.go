package plugin

import "errors"

// Plugin errors.
var (
	// ErrPluginNotFound is returned when no discovered plugin matches.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrNoEntryPoint is returned when a plugin directory has no script.
	ErrNoEntryPoint = errors.New("plugin has no entry point (init.lua or plugin.lua)")

	// ErrInvalidManifest is returned when plugin.json cannot be used.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrMissingName is returned when a manifest has no name.
	ErrMissingName = errors.New("manifest missing name")

	// ErrInvalidName is returned when a name has disallowed characters.
	ErrInvalidName = errors.New("invalid plugin name")

	// ErrInvalidMain is returned when the entry point is not a Lua file.
	ErrInvalidMain = errors.New("main must be a .lua file")
)
