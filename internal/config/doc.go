// Package config loads keyjar settings.
//
// Settings come from three layers, lowest first:
//
//  1. Built-in defaults (Defaults)
//  2. A configuration file in TOML, YAML or JSON, with its @include files
//  3. KEYJAR_* environment variables
//
// The merged map is decoded into Settings, which converts to editor
// options:
//
//	s, err := config.Load(config.WithFile("keyjar.toml"))
//	if err != nil {
//	    return err
//	}
//	opts, err := s.EditorOptions()
//
// Keys use camelCase within their section:
//
//	[editor]
//	tab = "  "
//	indentOn = '[({\[]$'
//	catchTab = true
//	undo = "Mod+Z"
//	highlightDelay = "30ms"
//
//	[history]
//	enabled = true
//	capacity = 300
//
//	[highlight]
//	name = "rules:go"
//	script = "digits.lua"
//
//	[logging]
//	level = "info"
//	file = "keyjar.log"
package config
