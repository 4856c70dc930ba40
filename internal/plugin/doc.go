// Package plugin discovers highlighter plugins on disk.
//
// A plugin is either a single Lua file in a search directory, or a
// directory holding an entry script and an optional plugin.json manifest:
//
//	~/.config/keyjar/plugins/
//	├── ini.lua                 single-file plugin "ini"
//	└── toml/
//	    ├── plugin.json
//	    └── init.lua
//
// The manifest names the plugin and the languages and file extensions it
// highlights:
//
//	{
//	  "name": "toml",
//	  "version": "1.0.0",
//	  "main": "init.lua",
//	  "languages": ["toml"],
//	  "extensions": [".toml"]
//	}
//
// Directories without a manifest use init.lua, then plugin.lua. Search
// paths are scanned in order and the first plugin with a given name wins.
//
// Entry scripts follow the contract of package lua: they define a global
// highlight(text) function.
package plugin
