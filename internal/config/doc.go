// Package config loads folio settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. built-in defaults (Default)
//  2. a configuration file, TOML or YAML chosen by extension
//  3. FOLIO_* environment variables
//
// Environment variables map onto setting paths by section and camelCase
// name: FOLIO_EDITOR_UNDO_LIMIT sets editor.undoLimit. List values are
// given as JSON arrays.
//
// # Live Reload
//
// Watch observes the configuration file with fsnotify and delivers a
// freshly loaded Config after every change:
//
//	err := config.Watch(ctx, "folio.toml", func(cfg *config.Config, err error) {
//	    if err == nil {
//	        engine.Apply(cfg)
//	    }
//	})
package config
