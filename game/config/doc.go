// Package config provides level catalog loading for the Green Wave game.
//
// Levels are authored as JSON files in a directory, with catalog.json naming
// the campaign order. The Manager validates every level at load time against
// the physics tuning in use and caches the result behind a read-write mutex.
// When the directory carries no catalog.json, a built-in fallback campaign is
// served instead so the server can always start.
package config
