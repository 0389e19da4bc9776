// Package config loads versioned configuration files.
//
// A [Loader] decodes a file, validates it against the kind's JSON schema and
// returns the typed object with defaults applied. A [Watcher] reloads the
// file whenever it changes on disk.
package config
