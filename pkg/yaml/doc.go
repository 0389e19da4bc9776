// Package yaml wraps [github.com/goccy/go-yaml] for reading and writing
// shellmenu configuration files.
//
// Decode and validation failures are returned as [*Error], which locates the
// problem by token or path and can render the offending source lines.
package yaml
