// Package expr provides CEL (Common Expression Language) environments for
// evaluating rule conditions against a single selected path.
//
// Expressions have access to the variable:
//   - `path` (string): The selected filesystem path
//
// And to the functions:
//   - pathBase(string), pathDir(string), pathExt(string)
//   - isDir(string), isFile(string): Stat-based kind checks, false on error
//   - yamlPath(file, path): Value at a YAML path in a file, or null
package expr
