// Package rule decides whether a configured action applies to a selected path,
// and renders the argument fragment passed to the launcher for that path.
//
// A [Rule] has three optional filters, evaluated in order and short-circuiting
// on the first failure:
//
//   - kind: the path must exist and be a directory or a regular file
//   - pattern: a regular expression that must match somewhere in the path
//   - when: a CEL expression over `path` (see package expr)
//
// A rule with no filters matches every path. Matching never returns an error;
// anything that cannot be evaluated is a non-match.
package rule
