// Package command builds the menu commands a host shell displays for a
// selection of paths.
//
// There are three kinds of [Command]:
//
//   - [*Action] runs the launcher for a single [rule.Rule]. It implements
//     [Invoker].
//   - [*Group] collects actions under one entry, with separators between
//     them. It implements [Enumerable]; the host lists its children with an
//     [*Enumerator] and never invokes the group itself.
//   - [Separator] is a visual divider inside a group.
//
// Commands are built once from a [Config] and are read-only afterwards, so
// they may be shared between goroutines. Enumerators are not; each caller
// gets its own from [Group.Enumerate].
package command
