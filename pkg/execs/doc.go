// Package execs starts the external launcher process for menu actions.
//
// A [Launcher] receives a single command line, in the form produced by
// [LauncherConfig.CommandLine]:
//
//	/C ""<executable>" <fragment> <fragment> ..."
//
// [ProcessLauncher] starts the process without waiting for it. On Windows the
// command line is handed to the configured interpreter (cmd.exe) unchanged,
// in a new console. Elsewhere the `/C` frame is unwrapped with
// [SplitCommandLine] and the executable is started directly in its own
// process group.
//
// [Recorder] is a [Launcher] that only records command lines.
package execs
