// Package version reports build information for shellmenu.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	BuildDate string // Set via ldflags.

	Revision  = readRevision(debug.ReadBuildInfo)
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// String returns the one-line version shown by --version.
func String() string {
	s := fmt.Sprintf("%s (%s, %s/%s)", GetVersion(), GoVersion, GoOS, GoArch)
	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}

// readRevision returns the short VCS revision, suffixed with "-dirty" for a
// modified tree.
func readRevision(read func() (*debug.BuildInfo, bool)) string {
	const shortLen = 7

	buildInfo, ok := read()
	if !ok {
		return "unknown"
	}

	var (
		rev      = "unknown"
		modified bool
	)

	for _, s := range buildInfo.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value[:min(len(s.Value), shortLen)]
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
