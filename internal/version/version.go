// Package version reports build metadata injected with -ldflags.
package version

import "runtime/debug"

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
)

// DevVersion is reported when neither ldflags nor module info name a version.
const DevVersion = "v0.0.1-dev"

// Info is the resolved build metadata.
type Info struct {
	Version   string
	Commit    string
	GoVersion string
}

// Resolve fills unset fields from the module build info.
func Resolve() Info {
	info := Info{
		Version: Version,
		Commit:  Commit,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		if info.Commit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					info.Commit = s.Value
				}
			}
		}
	}
	if info.Version == "" {
		info.Version = DevVersion
	}
	return info
}

// String returns "version (commit)" with the commit shortened.
func String() string {
	info := Resolve()
	if info.Commit == "" {
		return info.Version
	}
	return info.Version + " (" + shortCommit(info.Commit) + ")"
}

func shortCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}
