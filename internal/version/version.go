// Package version reports the build's version, commit and date.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the version of a build.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get returns the current build's Info.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String renders "v1.2.3 (abc1234, 2024-06-10T08:00:00Z)".
func (i Info) String() string {
	return fmt.Sprintf("%s (%s, %s)", i.Version, i.Commit, i.Date)
}

func Full() string {
	return Get().String()
}

func Short() string {
	return Version
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		backfill(info)
	}
}

// backfill fills Version, Commit and Date from build info wherever the
// ldflags defaults are still in place, so `go install` builds report a
// real version.
func backfill(info *debug.BuildInfo) {
	if info == nil {
		return
	}

	// Untagged builds report "(devel)"; keep "dev" for those.
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && s.Value != "" {
				Commit = s.Value[:min(len(s.Value), 7)]
			}
		case "vcs.time":
			if Date == "unknown" && s.Value != "" {
				Date = s.Value
			}
		}
	}
}
