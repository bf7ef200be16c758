package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// Set at build time using -ldflags.
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running build.
type Info struct {
	Version   string    `yaml:"version"`
	GitCommit string    `yaml:"git_commit,omitempty"`
	GoVersion string    `yaml:"go_version"`
	BuildDate time.Time `yaml:"build_date,omitempty"`
	IsDirty   bool      `yaml:"is_dirty,omitempty"`
}

// IsRelease reports whether the build carries a release version.
func (i *Info) IsRelease() bool {
	return i.Version != "dev" && !i.IsDirty
}

// Short returns version-commit, marked dirty when the tree was modified.
func (i *Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	s := i.Version + "-" + i.GitCommit
	if i.IsDirty {
		s += "-dirty"
	}
	return s
}

func (i *Info) String() string {
	s := fmt.Sprintf("breedrun %s (%s)", i.Short(), i.GoVersion)
	if !i.BuildDate.IsZero() {
		s += " built " + i.BuildDate.UTC().Format(time.RFC3339)
	}
	return s
}

// Get collects the link-time variables and falls back to the module build
// info for anything left unset.
func Get() *Info {
	info := &Info{Version: Version, GitCommit: GitCommit}
	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = shorten(s.Value)
			}
		case "vcs.time":
			if info.BuildDate.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildDate = t
				}
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		}
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	return info
}

func shorten(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
