// Package version reports the contentgen build, stamped with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/contentgen/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty"`
}

// Get returns build information, falling back to the VCS stamps the Go
// toolchain embeds when ldflags were not provided.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// String renders info on one line, e.g. "v0.3.0 (a1b2c3d, built 2026-10-01T08:00:00Z, go1.26.0)".
func (i Info) String() string {
	var extras []string
	if i.GitCommit != "" {
		commit := i.GitCommit
		if i.Dirty {
			commit += "-dirty"
		}
		extras = append(extras, commit)
	}
	if i.BuildTime != "" {
		extras = append(extras, "built "+i.BuildTime)
	}
	if i.GoVersion != "" {
		extras = append(extras, i.GoVersion)
	}
	if len(extras) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(extras, ", "))
}
