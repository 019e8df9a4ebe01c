// Package version reports build metadata for the imagefilter binaries.
//
// Release builds set the values with
//
//	-ldflags "-X github.com/gogpu/imagefilter/internal/version.version=v1.0.0 ..."
//
// Fields left unset are filled from the build information the Go toolchain
// embeds (module version and VCS stamps).
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Overridden at link time.
var (
	version   = ""
	gitCommit = ""
	buildDate = ""
)

// commitLen is the number of hex digits shown for a commit.
const commitLen = 7

// Info holds the build metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the metadata of the running binary.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi, version, gitCommit, buildDate)
}

// resolve merges link-time values with bi. bi may be nil.
func resolve(bi *debug.BuildInfo, ver, commit, date string) Info {
	info := Info{
		Version:   ver,
		GitCommit: commit,
		BuildDate: date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi != nil {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}

	info.Version = orDefault(info.Version, "dev")
	info.GitCommit = orDefault(info.GitCommit, "none")
	info.BuildDate = orDefault(info.BuildDate, "unknown")
	if len(info.GitCommit) > commitLen {
		info.GitCommit = info.GitCommit[:commitLen]
	}
	return info
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// String returns a single-line description.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "imagefilter %s (commit: %s", i.Version, i.GitCommit)
	if i.Dirty {
		b.WriteString("-dirty")
	}
	fmt.Fprintf(&b, ", built: %s, %s %s)", i.BuildDate, i.GoVersion, i.Platform)
	return b.String()
}

// JSON returns the metadata as indented JSON.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling version info: %w", err)
	}
	return string(data), nil
}
