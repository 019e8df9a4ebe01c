package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GitCommit)
	assert.LessOrEqual(t, len(info.GitCommit), commitLen)
	assert.NotEmpty(t, info.BuildDate)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestResolve(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name       string
		bi         *debug.BuildInfo
		ver        string
		commit     string
		date       string
		wantVer    string
		wantCommit string
		wantDate   string
		wantDirty  bool
	}{
		{
			name:       "no build info",
			wantVer:    "dev",
			wantCommit: "none",
			wantDate:   "unknown",
		},
		{
			name:       "devel module",
			bi:         &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVer:    "dev",
			wantCommit: "none",
			wantDate:   "unknown",
		},
		{
			name:       "from build info",
			bi:         stamped,
			wantVer:    "v0.4.0",
			wantCommit: "0123456",
			wantDate:   "2026-03-01T10:00:00Z",
			wantDirty:  true,
		},
		{
			name:       "ldflags win",
			bi:         stamped,
			ver:        "v1.0.0",
			commit:     "fedcba9876",
			date:       "2026-04-01",
			wantVer:    "v1.0.0",
			wantCommit: "fedcba9",
			wantDate:   "2026-04-01",
			wantDirty:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := resolve(tt.bi, tt.ver, tt.commit, tt.date)
			assert.Equal(t, tt.wantVer, info.Version)
			assert.Equal(t, tt.wantCommit, info.GitCommit)
			assert.Equal(t, tt.wantDate, info.BuildDate)
			assert.Equal(t, tt.wantDirty, info.Dirty)
		})
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "v1.2.3", GitCommit: "abc1234", BuildDate: "2026-01-02", GoVersion: "go1.25.0", Platform: "linux/amd64"}
	assert.Equal(t, "imagefilter v1.2.3 (commit: abc1234, built: 2026-01-02, go1.25.0 linux/amd64)", info.String())

	info.Dirty = true
	assert.Contains(t, info.String(), "commit: abc1234-dirty,")
}

func TestInfoJSON(t *testing.T) {
	info := Get()

	s, err := info.JSON()
	require.NoError(t, err)

	var parsed Info
	require.NoError(t, json.Unmarshal([]byte(s), &parsed))
	assert.Equal(t, info, parsed)
}
