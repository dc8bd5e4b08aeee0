package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevision(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		read func() (*debug.BuildInfo, bool)
		want string
	}{
		"no build info": {
			read: func() (*debug.BuildInfo, bool) { return nil, false },
			want: "unknown",
		},
		"no vcs settings": {
			read: func() (*debug.BuildInfo, bool) { return &debug.BuildInfo{}, true },
			want: "unknown",
		},
		"clean tree": {
			read: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.modified", Value: "false"},
				}}, true
			},
			want: "abc123",
		},
		"dirty tree": {
			read: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Settings: []debug.BuildSetting{
					{Key: "vcs.modified", Value: "true"},
					{Key: "vcs.revision", Value: "abc123"},
				}}, true
			},
			want: "abc123-dirty",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, revision(tc.read))
		})
	}
}

func TestInfo_String(t *testing.T) {
	t.Parallel()

	i := Info{
		Version:   "v1.2.3",
		Revision:  "abc123",
		GoVersion: "go1.25.0",
		Platform:  "linux/amd64",
		BuildDate: "2026-10-19",
		BuildUser: "ci",
	}

	assert.Equal(t, "v1.2.3 (revision abc123, go1.25.0, linux/amd64) built 2026-10-19 by ci", i.String())
}
