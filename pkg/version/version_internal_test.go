package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadRevision(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		settings []debug.BuildSetting
		ok       bool
		want     string
	}{
		"no build info": {
			want: "unknown",
		},
		"no vcs settings": {
			ok:   true,
			want: "unknown",
		},
		"clean": {
			ok: true,
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.modified", Value: "false"},
			},
			want: "0123456",
		},
		"dirty short revision": {
			ok: true,
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.modified", Value: "true"},
			},
			want: "abc-dirty",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := readRevision(func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Settings: tc.settings}, tc.ok
			})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Contains(t, String(), GoVersion)
	assert.Contains(t, String(), GoOS+"/"+GoArch)
}
