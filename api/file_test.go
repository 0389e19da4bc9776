package api_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senenv/shellmenu/api"
)

//nolint:paralleltest // Sets environment variables.
func TestGetConfigPath(t *testing.T) {
	t.Run("XDG_CONFIG_HOME is set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")

		assert.Equal(t,
			filepath.Join("/custom/config", "shellmenu", "config.yaml"),
			api.GetConfigPath("config.yaml"),
		)
	})

	t.Run("falls back to the user config directory", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")

		got := api.GetConfigPath("config.yaml")
		assert.Equal(t, "config.yaml", filepath.Base(got))
		assert.Equal(t, "shellmenu", filepath.Base(filepath.Dir(got)))
	})
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commands: []\n"), 0o600))

	got, err := api.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "commands: []\n", string(got))

	_, err = api.ReadFile(dir)
	require.ErrorIs(t, err, api.ErrIsDirectory)

	_, err = api.ReadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	data, err := api.MarshalYAML(struct {
		Name       string `json:"name"`
		Separators []int  `json:"separators"`
	}{Name: "Tools", Separators: []int{2}})
	require.NoError(t, err)
	assert.Equal(t, "name: Tools\nseparators:\n  - 2\n", string(data))
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		existing   string
		force      bool
		want       string
		wantBackup bool
	}{
		"new file": {
			want: "default",
		},
		"existing file without force": {
			existing: "mine",
			want:     "mine",
		},
		"existing file with force": {
			existing:   "mine",
			force:      true,
			want:       "default",
			wantBackup: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "nested")
			path := filepath.Join(dir, "config.yaml")

			if tc.existing != "" {
				require.NoError(t, os.MkdirAll(dir, 0o700))
				require.NoError(t, os.WriteFile(path, []byte(tc.existing), 0o600))
			}

			require.NoError(t, api.WriteDefaultFile(path, []byte("default"), tc.force, "configuration"))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)

			var backups []string
			for _, entry := range entries {
				if strings.HasSuffix(entry.Name(), ".old") {
					backups = append(backups, entry.Name())
				}
			}

			if !tc.wantBackup {
				assert.Empty(t, backups)

				return
			}

			require.Len(t, backups, 1)

			backup, err := os.ReadFile(filepath.Join(dir, backups[0]))
			require.NoError(t, err)
			assert.Equal(t, tc.existing, string(backup))
		})
	}

	t.Run("path is a directory", func(t *testing.T) {
		t.Parallel()

		err := api.WriteDefaultFile(t.TempDir(), []byte("default"), false, "configuration")
		require.ErrorIs(t, err, api.ErrIsDirectory)
	})
}
