package configs_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senenv/shellmenu/api/v1beta1"
	"github.com/senenv/shellmenu/api/v1beta1/configs"
	"github.com/senenv/shellmenu/pkg/keys"
	"github.com/senenv/shellmenu/pkg/yaml"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := configs.New()

	assert.Equal(t, v1beta1.APIVersion, cfg.GetAPIVersion())
	assert.Equal(t, configs.Kind, cfg.GetKind())
	require.NotNil(t, cfg.Menu)
	assert.NotNil(t, cfg.Menu.Launcher)
	assert.Len(t, cfg.Menu.Commands, 2)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := configs.New()
	cfg.Kind = "Menu"
	require.ErrorIs(t, cfg.Validate(), v1beta1.ErrUnsupportedKind)

	cfg = configs.New()
	cfg.APIVersion = "v1"
	require.ErrorIs(t, cfg.Validate(), v1beta1.ErrUnsupportedAPIVersion)

	cfg = configs.New()
	cfg.KeyBinds.Quit.Keys = []keys.Key{keys.New("k")}
	require.ErrorIs(t, cfg.Validate(), keys.ErrDuplicateKey)
}

func TestDefaultYAML(t *testing.T) {
	t.Parallel()

	var data any

	err := yaml.NewDecoder(bytes.NewReader(configs.DefaultYAML())).Decode(&data)
	require.NoError(t, err)
	require.NoError(t, configs.DefaultValidator.Validate(data))

	cfg := &configs.Config{}
	err = yaml.NewDecoder(bytes.NewReader(configs.DefaultYAML())).Decode(cfg)
	require.NoError(t, err)

	cfg.EnsureDefaults()
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Menu.Commands, 2)

	group := cfg.Menu.Commands[0].Group
	require.NotNil(t, group)
	assert.Equal(t, "Sen.Environment", group.Name)
	assert.Equal(t, []int{2}, group.Separators)
	require.Len(t, group.Children, 4)
	require.NotNil(t, group.Children[0].Method)
	assert.Equal(t, "popcap.rton.decode", *group.Children[0].Method)
	assert.Equal(t, "{}", group.Children[0].Argument)
}

func TestDefaultValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data    string
		wantErr bool
	}{
		"minimal": {
			data: "apiVersion: shellmenu.senenv.dev/v1beta1\nkind: Configuration\n",
		},
		"wrong kind": {
			data:    "apiVersion: shellmenu.senenv.dev/v1beta1\nkind: Menu\n",
			wantErr: true,
		},
		"entry with action and group": {
			data: `apiVersion: shellmenu.senenv.dev/v1beta1
kind: Configuration
commands:
  - action: {name: Run, argument: "{}"}
    group: {name: Tools}
`,
			wantErr: true,
		},
		"key binds": {
			data: `apiVersion: shellmenu.senenv.dev/v1beta1
kind: Configuration
keyBinds:
  select:
    keys: [{code: tab}, {code: enter, alias: "↵"}]
`,
		},
		"key without code": {
			data: `apiVersion: shellmenu.senenv.dev/v1beta1
kind: Configuration
keyBinds:
  quit:
    keys: [{alias: x}]
`,
			wantErr: true,
		},
		"unknown field": {
			data: `apiVersion: shellmenu.senenv.dev/v1beta1
kind: Configuration
commands:
  - action: {name: Run, argument: "{}", regex: x}
`,
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var data any
			require.NoError(t, yaml.NewDecoder(bytes.NewReader([]byte(tc.data))).Decode(&data))

			err := configs.DefaultValidator.Validate(data)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "shellmenu", "config.yaml")

	require.NoError(t, configs.WriteDefault(path, false))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configs.DefaultYAML(), got)
}

func TestConfig_MarshalYAML(t *testing.T) {
	t.Parallel()

	b, err := configs.New().MarshalYAML()
	require.NoError(t, err)

	assert.Contains(t, string(b), "apiVersion: shellmenu.senenv.dev/v1beta1")
	assert.Contains(t, string(b), "name: Sen.Environment")
	assert.Contains(t, string(b), "interpreterFlag: /C")
	assert.Contains(t, string(b), "keyBinds:")
}
