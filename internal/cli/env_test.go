package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senenv/shellmenu/internal/cli"
)

//nolint:paralleltest // Sets environment variables.
func TestBindEnvVars(t *testing.T) {
	tcs := map[string]struct {
		envVars       map[string]string
		wantLogLevel  string
		wantLogFormat string
		args          []string
	}{
		"environment variables are bound when no args provided": {
			envVars: map[string]string{
				"SHELLMENU_LOG_LEVEL":  "debug",
				"SHELLMENU_LOG_FORMAT": "json",
			},
			wantLogLevel:  "debug",
			wantLogFormat: "json",
		},
		"command line args take precedence over environment variables": {
			envVars: map[string]string{
				"SHELLMENU_LOG_LEVEL":  "debug",
				"SHELLMENU_LOG_FORMAT": "json",
			},
			args:          []string{"--log-level", "error", "--log-format", "text"},
			wantLogLevel:  "error",
			wantLogFormat: "text",
		},
		"no environment variables uses defaults": {
			wantLogLevel:  "info",
			wantLogFormat: "text",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for key, val := range tc.envVars {
				t.Setenv(key, val)
			}

			cmd := cli.NewRootCmd()
			require.NoError(t, cmd.ParseFlags(tc.args))

			logLevel, err := cmd.Flags().GetString("log-level")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogLevel, logLevel)

			logFormat, err := cmd.Flags().GetString("log-format")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogFormat, logFormat)
		})
	}
}

//nolint:paralleltest // Sets environment variables.
func TestBindEnvVars_Subcommand(t *testing.T) {
	t.Setenv("SHELLMENU_BATCH", "2")
	t.Setenv("SHELLMENU_DRY_RUN", "true")
	t.Setenv("SHELLMENU_ALLOW_INVOKE", "true")

	cmd := cli.NewRootCmd()

	list, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err)
	assert.Equal(t, "2", list.Flags().Lookup("batch").Value.String())

	invoke, _, err := cmd.Find([]string{"invoke"})
	require.NoError(t, err)
	assert.Equal(t, "true", invoke.Flags().Lookup("dry-run").Value.String())

	mcp, _, err := cmd.Find([]string{"mcp"})
	require.NoError(t, err)
	assert.Equal(t, "true", mcp.Flags().Lookup("allow-invoke").Value.String())
}

func TestEnvironmentVariableUsage(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCmd()

	logLevelFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, logLevelFlag)
	assert.Contains(t, logLevelFlag.Usage, "$SHELLMENU_LOG_LEVEL")

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Contains(t, configFlag.Usage, "$SHELLMENU_CONFIG")

	writeFlag := cmd.Flags().Lookup("write-config")
	require.NotNil(t, writeFlag)
	assert.Contains(t, writeFlag.Usage, "$SHELLMENU_WRITE_CONFIG")
}
