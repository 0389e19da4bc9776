package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senenv/shellmenu/api/v1beta1/configs"
	"github.com/senenv/shellmenu/pkg/config"
)

func loadMenu(ctx context.Context, path string) (*configs.Config, error) {
	return config.LoadFile(ctx, path, configs.New, configs.DefaultValidator)
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, validConfig)

	w, err := config.NewWatcher(path, loadMenu, config.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx)
	}()

	// Let the watcher settle before changing the file.
	time.Sleep(50 * time.Millisecond)

	updated := validConfig + `  - action:
      name: Another
      argument: "{}"
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case u := <-w.Updates():
		require.NoError(t, u.Err)
		assert.Len(t, u.Config.Menu.Commands, 3)
	case <-time.After(5 * time.Second):
		t.Fatal("no update received")
	}

	require.NoError(t, os.WriteFile(path, []byte("kind: [\n"), 0o600))

	select {
	case u := <-w.Updates():
		require.Error(t, u.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("no update received")
	}

	cancel()
	require.NoError(t, <-done)

	_, ok := <-w.Updates()
	assert.False(t, ok)

	require.ErrorIs(t, w.Run(t.Context()), config.ErrWatcherStarted)
	require.NoError(t, w.Close())
}

func TestWatcher_Close(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	w, err := config.NewWatcher(path, loadMenu)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	require.ErrorIs(t, w.Run(t.Context()), config.ErrWatcherClosed)

	_, ok := <-w.Updates()
	assert.False(t, ok)
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := config.NewWatcher(filepath.Join(t.TempDir(), "missing", "config.yaml"), loadMenu)
	require.Error(t, err)
}
