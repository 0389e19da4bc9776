// Package api contains file helpers shared by the versioned configuration
// packages.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/senenv/shellmenu/pkg/yaml"
)

// AppName names the directory that holds shellmenu's configuration.
const AppName = "shellmenu"

var (
	ErrIsDirectory  = errors.New("path is a directory")
	ErrUnknownState = errors.New("unknown file state")
)

// GetConfigPath returns the path of filename in the user's configuration
// directory. $XDG_CONFIG_HOME is used when set, then the platform config
// directory ([os.UserConfigDir]), then a directory under [os.TempDir].
func GetConfigPath(filename string) string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, AppName, filename)
	}

	cfgDir, err := os.UserConfigDir()
	if err == nil && cfgDir != "" {
		return filepath.Join(cfgDir, AppName, filename)
	}

	tmpPath := filepath.Join(os.TempDir(), AppName, filename)

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("err", err),
	)

	return tmpPath
}

// ReadFile reads the regular file at path.
func ReadFile(path string) ([]byte, error) {
	err := checkRegular(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is user configuration.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// MarshalYAML encodes obj as a single YAML document.
func MarshalYAML(obj any) ([]byte, error) {
	b := &bytes.Buffer{}

	enc := yaml.NewEncoder(b)

	err := enc.Encode(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("close yaml encoder: %w", err)
	}

	return b.Bytes(), nil
}

// WriteDefaultFile writes data to path unless a file is already there. With
// force, an existing file is renamed to "<name>.<unixnano>.old" first.
// Missing parent directories are created.
func WriteDefaultFile(path string, data []byte, force bool, kind string) error {
	err := checkRegular(path)

	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if exists && !force {
		slog.Debug("file already exists, skipping write",
			slog.String("type", kind),
			slog.String("path", path),
		)

		return nil
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if exists {
		backupPath := fmt.Sprintf("%s.%d.old", path, time.Now().UnixNano())
		slog.Info("backing up existing file",
			slog.String("type", kind),
			slog.String("path", backupPath),
		)

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("back up %s file: %w", kind, err)
		}
	}

	slog.Info("write default file",
		slog.String("type", kind),
		slog.String("path", path),
	)

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("write %s file: %w", kind, err)
	}

	return nil
}

func checkRegular(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrUnknownState)
	}

	return nil
}
