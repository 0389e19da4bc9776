package selection_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senenv/shellmenu/pkg/selection"
)

func TestArgs_Paths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	paths, err := selection.Args{b, a, b}.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{b, a, b}, paths)

	paths, err = selection.Args{"relative"}.Paths()
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.True(t, filepath.IsAbs(paths[0]))

	_, err = selection.Args{a, ""}.Paths()
	require.ErrorIs(t, err, selection.ErrEmptyPath)
}

func TestReader_Paths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	in := strings.NewReader(a + "\r\n\n  " + b + "  \n")
	paths, err := selection.NewReader(in).Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths)

	paths, err = selection.NewReader(strings.NewReader("")).Paths()
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFromArgs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := selection.FromArgs([]string{selection.Stdin}, strings.NewReader(dir+"\n"))
	assert.IsType(t, &selection.Reader{}, src)

	paths, err := src.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, paths)

	src = selection.FromArgs([]string{dir}, strings.NewReader("ignored"))
	assert.IsType(t, selection.Args{}, src)

	src = selection.FromArgs(nil, nil)
	paths, err = src.Paths()
	require.NoError(t, err)
	assert.Empty(t, paths)
}
