package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rom = []byte{0x00, 0xC3, 0x50, 0x01, 0xCE, 0xED, 0x66, 0x66}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		data, err := LoadFile(writeFile(t, "game.gb", rom))
		require.NoError(t, err)
		assert.Equal(t, rom, data)
	})

	t.Run("gzip", func(t *testing.T) {
		var b bytes.Buffer
		w := gzip.NewWriter(&b)
		_, err := w.Write(rom)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := LoadFile(writeFile(t, "game.gb.gz", b.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, rom, data)
	})

	t.Run("zip", func(t *testing.T) {
		var b bytes.Buffer
		w := zip.NewWriter(&b)
		f, err := w.Create("game.gb")
		require.NoError(t, err)
		_, err = f.Write(rom)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := LoadFile(writeFile(t, "game.ZIP", b.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, rom, data)
	})

	t.Run("empty zip", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, zip.NewWriter(&b).Close())

		_, err := LoadFile(writeFile(t, "empty.zip", b.Bytes()))
		assert.True(t, errors.Is(err, ErrEmptyArchive))
	})

	t.Run("corrupt 7z", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "game.7z", rom))
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.gb"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}
