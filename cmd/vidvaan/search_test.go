// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "title\n")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title\n", string(data))
}

func TestWriteFileReportsWriteError(t *testing.T) {
	boom := errors.New("boom")
	err := writeFile(filepath.Join(t.TempDir(), "report.csv"), func(io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWriteFileReportsCloseError(t *testing.T) {
	err := writeFile(filepath.Join(t.TempDir(), "report.csv"), func(w io.Writer) error {
		return w.(*os.File).Close()
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Contains(t, err.Error(), "closing output file")
}

func TestWriteFileBadPath(t *testing.T) {
	err := writeFile(filepath.Join(t.TempDir(), "missing", "report.csv"), func(io.Writer) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output file")
}
