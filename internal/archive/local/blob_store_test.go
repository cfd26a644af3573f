// Package local_test tests the local filesystem blob store.
package local_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigmv/ytingest/internal/archive/local"
)

func TestNew(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		tempDir := t.TempDir()
		store, err := local.New(local.Config{BaseDir: tempDir})
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("MissingBaseDir", func(t *testing.T) {
		_, err := local.New(local.Config{})
		assert.Error(t, err)
	})

	t.Run("BaseDirIsNotADirectory", func(t *testing.T) {
		tempFile, err := os.CreateTemp("", "testfile")
		require.NoError(t, err)
		t.Cleanup(func() {
			removeErr := os.Remove(tempFile.Name())
			if removeErr != nil && !os.IsNotExist(removeErr) {
				t.Fatalf("failed to remove temp file: %v", removeErr)
			}
		})

		_, err = local.New(local.Config{BaseDir: tempFile.Name()})
		assert.Error(t, err)
	})

	t.Run("CreatesMissingBaseDir", func(t *testing.T) {
		tempDir := t.TempDir()
		nested := filepath.Join(tempDir, "payloads")
		store, err := local.New(local.Config{BaseDir: nested})
		require.NoError(t, err)
		assert.NotNil(t, store)
		info, err := os.Stat(nested)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestPutObject(t *testing.T) {
	t.Run("WritesPayload", func(t *testing.T) {
		tempDir := t.TempDir()
		store, err := local.New(local.Config{BaseDir: tempDir})
		require.NoError(t, err)

		uri, err := store.PutObject(context.Background(), "videos/abc123.json", "application/json", bytes.NewReader([]byte(`{"items":[]}`)))
		require.NoError(t, err)
		assert.Equal(t, "file://"+filepath.Join(tempDir, "videos", "abc123.json"), uri)

		data, err := os.ReadFile(filepath.Join(tempDir, "videos", "abc123.json"))
		require.NoError(t, err)
		assert.Equal(t, `{"items":[]}`, string(data))
	})

	t.Run("EmptyPath", func(t *testing.T) {
		store, err := local.New(local.Config{BaseDir: t.TempDir()})
		require.NoError(t, err)
		_, err = store.PutObject(context.Background(), "  ", "", bytes.NewReader(nil))
		assert.Error(t, err)
	})

	t.Run("PathTraversal", func(t *testing.T) {
		store, err := local.New(local.Config{BaseDir: t.TempDir()})
		require.NoError(t, err)
		_, err = store.PutObject(context.Background(), "../escape.json", "", bytes.NewReader([]byte("x")))
		assert.ErrorContains(t, err, "path traversal")
	})
}
