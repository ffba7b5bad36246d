// Package storagetest holds the behaviour every storage.Backend must share.
package storagetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viewmarks/extension/internal/storage"
)

// Run exercises a backend created by newBackend. The backend must be
// initialized and empty.
func Run(t *testing.T, newBackend func(t *testing.T) storage.Backend) {
	t.Run("load missing", func(t *testing.T) {
		b := newBackend(t)

		_, err := b.LoadDocument("nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		b := newBackend(t)
		doc := []byte(`{"SerializedData":"{\"Version\":1,\"CameraPositions\":[]}"}`)

		require.NoError(t, b.SaveDocument("campaign01", doc))

		got, err := b.LoadDocument("campaign01")
		require.NoError(t, err)
		assert.JSONEq(t, string(doc), string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		b := newBackend(t)

		require.NoError(t, b.SaveDocument("s", []byte(`{"SerializedData":"a"}`)))
		require.NoError(t, b.SaveDocument("s", []byte(`{"SerializedData":"b"}`)))

		got, err := b.LoadDocument("s")
		require.NoError(t, err)
		assert.JSONEq(t, `{"SerializedData":"b"}`, string(got))

		names, err := b.ListDocuments()
		require.NoError(t, err)
		assert.Equal(t, []string{"s"}, names)
	})

	t.Run("list sorted", func(t *testing.T) {
		b := newBackend(t)

		names, err := b.ListDocuments()
		require.NoError(t, err)
		assert.Empty(t, names)

		for _, name := range []string{"zulu", "alpha", "mike"} {
			require.NoError(t, b.SaveDocument(name, []byte(`{}`)))
		}

		names, err = b.ListDocuments()
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "mike", "zulu"}, names)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		b := newBackend(t)
		assert.Error(t, b.SaveDocument("", []byte(`{}`)))
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		b := newBackend(t)
		assert.Error(t, b.SaveDocument("bad", []byte(`{not json`)))
	})
}
