// internal/snapshot/filestore_test.go
package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "catalog.json")
	store := NewFileStore(path)

	snap := Snapshot{
		Items:   []ItemRecord{{ID: "I1", Title: "Clean Code", Author: "Martin", Category: "Eng"}},
		Holders: []HolderRecord{{ID: "U1", Name: "Marlon"}},
		Loans:   []LoanRecord{{ItemID: "I1", HolderID: "U1"}},
	}
	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)

	// Saving again replaces the file in place.
	snap.Loans = nil
	require.NoError(t, store.Save(ctx, snap))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Loans)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}
