// cmd/librarium/cmd/serve_test.go
package cmd

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/internal/catalog"
	"librarium/internal/snapshot"
)

// drainingServer mutates the service from its Shutdown hook, standing in for
// a request that completes while the listener drains.
type drainingServer struct {
	svc catalog.Service
}

func (s *drainingServer) Shutdown(ctx context.Context) error {
	_, err := s.svc.AddItem(ctx, "I2", "Added While Draining", "Late Author", "Eng")
	return err
}

type capturingStore struct {
	saved snapshot.Snapshot
}

func (c *capturingStore) Save(ctx context.Context, snap snapshot.Snapshot) error {
	c.saved = snap
	return nil
}

func (c *capturingStore) Load(ctx context.Context) (snapshot.Snapshot, error) {
	return snapshot.Snapshot{}, snapshot.ErrSnapshotNotFound
}

func TestDrainAndSnapshotCapturesLateMutations(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService()
	_, err := svc.AddItem(ctx, "I1", "Clean Code", "Robert C. Martin", "Eng")
	require.NoError(t, err)

	store := &capturingStore{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, drainAndSnapshot(ctx, &drainingServer{svc: svc}, svc, store, log))

	// The item added during the drain must be in the saved snapshot.
	require.Len(t, store.saved.Items, 2)
	assert.Equal(t, "I1", store.saved.Items[0].ID)
	assert.Equal(t, "I2", store.saved.Items[1].ID)
}
