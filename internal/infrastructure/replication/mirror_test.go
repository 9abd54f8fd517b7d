package replication

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Upload(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	s.uploads++
	return nil
}

func (s *fakeStore) Download(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *fakeStore) uploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads
}

func writeDBFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stationery.db")
	require.NoError(t, os.WriteFile(path, []byte("db contents"), 0600))
	return path
}

func TestMirror_UploadsAfterNotify(t *testing.T) {
	store := newFakeStore()
	path := writeDBFile(t)
	mirror := NewMirror(store, path, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go mirror.Run(ctx)

	mirror.Notify()

	require.Eventually(t, func() bool {
		return store.uploadCount() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	mirror.Wait()

	data, err := store.Download(context.Background(), "snapshots/stationery.db")
	require.NoError(t, err)
	assert.Equal(t, []byte("db contents"), data)
}

func TestMirror_DebouncesBursts(t *testing.T) {
	store := newFakeStore()
	path := writeDBFile(t)
	mirror := NewMirror(store, path, 50*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go mirror.Run(ctx)

	for i := 0; i < 20; i++ {
		mirror.Notify()
		time.Sleep(time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return store.uploadCount() >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	mirror.Wait()

	assert.LessOrEqual(t, store.uploadCount(), 2)
}

func TestMirror_Restore(t *testing.T) {
	t.Run("restores a snapshot when the local file is missing", func(t *testing.T) {
		store := newFakeStore()
		store.objects["snapshots/stationery.db"] = []byte("mirrored")
		path := filepath.Join(t.TempDir(), "stationery.db")
		mirror := NewMirror(store, path, time.Second, zap.NewNop())

		require.NoError(t, mirror.Restore(context.Background()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("mirrored"), data)
	})

	t.Run("keeps the local file when one exists", func(t *testing.T) {
		store := newFakeStore()
		store.objects["snapshots/stationery.db"] = []byte("mirrored")
		path := writeDBFile(t)
		mirror := NewMirror(store, path, time.Second, zap.NewNop())

		require.NoError(t, mirror.Restore(context.Background()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("db contents"), data)
	})

	t.Run("missing snapshot is not an error", func(t *testing.T) {
		store := newFakeStore()
		path := filepath.Join(t.TempDir(), "stationery.db")
		mirror := NewMirror(store, path, time.Second, zap.NewNop())

		require.NoError(t, mirror.Restore(context.Background()))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}
