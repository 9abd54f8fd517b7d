package replication

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// SnapshotStore is the storage backend the mirror uploads to
type SnapshotStore interface {
	Upload(ctx context.Context, key string, data []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
}

// Mirror watches for change notifications and uploads the database file to
// the snapshot store. Uploads are debounced: a burst of writes produces one
// upload after the quiet period. Mirroring is best effort and never blocks
// or fails the write that triggered it.
type Mirror struct {
	store    SnapshotStore
	path     string
	key      string
	debounce time.Duration
	logger   *zap.Logger

	changes chan struct{}
	done    chan struct{}
}

// NewMirror creates a Mirror for the database file at path
func NewMirror(store SnapshotStore, path string, debounce time.Duration, logger *zap.Logger) *Mirror {
	if debounce <= 0 {
		debounce = 5 * time.Second
	}
	return &Mirror{
		store:    store,
		path:     path,
		key:      "snapshots/" + filepath.Base(path),
		debounce: debounce,
		logger:   logger,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Notify signals that the database changed. It never blocks; coalescing
// multiple notifications into one pending upload is the point.
func (m *Mirror) Notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

// Run processes change notifications until the context is cancelled.
// A final upload is attempted on shutdown if changes are still pending.
func (m *Mirror) Run(ctx context.Context) {
	defer close(m.done)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timerC != nil {
				m.upload()
			}
			return
		case <-m.changes:
			if timer == nil {
				timer = time.NewTimer(m.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(m.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			m.upload()
		}
	}
}

// Wait blocks until Run has returned
func (m *Mirror) Wait() {
	<-m.done
}

// Restore downloads the latest snapshot and writes it to the database path.
// A missing snapshot is not an error; the store starts empty. An existing
// local file is never overwritten, local state wins over the mirror.
func (m *Mirror) Restore(ctx context.Context) error {
	if _, err := os.Stat(m.path); err == nil {
		m.logger.Info("Database file exists, skipping mirror restore", zap.String("path", m.path))
		return nil
	}

	data, err := m.store.Download(ctx, m.key)
	if err != nil {
		return err
	}
	if data == nil {
		m.logger.Info("No mirror snapshot found, starting fresh", zap.String("key", m.key))
		return nil
	}

	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return err
	}
	m.logger.Info("Restored database from mirror",
		zap.String("key", m.key),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (m *Mirror) upload() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		m.logger.Warn("Failed to read database file for mirroring", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := m.store.Upload(ctx, m.key, data); err != nil {
		m.logger.Warn("Failed to upload database snapshot", zap.Error(err))
		return
	}

	m.logger.Debug("Uploaded database snapshot",
		zap.String("key", m.key),
		zap.Int("bytes", len(data)),
	)
}
