package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const saveTimeout = 2 * time.Second

// SnapshotMirror copies published snapshots to a SnapshotRepository off the
// caller's goroutine. When the queue is full the oldest queued snapshot is
// dropped, so the latest state always reaches the repository.
type SnapshotMirror struct {
	logger *slog.Logger
	repo   SnapshotRepository
	queue  chan entity.Snapshot
}

func NewSnapshotMirror(logger *slog.Logger, repo SnapshotRepository, queueSize int) *SnapshotMirror {
	return &SnapshotMirror{
		logger: logger.With("component", "snapshot_mirror"),
		repo:   repo,
		queue:  make(chan entity.Snapshot, queueSize),
	}
}

// Broadcast - never blocks. Expects a single caller, the game goroutine.
func (that *SnapshotMirror) Broadcast(snapshot entity.Snapshot) {
	for {
		select {
		case that.queue <- snapshot:
			return
		default:
		}

		select {
		case <-that.queue:
			that.logger.Warn("mirror queue is full, oldest snapshot dropped")
		default:
		}
	}
}

// Run - saves queued snapshots until ctx is done.
func (that *SnapshotMirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-that.queue:
			that.save(ctx, snapshot)
		}
	}
}

func (that *SnapshotMirror) save(ctx context.Context, snapshot entity.Snapshot) {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	if err := that.repo.Save(ctx, snapshot); err != nil {
		that.logger.Warn("failed to mirror snapshot", "error", err)
	}
}
