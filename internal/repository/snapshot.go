package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot entity.Snapshot) error
	Get(ctx context.Context) (*entity.Snapshot, error)
}

type dbSnapshot struct {
	client *redis.Client
	prefix string
}

func NewSnapshotRepository(client *redis.Client, prefix string) SnapshotRepository {
	return &dbSnapshot{
		client: client,
		prefix: prefix,
	}
}

func StateKey(prefix string) string {
	return prefix + ":state"
}

func UpdatesChannel(prefix string) string {
	return prefix + ":updates"
}

// Save - stores the snapshot under <prefix>:state and publishes it on <prefix>:updates.
func (that *dbSnapshot) Save(ctx context.Context, snapshot entity.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, StateKey(that.prefix), snapshotJSON, 0)
		pipe.Publish(ctx, UpdatesChannel(that.prefix), snapshotJSON)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (that *dbSnapshot) Get(ctx context.Context) (*entity.Snapshot, error) {
	response, err := that.client.Get(ctx, StateKey(that.prefix)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
