package websocket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type gameManager interface {
	Connect(sessionID string) *entity.Player
	Disconnect(sessionID string)
	ApplyMove(ctx context.Context, sessionID string, x, y int) (bool, error)
	Reset(ctx context.Context, sessionID string) error
	Snapshot() entity.Snapshot
}

// Router turns decoded client messages into game operations.
type Router struct {
	logger  *slog.Logger
	manager gameManager
}

func NewRouter(logger *slog.Logger, manager gameManager) *Router {
	return &Router{
		logger:  logger.With("component", "router"),
		manager: manager,
	}
}

// Route - decodes and dispatches one frame from sessionID. A returned error
// means the frame was dropped; nothing is ever sent back to the client.
func (that *Router) Route(ctx context.Context, sessionID string, data []byte) error {
	message, err := decodeMessage(data)
	if err != nil {
		return err
	}

	switch msg := message.(type) {
	case moveRequest:
		if _, err = that.manager.ApplyMove(ctx, sessionID, msg.X, msg.Y); err != nil {
			return fmt.Errorf("move rejected: %w", err)
		}
	case resetRequest:
		if err = that.manager.Reset(ctx, sessionID); err != nil {
			return fmt.Errorf("reset rejected: %w", err)
		}
	}

	return nil
}
