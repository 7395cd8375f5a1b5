package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/tictactoe"
)

const (
	ResetPolicyAnyone  = "anyone"
	ResetPolicyPlayers = "players"
)

var ErrUnknownResetPolicy = errors.New("unknown reset policy")

// Subscriber receives every snapshot produced by an accepted move or a reset.
// Broadcast is called on the game goroutine and must not block.
type Subscriber interface {
	Broadcast(snapshot entity.Snapshot)
}

// GameManager owns the single shared game. Mutating methods must be called
// from one goroutine at a time.
type GameManager struct {
	logger *slog.Logger

	registry    *Registry
	game        *entity.Game
	resetPolicy string

	subscribers []Subscriber
	latest      atomic.Pointer[entity.Snapshot]
}

func NewGameManager(logger *slog.Logger, registry *Registry, resetPolicy string, subscribers ...Subscriber) (*GameManager, error) {
	switch resetPolicy {
	case ResetPolicyAnyone, ResetPolicyPlayers:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResetPolicy, resetPolicy)
	}

	manager := &GameManager{
		logger:      logger.With("component", "game_manager"),
		registry:    registry,
		game:        entity.NewGame(),
		resetPolicy: resetPolicy,
		subscribers: subscribers,
	}

	snapshot := manager.game.Snapshot()
	manager.latest.Store(&snapshot)

	return manager, nil
}

// Connect - registers the session and returns its assignment.
func (that *GameManager) Connect(sessionID string) *entity.Player {
	player := that.registry.OnConnect(sessionID)

	that.logger.Info("player connected", "sessionID", sessionID, "mark", player.Mark, "connections", that.registry.Len())

	return player
}

// Disconnect - forgets the session. The turn is left as is even if it belonged to the freed role.
func (that *GameManager) Disconnect(sessionID string) {
	role := that.registry.RoleOf(sessionID)
	that.registry.OnDisconnect(sessionID)

	that.logger.Info("player disconnected", "sessionID", sessionID, "mark", role, "connections", that.registry.Len())
}

// ApplyMove - validates and applies a move for the session's role. Rejected
// moves leave the game untouched and are not broadcast.
func (that *GameManager) ApplyMove(_ context.Context, sessionID string, x, y int) (bool, error) {
	role := that.registry.RoleOf(sessionID)
	if !entity.IsRole(role) {
		return false, apperror.ErrSpectator
	}

	if err := tictactoe.MakeTurn(that.game, role, x, y); err != nil {
		return false, fmt.Errorf("failed to make turn: %w", err)
	}

	that.logger.Debug("turn accepted", "sessionID", sessionID, "mark", role, "x", x, "y", y)

	if that.game.IsFinished() {
		that.logger.Info("game finished", "winner", that.game.Outcome.Winner)
	}

	that.publish()

	return true, nil
}

// Reset - clears the board. Under ResetPolicyPlayers spectators are refused.
func (that *GameManager) Reset(_ context.Context, sessionID string) error {
	if that.resetPolicy == ResetPolicyPlayers && !entity.IsRole(that.registry.RoleOf(sessionID)) {
		return apperror.ErrResetForbidden
	}

	that.game.Reset()

	that.logger.Info("game reset", "sessionID", sessionID)

	that.publish()

	return nil
}

func (that *GameManager) Snapshot() entity.Snapshot {
	return that.game.Snapshot()
}

// CurrentState - returns the last published snapshot. Safe for concurrent use.
func (that *GameManager) CurrentState() entity.Snapshot {
	return *that.latest.Load()
}

func (that *GameManager) publish() {
	snapshot := that.game.Snapshot()
	that.latest.Store(&snapshot)

	for _, sub := range that.subscribers {
		sub.Broadcast(snapshot)
	}
}
