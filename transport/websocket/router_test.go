package websocket

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type mockGameManager struct {
	mock.Mock
}

func (that *mockGameManager) Connect(sessionID string) *entity.Player {
	args := that.Called(sessionID)
	return args.Get(0).(*entity.Player)
}

func (that *mockGameManager) Disconnect(sessionID string) {
	that.Called(sessionID)
}

func (that *mockGameManager) ApplyMove(ctx context.Context, sessionID string, x, y int) (bool, error) {
	args := that.Called(ctx, sessionID, x, y)
	return args.Bool(0), args.Error(1)
}

func (that *mockGameManager) Reset(ctx context.Context, sessionID string) error {
	args := that.Called(ctx, sessionID)
	return args.Error(0)
}

func (that *mockGameManager) Snapshot() entity.Snapshot {
	args := that.Called()
	return args.Get(0).(entity.Snapshot)
}

func newTestRouter() (*Router, *mockGameManager) {
	manager := &mockGameManager{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(logger, manager), manager
}

func TestRouter_Route(t *testing.T) {
	ctx := context.Background()

	t.Run("Move is applied for the sender", func(t *testing.T) {
		router, manager := newTestRouter()
		manager.On("ApplyMove", ctx, "s1", 2, 1).Return(true, nil).Once()

		err := router.Route(ctx, "s1", []byte(`{"type":"move","x":2,"y":1}`))

		require.NoError(t, err)
		manager.AssertExpectations(t)
	})

	t.Run("Rejected move is reported", func(t *testing.T) {
		router, manager := newTestRouter()
		manager.On("ApplyMove", ctx, "s2", 0, 0).Return(false, apperror.ErrNotYourTurn).Once()

		err := router.Route(ctx, "s2", []byte(`{"type":"move","x":0,"y":0}`))

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		manager.AssertExpectations(t)
	})

	t.Run("Reset is applied for the sender", func(t *testing.T) {
		router, manager := newTestRouter()
		manager.On("Reset", ctx, "s3").Return(nil).Once()

		err := router.Route(ctx, "s3", []byte(`{"type":"reset"}`))

		require.NoError(t, err)
		manager.AssertExpectations(t)
	})

	t.Run("Forbidden reset is reported", func(t *testing.T) {
		router, manager := newTestRouter()
		manager.On("Reset", ctx, "s3").Return(apperror.ErrResetForbidden).Once()

		err := router.Route(ctx, "s3", []byte(`{"type":"reset"}`))

		require.ErrorIs(t, err, apperror.ErrResetForbidden)
	})

	t.Run("Unknown and malformed messages never reach the game", func(t *testing.T) {
		router, manager := newTestRouter()

		require.ErrorIs(t, router.Route(ctx, "s1", []byte(`{"type":"undo"}`)), apperror.ErrUnknownMessage)
		require.ErrorIs(t, router.Route(ctx, "s1", []byte(`{"type":"move","x":9,"y":9}`)), apperror.ErrMalformedMessage)
		require.ErrorIs(t, router.Route(ctx, "s1", []byte(`{`)), apperror.ErrMalformedMessage)

		manager.AssertNotCalled(t, "ApplyMove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		manager.AssertNotCalled(t, "Reset", mock.Anything, mock.Anything)
	})
}
