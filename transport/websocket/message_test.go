package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected inbound
		err      error
	}{
		{name: "move", input: `{"type":"move","x":2,"y":0}`, expected: moveRequest{X: 2, Y: 0}},
		{name: "move at origin", input: `{"type":"move","x":0,"y":0}`, expected: moveRequest{}},
		{name: "reset", input: `{"type":"reset"}`, expected: resetRequest{}},
		{name: "reset ignores extra fields", input: `{"type":"reset","x":1}`, expected: resetRequest{}},
		{name: "unknown type", input: `{"type":"chat","text":"hi"}`, err: apperror.ErrUnknownMessage},
		{name: "missing type", input: `{"x":1,"y":1}`, err: apperror.ErrUnknownMessage},
		{name: "not json", input: `move 1 1`, err: apperror.ErrMalformedMessage},
		{name: "missing y", input: `{"type":"move","x":1}`, err: apperror.ErrMalformedMessage},
		{name: "x out of range", input: `{"type":"move","x":3,"y":0}`, err: apperror.ErrInvalidCell},
		{name: "negative y", input: `{"type":"move","x":0,"y":-1}`, err: apperror.ErrMalformedMessage},
		{name: "string coordinates", input: `{"type":"move","x":"1","y":"1"}`, err: apperror.ErrMalformedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message, err := decodeMessage([]byte(tt.input))

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Nil(t, message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, message)
		})
	}
}

func TestEncodeAssign(t *testing.T) {
	t.Run("Player", func(t *testing.T) {
		data, err := encodeAssign(&entity.Player{ID: "s1", Mark: entity.PlayerO})

		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"assign","player":"O"}`, string(data))
	})

	t.Run("Spectator", func(t *testing.T) {
		data, err := encodeAssign(&entity.Player{ID: "s3"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"assign","player":null}`, string(data))
	})
}

func TestEncodeUpdate(t *testing.T) {
	snapshot := entity.Snapshot{
		Board:  entity.Board{{entity.PlayerX}, {"", entity.PlayerO}},
		Next:   entity.PlayerX,
		Winner: entity.OutcomeDraw,
	}

	data, err := encodeUpdate(snapshot)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "update",
		"board": [["X",null,null],[null,"O",null],[null,null,null]],
		"next": "X",
		"winner": "draw"
	}`, string(data))
}
