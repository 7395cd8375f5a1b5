package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	typeAssign = "assign"
	typeUpdate = "update"
	typeMove   = "move"
	typeReset  = "reset"
)

// inbound is one of moveRequest or resetRequest.
type inbound interface {
	inbound()
}

type moveRequest struct {
	X int
	Y int
}

type resetRequest struct{}

func (moveRequest) inbound()  {}
func (resetRequest) inbound() {}

type envelope struct {
	Type string `json:"type"`
}

type movePayload struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type assignMessage struct {
	Type   string  `json:"type"`
	Player *string `json:"player"`
}

type updateMessage struct {
	Type string `json:"type"`
	entity.WireSnapshot
}

// decodeMessage - parses a client frame. Unknown types yield apperror.ErrUnknownMessage,
// everything else that can't be used yields apperror.ErrMalformedMessage.
func decodeMessage(data []byte) (inbound, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
	}

	switch env.Type {
	case typeMove:
		move, err := decodeMove(data)
		if err != nil {
			return nil, err
		}

		return move, nil
	case typeReset:
		return resetRequest{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMessage, env.Type)
	}
}

func decodeMove(data []byte) (moveRequest, error) {
	var payload movePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return moveRequest{}, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
	}

	if payload.X == nil || payload.Y == nil {
		return moveRequest{}, fmt.Errorf("%w: move requires x and y", apperror.ErrMalformedMessage)
	}

	if !entity.InBounds(*payload.X, *payload.Y) {
		return moveRequest{}, fmt.Errorf("%w: %w: (%d, %d)", apperror.ErrMalformedMessage, apperror.ErrInvalidCell, *payload.X, *payload.Y)
	}

	return moveRequest{X: *payload.X, Y: *payload.Y}, nil
}

func encodeAssign(player *entity.Player) ([]byte, error) {
	message := assignMessage{Type: typeAssign}
	if !player.IsSpectator() {
		mark := player.Mark
		message.Player = &mark
	}

	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assign message: %w", err)
	}

	return data, nil
}

func encodeUpdate(snapshot entity.Snapshot) ([]byte, error) {
	data, err := json.Marshal(updateMessage{Type: typeUpdate, WireSnapshot: snapshot.Wire()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update message: %w", err)
	}

	return data, nil
}
