package entity

import (
	"encoding/json"
	"fmt"
)

// Snapshot is an immutable copy of the game state handed to broadcasters.
//
// On the wire empty cells and an unfinished game are encoded as null:
//
//	{"board":[["X",null,null],[null,"O",null],[null,null,null]],"next":"X","winner":null}
type Snapshot struct {
	Board  Board
	Next   string
	Winner string
}

// WireSnapshot is the JSON shape of a Snapshot. Transport messages embed it.
type WireSnapshot struct {
	Board  [BoardSize][BoardSize]*string `json:"board"`
	Next   string                        `json:"next"`
	Winner *string                       `json:"winner"`
}

func (that Snapshot) Wire() WireSnapshot {
	var wire WireSnapshot

	for y, row := range that.Board {
		for x, cell := range row {
			if cell != EmptyCell {
				mark := cell
				wire.Board[y][x] = &mark
			}
		}
	}

	wire.Next = that.Next

	if that.Winner != "" {
		winner := that.Winner
		wire.Winner = &winner
	}

	return wire
}

func (that Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Wire())
}

func (that *Snapshot) UnmarshalJSON(data []byte) error {
	var wire WireSnapshot
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	var board Board
	for y, row := range wire.Board {
		for x, cell := range row {
			if cell != nil {
				board[y][x] = *cell
			}
		}
	}

	that.Board = board
	that.Next = wire.Next
	that.Winner = ""
	if wire.Winner != nil {
		that.Winner = *wire.Winner
	}

	return nil
}
