package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type cell struct {
	x, y int
}

// WinLines lists every line in evaluation order: rows top to bottom, columns
// left to right, the main diagonal, then the anti-diagonal.
var WinLines = [8][3]cell{
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// Evaluate - computes the outcome of the board. A completed line always wins
// over a full board.
func Evaluate(board entity.Board) entity.Outcome {
	for _, line := range WinLines {
		a := board[line[0].y][line[0].x]
		b := board[line[1].y][line[1].x]
		c := board[line[2].y][line[2].x]

		if a != entity.EmptyCell && a == b && b == c {
			return entity.WonBy(a)
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

// MakeTurn - places the role's mark at (x, y), recomputes the outcome and passes the turn.
func MakeTurn(game *entity.Game, role string, x, y int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(game, role, x, y); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Board[y][x] = role
	game.Outcome = Evaluate(game.Board)
	game.Turn = entity.Opponent(role)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, role string, x, y int) error {
	if !entity.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, x, y)
	}

	if game.Turn != role {
		return apperror.ErrNotYourTurn
	}

	if game.Board[y][x] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}
