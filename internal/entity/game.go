package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	// Spectator is the assignment of a connection that holds no role.
	Spectator = ""

	EmptyCell = ""

	OutcomeDraw = "draw"
)

const BoardSize = 3

// Board is indexed as Board[y][x].
type Board [BoardSize][BoardSize]string

// Outcome is the result of evaluating a board. Winner is PlayerX, PlayerO,
// OutcomeDraw or empty while the game is in progress.
type Outcome struct {
	Winner string
}

func InProgress() Outcome {
	return Outcome{}
}

func WonBy(role string) Outcome {
	return Outcome{Winner: role}
}

func Draw() Outcome {
	return Outcome{Winner: OutcomeDraw}
}

func (that Outcome) IsFinished() bool {
	return that.Winner != ""
}

func (that Outcome) IsDraw() bool {
	return that.Winner == OutcomeDraw
}

type Game struct {
	Board   Board
	Turn    string
	Outcome Outcome
}

func NewGame() *Game {
	return &Game{
		Turn:    PlayerX,
		Outcome: InProgress(),
	}
}

// Reset puts the game back into its initial state.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Outcome = InProgress()
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsFinished()
}

func (that *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:  that.Board,
		Next:   that.Turn,
		Winner: that.Outcome.Winner,
	}
}

func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func IsRole(mark string) bool {
	return mark == PlayerX || mark == PlayerO
}

func Opponent(role string) string {
	if role == PlayerX {
		return PlayerO
	}
	return PlayerX
}
