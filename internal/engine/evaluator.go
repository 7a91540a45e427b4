package engine

import "github.com/rocketscienceinc/caro-backend/internal/entity"

const (
	WinScore  = 100
	DrawScore = 0
)

type Outcome int

const (
	Ongoing Outcome = iota
	WonX
	WonO
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case WonX:
		return "won-x"
	case WonO:
		return "won-o"
	case Drawn:
		return "drawn"
	default:
		return "ongoing"
	}
}

// directions are the four line orientations: vertical, horizontal and both diagonals.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// CheckWin reports whether mark owns WinCondition consecutive cells in any direction.
func CheckWin(board *entity.Board, mark entity.Mark) bool {
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			for _, dir := range directions {
				if checkDirection(board, row, col, dir[0], dir[1], mark) {
					return true
				}
			}
		}
	}
	return false
}

func checkDirection(board *entity.Board, row, col, rowDir, colDir int, mark entity.Mark) bool {
	for step := 0; step < entity.WinCondition; step++ {
		r := row + rowDir*step
		c := col + colDir*step
		if !entity.InBounds(r, c) || board[r][c] != mark {
			return false
		}
	}
	return true
}

// IsDraw is true once no empty cell remains.
func IsDraw(board *entity.Board) bool {
	return board.IsFull()
}

// Evaluate scores a position from the machine's point of view.
func Evaluate(board *entity.Board, machine, human entity.Mark) int {
	if CheckWin(board, machine) {
		return WinScore
	}
	if CheckWin(board, human) {
		return -WinScore
	}
	return DrawScore
}

func Classify(board *entity.Board) Outcome {
	switch {
	case CheckWin(board, entity.MarkX):
		return WonX
	case CheckWin(board, entity.MarkO):
		return WonO
	case IsDraw(board):
		return Drawn
	default:
		return Ongoing
	}
}
