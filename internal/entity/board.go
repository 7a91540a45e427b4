package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
)

const (
	BoardSize    = 8
	WinCondition = 5
)

// Mark is the content of a single board cell.
type Mark uint8

const (
	Empty Mark = iota
	MarkX
	MarkO
)

func (m Mark) String() string {
	switch m {
	case MarkX:
		return PlayerX
	case MarkO:
		return PlayerO
	default:
		return EmptyCell
	}
}

func (m Mark) IsValid() bool {
	return m <= MarkO
}

// Opponent returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func (m Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mark) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal mark: %w", err)
	}

	mark, err := ParseMark(raw)
	if err != nil {
		return err
	}

	*m = mark

	return nil
}

func ParseMark(raw string) (Mark, error) {
	switch raw {
	case EmptyCell:
		return Empty, nil
	case PlayerX:
		return MarkX, nil
	case PlayerO:
		return MarkO, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, raw)
	}
}

// Move is a (row, column) coordinate on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// Board is the fixed 8x8 grid. It is a value type: copying a Board copies
// every cell, and two boards compare equal iff all cells match.
//
// Search code indexes the array directly; At and Set validate coordinates
// for callers at the boundary.
type Board [BoardSize][BoardSize]Mark

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func (b *Board) At(row, col int) (Mark, error) {
	if !InBounds(row, col) {
		return Empty, fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCell, row, col)
	}

	return b[row][col], nil
}

func (b *Board) Set(row, col int, mark Mark) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCell, row, col)
	}

	if !mark.IsValid() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	b[row][col] = mark

	return nil
}

func (b *Board) IsEmpty(row, col int) bool {
	return InBounds(row, col) && b[row][col] == Empty
}

func (b *Board) IsFull() bool {
	return b.CountEmpty() == 0
}

func (b *Board) CountEmpty() int {
	count := 0
	for row := range b {
		for _, cell := range b[row] {
			if cell == Empty {
				count++
			}
		}
	}
	return count
}

// Key renders the board in row-major order, one character per cell.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)

	for row := range b {
		for _, cell := range b[row] {
			switch cell {
			case MarkX:
				sb.WriteByte('X')
			case MarkO:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
	}

	return sb.String()
}

// ParseBoard builds a board from BoardSize rows written with '.', 'X' and 'O'.
func ParseBoard(rows ...string) (Board, error) {
	var board Board

	if len(rows) != BoardSize {
		return board, fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrInvalidCell, BoardSize, len(rows))
	}

	for r, line := range rows {
		if len(line) != BoardSize {
			return board, fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidCell, r, len(line))
		}

		for c := 0; c < BoardSize; c++ {
			switch line[c] {
			case '.':
				board[r][c] = Empty
			case 'X':
				board[r][c] = MarkX
			case 'O':
				board[r][c] = MarkO
			default:
				return board, fmt.Errorf("%w: %q at (%d,%d)", apperror.ErrInvalidMark, line[c], r, c)
			}
		}
	}

	return board, nil
}

// MustParseBoard is ParseBoard for fixtures; it panics on malformed input.
func MustParseBoard(rows ...string) Board {
	board, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return board
}
