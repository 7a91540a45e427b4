package engine

import "github.com/rocketscienceinc/caro-backend/internal/entity"

// Candidates lists the empty cells within a Chebyshev radius of any cell
// holding seed, without duplicates. Cells are ordered by the seed scan
// (row-major), then by row offset, then by column offset.
func Candidates(board *entity.Board, seed entity.Mark, radius int) []entity.Move {
	var seen [entity.BoardSize][entity.BoardSize]bool

	moves := make([]entity.Move, 0, 16)
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if board[row][col] != seed {
				continue
			}

			for dr := -radius; dr <= radius; dr++ {
				for dc := -radius; dc <= radius; dc++ {
					r, c := row+dr, col+dc
					if !entity.InBounds(r, c) || seen[r][c] || board[r][c] != entity.Empty {
						continue
					}
					seen[r][c] = true
					moves = append(moves, entity.NewMove(r, c))
				}
			}
		}
	}

	return moves
}
