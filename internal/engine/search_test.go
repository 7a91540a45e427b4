package engine

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exhaustive is minimax over the same candidates and depth, without
// pruning or memoization.
func exhaustive(s *Searcher, board *entity.Board, depth int, maximizing bool) int {
	score := Evaluate(board, s.Machine, s.Human)
	if score == WinScore || score == -WinScore || IsDraw(board) || depth >= s.MaxDepth {
		return score - depth
	}

	moves := Candidates(board, s.Human, s.Radius)
	if len(moves) == 0 {
		return score - depth
	}

	mark, best := s.Human, MaxScore
	if maximizing {
		mark, best = s.Machine, MinScore
	}

	for _, move := range moves {
		board[move.Row][move.Col] = mark
		value := exhaustive(s, board, depth+1, !maximizing)
		board[move.Row][move.Col] = entity.Empty

		if maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}

	return best
}

func midgame() entity.Board {
	return entity.MustParseBoard(
		"........",
		"........",
		"...XO...",
		"...XX...",
		"....O...",
		"........",
		"........",
		"........",
	)
}

func TestFindBestMove_RestoresBoard(t *testing.T) {
	// Given: a position in the middle of a game
	board := midgame()
	before := board

	// When: the machine searches it
	_, err := NewSearcher(3, 1).FindBestMove(context.Background(), &board)

	// Then: every tentative placement has been undone
	require.NoError(t, err)
	assert.Equal(t, before, board)
	assert.Equal(t, before.Key(), board.Key())
}

func TestFindBestMove_IsDeterministic(t *testing.T) {
	board := midgame()
	searcher := NewSearcher(3, 1)

	first, err := searcher.FindBestMove(context.Background(), &board)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := searcher.FindBestMove(context.Background(), &board)
		require.NoError(t, err)

		assert.Equal(t, first.Move, again.Move)
		assert.Equal(t, first.Score, again.Score)
	}
}

func TestFindBestMove_MatchesExhaustiveMinimax(t *testing.T) {
	boards := map[string]entity.Board{
		"midgame": midgame(),
		"open three": entity.MustParseBoard(
			"........",
			"........",
			"..XXX...",
			"...O....",
			"....O...",
			"........",
			"........",
			"........",
		),
		"edge": entity.MustParseBoard(
			"XO......",
			"X.......",
			"XO......",
			"O.......",
			"........",
			"........",
			"........",
			"........",
		),
	}

	for name, board := range boards {
		t.Run(name, func(t *testing.T) {
			searcher := NewSearcher(3, 1)

			// When: the pruned, memoized search picks a move
			decision, err := searcher.FindBestMove(context.Background(), &board)
			require.NoError(t, err)

			// Then: its score equals the best exhaustive score over the same root moves
			want := MinScore
			var wantMove entity.Move
			for _, move := range Candidates(&board, searcher.Human, searcher.Radius) {
				board[move.Row][move.Col] = searcher.Machine
				score := exhaustive(searcher, &board, 0, false)
				board[move.Row][move.Col] = entity.Empty

				if score > want {
					want, wantMove = score, move
				}
			}

			assert.Equal(t, want, decision.Score)
			assert.Equal(t, wantMove, decision.Move)
		})
	}
}

func TestFindBestMove_TakesImmediateWin(t *testing.T) {
	// Given: O has four in a row and (5,4) completes it
	board := entity.MustParseBoard(
		"........",
		"........",
		"........",
		"....X...",
		"X...X...",
		"OOOO....",
		"X..X....",
		"........",
	)

	decision, err := NewSearcher(3, 1).FindBestMove(context.Background(), &board)

	require.NoError(t, err)
	assert.Equal(t, entity.NewMove(5, 4), decision.Move)
	assert.Equal(t, WinScore, decision.Score)
}

func TestFindBestMove_BlocksFive(t *testing.T) {
	// Given: X threatens to complete row 3 at (3,7)
	board := entity.MustParseBoard(
		"........",
		"........",
		"........",
		"..OXXXX.",
		"........",
		".....O..",
		"........",
		"........",
	)

	decision, err := NewSearcher(2, 1).FindBestMove(context.Background(), &board)

	require.NoError(t, err)
	assert.Equal(t, entity.NewMove(3, 7), decision.Move)
	assert.Greater(t, decision.Score, -WinScore)
}

func TestFindBestMove_EdgeCases(t *testing.T) {
	t.Run("Empty board plays the opening move", func(t *testing.T) {
		var board entity.Board

		decision, err := NewSearcher(3, 1).FindBestMove(context.Background(), &board)

		require.NoError(t, err)
		assert.Equal(t, OpeningMove, decision.Move)
	})

	t.Run("No frontier around X returns ErrNoCandidates", func(t *testing.T) {
		// Given: only O marks on the board
		var board entity.Board
		board[4][4] = entity.MarkO

		_, err := NewSearcher(3, 1).FindBestMove(context.Background(), &board)

		require.ErrorIs(t, err, ErrNoCandidates)
	})

	t.Run("Cancelled context stops the search", func(t *testing.T) {
		board := midgame()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewSearcher(3, 1).FindBestMove(ctx, &board)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, midgame(), board)
	})
}

func TestFindBestMove_InnerNodeWithoutFrontierIsALeaf(t *testing.T) {
	// Given: X boxed into the corner with (1,1) as its only open neighbour
	board := entity.MustParseBoard(
		"XO......",
		"O.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	before := board

	// When: the machine fills (1,1), X is left with no candidate moves
	decision, err := NewSearcher(3, 1).FindBestMove(context.Background(), &board)

	// Then: that node scores as a leaf at depth 0, not as a window bound
	require.NoError(t, err)
	assert.Equal(t, entity.NewMove(1, 1), decision.Move)
	assert.Equal(t, DrawScore, decision.Score)
	assert.Equal(t, 1, decision.Nodes)
	assert.Equal(t, before, board)
}

func TestNewSearcher_Defaults(t *testing.T) {
	searcher := NewSearcher(0, 0)

	assert.Equal(t, DefaultMaxDepth, searcher.MaxDepth)
	assert.Equal(t, DefaultRadius, searcher.Radius)
	assert.Equal(t, entity.MarkO, searcher.Machine)
	assert.Equal(t, entity.MarkX, searcher.Human)
}

func TestTranspositions(t *testing.T) {
	var board entity.Board
	key := cacheKey{board: board, remaining: 2}

	t.Run("Exact entries are returned as is", func(t *testing.T) {
		cache := newTranspositions()
		cache.store(key, 5, MinScore, MaxScore)

		score, _, _, ok := cache.probe(key, -10, 10)

		require.True(t, ok)
		assert.Equal(t, 5, score)
	})

	t.Run("Lower bound only narrows alpha", func(t *testing.T) {
		cache := newTranspositions()
		// a fail-high at beta=3 stores a lower bound
		cache.store(key, 7, 0, 3)

		_, alpha, beta, ok := cache.probe(key, -10, 10)

		require.False(t, ok)
		assert.Equal(t, 7, alpha)
		assert.Equal(t, 10, beta)

		score, _, _, ok := cache.probe(key, -10, 6)
		require.True(t, ok)
		assert.Equal(t, 7, score)
	})

	t.Run("Upper bound only narrows beta", func(t *testing.T) {
		cache := newTranspositions()
		// a fail-low at alpha=0 stores an upper bound
		cache.store(key, -4, 0, 10)

		_, alpha, beta, ok := cache.probe(key, -10, 10)

		require.False(t, ok)
		assert.Equal(t, -10, alpha)
		assert.Equal(t, -4, beta)
		assert.Equal(t, 1, cache.size())
	})

	t.Run("Depth is part of the key", func(t *testing.T) {
		cache := newTranspositions()
		cache.store(key, 5, MinScore, MaxScore)

		_, _, _, ok := cache.probe(cacheKey{board: board, remaining: 3}, MinScore, MaxScore)

		assert.False(t, ok)
	})
}
