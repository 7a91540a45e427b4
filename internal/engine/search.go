package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

const (
	MaxScore = 1000
	MinScore = -1000

	DefaultMaxDepth = 5
	DefaultRadius   = 1
)

var ErrNoCandidates = errors.New("no candidate moves")

// OpeningMove is played by the machine when it has to move on an empty board.
var OpeningMove = entity.NewMove(entity.BoardSize/2-1, entity.BoardSize/2-1)

// Decision is the outcome of one top-level search.
type Decision struct {
	Move  entity.Move
	Score int
	// Nodes is the number of minimax calls made.
	Nodes int
	// CacheHits counts positions answered from the transposition cache.
	CacheHits int
}

type Searcher struct {
	MaxDepth int
	Radius   int
	Machine  entity.Mark
	Human    entity.Mark
}

func NewSearcher(maxDepth, radius int) *Searcher {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if radius <= 0 {
		radius = DefaultRadius
	}

	return &Searcher{
		MaxDepth: maxDepth,
		Radius:   radius,
		Machine:  entity.MarkO,
		Human:    entity.MarkX,
	}
}

// FindBestMove picks the machine's reply for board. The board is used as
// scratch space and is left exactly as it was passed in.
//
// Every root move is searched with the full window; the first move with
// the strictly greatest score wins.
func (s *Searcher) FindBestMove(ctx context.Context, board *entity.Board) (Decision, error) {
	moves := Candidates(board, s.Human, s.Radius)
	if len(moves) == 0 {
		if board.CountEmpty() == entity.BoardSize*entity.BoardSize {
			return Decision{Move: OpeningMove}, nil
		}
		return Decision{}, ErrNoCandidates
	}

	run := &search{
		Searcher: s,
		board:    board,
		cache:    newTranspositions(),
	}

	best := Decision{Score: MinScore}
	found := false
	for _, move := range moves {
		if err := ctx.Err(); err != nil {
			return Decision{}, fmt.Errorf("search interrupted: %w", err)
		}

		score := run.child(move, s.Machine, 0, false, MinScore, MaxScore)
		if !found || score > best.Score {
			best.Move = move
			best.Score = score
			found = true
		}
	}

	best.Nodes = run.nodes
	best.CacheHits = run.cache.hits

	return best, nil
}

// search holds the mutable state of a single FindBestMove call.
type search struct {
	*Searcher
	board *entity.Board
	cache *transpositions
	nodes int
}

// child places mark on move, scores the resulting position and undoes the move.
func (s *search) child(move entity.Move, mark entity.Mark, depth int, maximizing bool, alpha, beta int) int {
	s.board[move.Row][move.Col] = mark
	defer func() { s.board[move.Row][move.Col] = entity.Empty }()

	return s.minimax(depth, maximizing, alpha, beta)
}

func (s *search) minimax(depth int, maximizing bool, alpha, beta int) int {
	s.nodes++

	key := cacheKey{board: *s.board, remaining: s.MaxDepth - depth}
	cached, a, b, ok := s.cache.probe(key, alpha, beta)
	if ok {
		return cached
	}
	alpha, beta = a, b

	score := Evaluate(s.board, s.Machine, s.Human)
	if score == WinScore || score == -WinScore || IsDraw(s.board) || depth >= s.MaxDepth {
		return score - depth
	}

	moves := Candidates(s.board, s.Human, s.Radius)
	if len(moves) == 0 {
		return score - depth
	}

	windowAlpha, windowBeta := alpha, beta

	var best int
	if maximizing {
		best = MinScore
		for _, move := range moves {
			best = max(best, s.child(move, s.Machine, depth+1, false, alpha, beta))
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
	} else {
		best = MaxScore
		for _, move := range moves {
			best = min(best, s.child(move, s.Human, depth+1, true, alpha, beta))
			beta = min(beta, best)
			if beta <= alpha {
				break
			}
		}
	}

	s.cache.store(key, best, windowAlpha, windowBeta)

	return best
}
