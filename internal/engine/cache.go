package engine

import "github.com/rocketscienceinc/caro-backend/internal/entity"

type boundFlag uint8

const (
	boundExact boundFlag = iota
	boundLower
	boundUpper
)

type cacheKey struct {
	board     entity.Board
	remaining int
}

type cacheEntry struct {
	score int
	flag  boundFlag
}

// transpositions memoizes scores of positions searched during one decision.
// Entries are keyed by the full board and the plies left below it, and
// carry the bound type produced by the alpha-beta window they were
// computed under.
type transpositions struct {
	entries map[cacheKey]cacheEntry
	hits    int
}

func newTranspositions() *transpositions {
	return &transpositions{entries: make(map[cacheKey]cacheEntry)}
}

// probe returns a usable score, or narrows alpha/beta with a stored bound.
func (t *transpositions) probe(key cacheKey, alpha, beta int) (score, newAlpha, newBeta int, ok bool) {
	entry, found := t.entries[key]
	if !found {
		return 0, alpha, beta, false
	}

	switch entry.flag {
	case boundExact:
		t.hits++
		return entry.score, alpha, beta, true
	case boundLower:
		alpha = max(alpha, entry.score)
	case boundUpper:
		beta = min(beta, entry.score)
	}

	if alpha >= beta {
		t.hits++
		return entry.score, alpha, beta, true
	}

	return 0, alpha, beta, false
}

// store records score as computed with the window [alpha, beta] the node was entered with.
func (t *transpositions) store(key cacheKey, score, alpha, beta int) {
	flag := boundExact
	switch {
	case score <= alpha:
		flag = boundUpper
	case score >= beta:
		flag = boundLower
	}

	t.entries[key] = cacheEntry{score: score, flag: flag}
}

func (t *transpositions) size() int {
	return len(t.entries)
}
