package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/rocketscienceinc/caro-backend/internal/engine"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

type moveFinder interface {
	FindBestMove(ctx context.Context, board *entity.Board) (engine.Decision, error)
}

type scoreRecorder interface {
	RecordWin(ctx context.Context, name string) (*entity.Player, error)
}

// GameController runs one session: it applies human moves, answers with the
// machine in player-vs-ai mode and reports finished games.
type GameController struct {
	logger  *slog.Logger
	engine  moveFinder
	scores  scoreRecorder
	aiDelay time.Duration
	// onChange is called with the lock held, after every board mutation.
	// It must not call back into the controller.
	onChange func(entity.Game)

	mu          sync.Mutex
	game        *entity.Game
	epoch       uint64
	pending     *time.Timer
	cancelReply context.CancelFunc
}

type Option func(*GameController)

// WithAIDelay sets the pause before the machine answers. Zero answers inline.
func WithAIDelay(delay time.Duration) Option {
	return func(c *GameController) {
		c.aiDelay = delay
	}
}

func WithOnChange(fn func(entity.Game)) Option {
	return func(c *GameController) {
		c.onChange = fn
	}
}

func NewGameController(logger *slog.Logger, game *entity.Game, finder moveFinder, scores scoreRecorder, opts ...Option) *GameController {
	controller := &GameController{
		logger: logger.With("component", "game_controller", "game_id", game.ID),
		engine: finder,
		scores: scores,
		game:   game,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// StartGame clears the board and waits for CountdownElapsed. The win counter is kept.
func (c *GameController) StartGame(mode, playerName string) error {
	if err := ValidateStart(mode, playerName); err != nil {
		return err
	}

	playerName = strings.TrimSpace(playerName)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPending()
	c.game.Mode = mode
	c.game.PlayerName = playerName
	c.game.Reset()
	c.notify()

	c.logger.Info("game started", "mode", mode)

	return nil
}

// ValidateStart checks a start request without touching any session.
func ValidateStart(mode, playerName string) error {
	if err := entity.ValidateMode(mode); err != nil {
		return err
	}

	if mode == entity.ModePlayerVsAI && strings.TrimSpace(playerName) == "" {
		return apperror.ErrPlayerNameRequired
	}

	return nil
}

// RestartGame abandons the current round, including a pending machine reply.
func (c *GameController) RestartGame() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPending()
	c.game.Reset()
	c.notify()
}

// CountdownElapsed makes a waiting game playable.
func (c *GameController) CountdownElapsed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.game.IsWaiting() {
		return
	}

	c.game.Status = entity.StatusOngoing
	c.notify()
}

// HandleMove plays the mark whose turn it is at (row, col). Moves that are
// not legal right now are ignored without changing anything.
func (c *GameController) HandleMove(ctx context.Context, row, col int) entity.Game {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.logger.With("method", "HandleMove")

	mark := c.game.Turn
	if c.game.IsWithAI() && mark != entity.MarkX {
		log.Debug("move ignored", "error", apperror.ErrNotYourTurn)
		return c.snapshot()
	}

	if err := MakeTurn(c.game, mark, row, col); err != nil {
		log.Debug("move ignored", "row", row, "col", col, "error", err)
		return c.snapshot()
	}

	if c.game.IsFinished() {
		c.finish(ctx)
		return c.snapshot()
	}

	c.notify()

	if c.game.IsWithAI() && c.game.Turn == entity.MarkO {
		c.scheduleReply(ctx)
	}

	return c.snapshot()
}

func (c *GameController) State() entity.Game {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot()
}

// Close stops a pending machine reply.
func (c *GameController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPending()
}

func (c *GameController) scheduleReply(ctx context.Context) {
	if c.cancelReply != nil {
		c.cancelReply()
	}

	replyCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancelReply = cancel
	epoch := c.epoch

	if c.aiDelay <= 0 {
		board := c.game.Board
		decision, err := c.engine.FindBestMove(replyCtx, &board)
		c.applyMachineMove(replyCtx, decision, err)
		return
	}

	c.pending = time.AfterFunc(c.aiDelay, func() {
		c.machineReply(replyCtx, epoch)
	})
}

// machineReply searches on a copy of the board without holding the lock,
// so RestartGame can cancel it.
func (c *GameController) machineReply(ctx context.Context, epoch uint64) {
	c.mu.Lock()
	if epoch != c.epoch || !c.game.IsOngoing() || c.game.Turn != entity.MarkO {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	board := c.game.Board
	c.mu.Unlock()

	decision, err := c.engine.FindBestMove(ctx, &board)

	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return
	}

	c.applyMachineMove(ctx, decision, err)
}

func (c *GameController) applyMachineMove(ctx context.Context, decision engine.Decision, err error) {
	log := c.logger.With("method", "applyMachineMove")

	switch {
	case errors.Is(err, engine.ErrNoCandidates):
		log.Debug("machine has no candidate moves, turn forfeited")
		c.game.Turn = entity.MarkX
		c.notify()
		return
	case err != nil:
		log.Debug("machine reply abandoned", "error", err)
		return
	}

	if err = MakeTurn(c.game, entity.MarkO, decision.Move.Row, decision.Move.Col); err != nil {
		log.Error("machine produced an illegal move", "move", decision.Move.String(), "error", err)
		c.game.Turn = entity.MarkX
		c.notify()
		return
	}

	log.Debug("machine moved",
		"move", decision.Move.String(),
		"score", decision.Score,
		"nodes", decision.Nodes,
		"cache_hits", decision.CacheHits,
	)

	if c.game.IsFinished() {
		c.finish(ctx)
		return
	}

	c.notify()
}

// finish reports a finished game. A human win against the machine is
// persisted; the local counter only moves once the store confirms it.
func (c *GameController) finish(ctx context.Context) {
	log := c.logger.With("method", "finish")

	if c.game.IsWithAI() && c.game.Winner == entity.PlayerX {
		if _, err := c.scores.RecordWin(ctx, c.game.PlayerName); err != nil {
			log.Warn("failed to record win", "player", c.game.PlayerName, "error", err)
		} else {
			c.game.Wins++
		}
	}

	log.Info("game finished", "winner", c.game.Winner)

	c.notify()
}

func (c *GameController) cancelPending() {
	c.epoch++

	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}

	if c.cancelReply != nil {
		c.cancelReply()
		c.cancelReply = nil
	}
}

func (c *GameController) notify() {
	if c.onChange != nil {
		c.onChange(c.snapshot())
	}
}

func (c *GameController) snapshot() entity.Game {
	game := *c.game
	if c.game.LastMove != nil {
		move := *c.game.LastMove
		game.LastMove = &move
	}
	return game
}

// MakeTurn places mark at (row, col) and advances the game to the next
// turn or to its final state.
func MakeTurn(game *entity.Game, mark entity.Mark, row, col int) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(game, mark, row, col); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Board[row][col] = mark
	move := entity.NewMove(row, col)
	game.LastMove = &move

	updateGameStatus(game, mark)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, mark entity.Mark, row, col int) error {
	if !entity.InBounds(row, col) {
		return apperror.ErrInvalidCell
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if game.Board[row][col] != entity.Empty {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, mark entity.Mark) {
	switch engine.Classify(&game.Board) {
	case engine.WonX:
		game.Finish(entity.PlayerX)
	case engine.WonO:
		game.Finish(entity.PlayerO)
	case engine.Drawn:
		game.Finish(entity.PlayerTie)
	default:
		game.Turn = mark.Opponent()
	}
}
