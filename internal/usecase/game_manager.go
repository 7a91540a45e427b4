package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/rocketscienceinc/caro-backend/internal/engine"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
	"github.com/rocketscienceinc/caro-backend/internal/tictactoe"
)

type moveFinder interface {
	FindBestMove(ctx context.Context, board *entity.Board) (engine.Decision, error)
}

type scoreRepo interface {
	RecordWin(ctx context.Context, name string) (*entity.Player, error)
}

// GameManager keeps one GameController per connected client.
type GameManager struct {
	logger  *slog.Logger
	engine  moveFinder
	scores  scoreRepo
	aiDelay time.Duration

	mu       sync.RWMutex
	sessions map[string]*tictactoe.GameController
}

func NewGameManager(logger *slog.Logger, finder moveFinder, scores scoreRepo, aiDelay time.Duration) *GameManager {
	return &GameManager{
		logger:  logger,
		engine:  finder,
		scores:  scores,
		aiDelay: aiDelay,

		sessions: make(map[string]*tictactoe.GameController),
	}
}

// CreateSession registers a new session. onChange receives every state the
// session publishes and may be nil.
func (that *GameManager) CreateSession(onChange func(entity.Game)) *tictactoe.GameController {
	log := that.logger.With("method", "CreateSession")

	game := entity.NewGame(uuid.NewString(), entity.ModePlayerVsAI, "")

	opts := []tictactoe.Option{tictactoe.WithAIDelay(that.aiDelay)}
	if onChange != nil {
		opts = append(opts, tictactoe.WithOnChange(onChange))
	}

	controller := tictactoe.NewGameController(that.logger, game, that.engine, that.scores, opts...)

	that.mu.Lock()
	that.sessions[game.ID] = controller
	that.mu.Unlock()

	log.Info("session created", "game_id", game.ID)

	return controller
}

func (that *GameManager) GetSession(id string) (*tictactoe.GameController, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	controller, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return controller, nil
}

// CloseSession stops the session's pending machine reply and forgets it.
func (that *GameManager) CloseSession(id string) {
	that.mu.Lock()
	controller, ok := that.sessions[id]
	delete(that.sessions, id)
	that.mu.Unlock()

	if !ok {
		return
	}

	controller.Close()

	that.logger.Info("session closed", "method", "CloseSession", "game_id", id)
}

func (that *GameManager) SessionCount() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
