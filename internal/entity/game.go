package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

const (
	// ModePlayerVsPlayer - both marks are entered on the same client.
	ModePlayerVsPlayer = "player-vs-player"
	// ModePlayerVsAI - the human plays X, the machine answers with O.
	ModePlayerVsAI = "player-vs-ai"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the state of one session: board, whose turn it is and the outcome.
type Game struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	PlayerName string `json:"player_name,omitempty"`
	Board      Board  `json:"board"`
	Turn       Mark   `json:"player_turn"`
	Winner     string `json:"winner"`
	Status     string `json:"status"`
	LastMove   *Move  `json:"last_move,omitempty"`
	Wins       int    `json:"wins"`
}

func NewGame(id, mode, playerName string) *Game {
	return &Game{
		ID:         id,
		Mode:       mode,
		PlayerName: playerName,
		Turn:       MarkX,
		Status:     StatusWaiting,
	}
}

func ValidateMode(mode string) error {
	switch mode {
	case ModePlayerVsPlayer, ModePlayerVsAI:
		return nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownGameMode, mode)
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsWithAI() bool {
	return that.Mode == ModePlayerVsAI
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Finish moves the game into the finished state with the given winner
// (PlayerX, PlayerO or PlayerTie).
func (that *Game) Finish(winner string) {
	that.Winner = winner
	that.Status = StatusFinished
	that.Turn = Empty
}

// Reset clears the board for a new round. The win counter survives.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = MarkX
	that.Winner = ""
	that.Status = StatusWaiting
	that.LastMove = nil
}
