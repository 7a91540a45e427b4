package apperror

import "errors"

var (
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrInvalidCell        = errors.New("invalid cell index")
	ErrInvalidMark        = errors.New("invalid mark")
	ErrUnknownGameMode    = errors.New("unknown game mode")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrSessionNotFound    = errors.New("session not found")
)
