package entity

import (
	"testing"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame("123", ModePlayerVsAI, "alice")

	// Then: it waits for the countdown with an empty board and X to move
	expectedGame := &Game{
		ID:         "123",
		Mode:       ModePlayerVsAI,
		PlayerName: "alice",
		Turn:       MarkX,
		Status:     StatusWaiting,
	}

	require.Equal(t, expectedGame, game)
	assert.Equal(t, BoardSize*BoardSize, game.Board.CountEmpty())
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should report finished
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		// Given: a game with StatusWaiting
		game := &Game{Status: StatusWaiting}

		// Then: it should report waiting
		assert.True(t, game.IsWaiting())
	})

	t.Run("IsWithAI depends on the mode", func(t *testing.T) {
		assert.True(t, (&Game{Mode: ModePlayerVsAI}).IsWithAI())
		assert.False(t, (&Game{Mode: ModePlayerVsPlayer}).IsWithAI())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		// Given: a game with unknown status
		game := &Game{Status: "unknown"}

		// When: checking if the game is active
		err := game.ConfirmOngoingState()

		// Then: it should return an error
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestGame_FinishAndReset(t *testing.T) {
	// Given: an ongoing game with one mark and two recorded wins
	game := NewGame("1", ModePlayerVsAI, "bob")
	game.Status = StatusOngoing
	game.Wins = 2
	require.NoError(t, game.Board.Set(3, 3, MarkX))
	last := NewMove(3, 3)
	game.LastMove = &last

	// When: the game finishes
	game.Finish(PlayerX)

	// Then: nobody is to move any more
	assert.Equal(t, StatusFinished, game.Status)
	assert.Equal(t, PlayerX, game.Winner)
	assert.Equal(t, Empty, game.Turn)

	// When: the game is reset
	game.Reset()

	// Then: the board is cleared but the win counter is kept
	assert.Equal(t, Board{}, game.Board)
	assert.Equal(t, MarkX, game.Turn)
	assert.Equal(t, StatusWaiting, game.Status)
	assert.Empty(t, game.Winner)
	assert.Nil(t, game.LastMove)
	assert.Equal(t, 2, game.Wins)
}

func TestValidateMode(t *testing.T) {
	require.NoError(t, ValidateMode(ModePlayerVsAI))
	require.NoError(t, ValidateMode(ModePlayerVsPlayer))
	require.ErrorIs(t, ValidateMode("online"), apperror.ErrUnknownGameMode)
}
