package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

const (
	MessageStart      = "Bắt đầu chơi!"
	MessageDraw       = "Trò chơi hòa!"
	MessageMachineWon = "Máy đã chiến thắng!"
)

const RulesText = `Luật chơi Tic Tac Toe 8x8:
    - Mục tiêu: Xếp 5 dấu liên tiếp (theo hàng, cột, hoặc chéo).

    Chế độ đấu với máy:
    - Người chơi nhập tên trước khi bắt đầu.
    - Mỗi trận thắng sẽ được cộng 1 điểm.

    Chế độ đấu 2 người:
    - Hai người chơi luân phiên đặt dấu X và O trên bàn cờ.
    - Người thắng sẽ được bắt đầu ở lượt kế tiếp.`

// ResultMessage is the text shown to the player for a game's current state.
func ResultMessage(game entity.Game) string {
	switch {
	case game.IsOngoing():
		return MessageStart
	case !game.IsFinished():
		return ""
	case game.Winner == entity.PlayerTie:
		return MessageDraw
	case game.Winner == entity.PlayerO && game.IsWithAI():
		return MessageMachineWon
	default:
		return fmt.Sprintf("Chúc mừng %s đã chiến thắng!", game.Winner)
	}
}
