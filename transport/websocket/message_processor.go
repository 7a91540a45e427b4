package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
	"github.com/rocketscienceinc/caro-backend/internal/tictactoe"
)

const (
	actionGameStart     = "game:start"
	actionGameMove      = "game:move"
	actionGameRestart   = "game:restart"
	actionGameCountdown = "game:countdown"
	actionGameState     = "game:state"
	actionRules         = "rules"
	actionError         = "error"
)

const writeWait = 10 * time.Second

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type StartPayload struct {
	Mode       string `json:"mode"`
	PlayerName string `json:"player_name"`
}

type MovePayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type StatePayload struct {
	Game    entity.Game `json:"game"`
	Message string      `json:"message,omitempty"`
}

type CountdownPayload struct {
	Count int `json:"count"`
}

type RulesPayload struct {
	Text string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// client is one socket connection and the session it drives.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu              sync.Mutex
	session         *tictactoe.GameController
	sessionID       string
	cancelCountdown func()
}

func (that *client) sendMessage(action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = that.conn.WriteMessage(websocket.TextMessage, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendError(message string) error {
	return that.sendMessage(actionError, ErrorPayload{Message: message})
}

func (that *client) sendState(game entity.Game) error {
	return that.sendMessage(actionGameState, StatePayload{
		Game:    game,
		Message: tictactoe.ResultMessage(game),
	})
}

// stopCountdown cancels a running countdown, if any.
func (that *client) stopCountdown() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.cancelCountdown != nil {
		that.cancelCountdown()
		that.cancelCountdown = nil
	}
}
