package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
	"github.com/rocketscienceinc/caro-backend/internal/tictactoe"
)

func (that *Server) handleStart(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleStart")

	var payload StartPayload
	if err := unmarshalPayload(msg, &payload); err != nil {
		return c.sendError(err.Error())
	}

	// a rejected start leaves the running round and its countdown alone
	if err := tictactoe.ValidateStart(payload.Mode, payload.PlayerName); err != nil {
		log.Debug("failed to start game", "error", err)
		return c.sendError(err.Error())
	}

	session := that.ensureSession(c)

	c.stopCountdown()
	if err := session.StartGame(payload.Mode, payload.PlayerName); err != nil {
		log.Error("failed to start game", "error", err)
		return c.sendError(err.Error())
	}

	that.startCountdown(ctx, c, session)

	return nil
}

func (that *Server) handleMove(ctx context.Context, c *client, msg *Message) error {
	if c.session == nil {
		return c.sendError("game is not started")
	}

	var payload MovePayload
	if err := unmarshalPayload(msg, &payload); err != nil {
		return c.sendError(err.Error())
	}

	if payload.Row == nil || payload.Col == nil {
		return c.sendError("row and col are required")
	}

	// ignored moves publish nothing
	c.session.HandleMove(ctx, *payload.Row, *payload.Col)

	return nil
}

func (that *Server) handleRestart(ctx context.Context, c *client, _ *Message) error {
	if c.session == nil {
		return c.sendError("game is not started")
	}

	c.stopCountdown()
	c.session.RestartGame()
	that.startCountdown(ctx, c, c.session)

	return nil
}

func (that *Server) handleRules(_ context.Context, c *client, _ *Message) error {
	return c.sendMessage(actionRules, RulesPayload{Text: tictactoe.RulesText})
}

func (that *Server) handleDisconnect(c *client) {
	c.stopCountdown()

	if c.sessionID == "" {
		return
	}

	that.sessions.CloseSession(c.sessionID)

	that.logger.Info("player disconnected", "method", "handleDisconnect", "game_id", c.sessionID)
}

func (that *Server) ensureSession(c *client) *tictactoe.GameController {
	if c.session != nil {
		return c.session
	}

	c.session = that.sessions.CreateSession(func(game entity.Game) {
		if err := c.sendState(game); err != nil {
			that.logger.Debug("failed to push game state", "game_id", game.ID, "error", err)
		}
	})
	c.sessionID = c.session.State().ID

	return c.session
}

// startCountdown counts down from the configured value, one tick at a time,
// then opens the round. A new countdown replaces a running one.
func (that *Server) startCountdown(ctx context.Context, c *client, session *tictactoe.GameController) {
	countdownCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.cancelCountdown = cancel
	c.mu.Unlock()

	go that.runCountdown(countdownCtx, c, session)
}

func (that *Server) runCountdown(ctx context.Context, c *client, session *tictactoe.GameController) {
	if that.countdown > 0 {
		ticker := time.NewTicker(that.countdownTick)
		defer ticker.Stop()

		for count := that.countdown; count > 0; count-- {
			if err := c.sendMessage(actionGameCountdown, CountdownPayload{Count: count}); err != nil {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}

	// stopCountdown holds c.mu too, so a cancelled countdown cannot open the next round
	c.mu.Lock()
	if ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	session.CountdownElapsed()
	c.mu.Unlock()

	if err := c.sendMessage(actionGameCountdown, CountdownPayload{Count: 0}); err != nil {
		that.logger.Debug("failed to send countdown", "error", err)
	}
}

func unmarshalPayload(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%s: payload is required", msg.Action)
	}

	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%s: malformed payload", msg.Action)
	}

	return nil
}
