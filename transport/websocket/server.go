package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
	"github.com/rocketscienceinc/caro-backend/internal/tictactoe"
	"github.com/rocketscienceinc/caro-backend/transport/rest"
)

type sessionManager interface {
	CreateSession(onChange func(entity.Game)) *tictactoe.GameController
	CloseSession(id string)
}

type handlerFunc func(ctx context.Context, c *client, message *Message) error

type Server struct {
	logger   *slog.Logger
	sessions sessionManager

	countdown     int
	countdownTick time.Duration

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

type Option func(*Server)

// WithCountdown sets how many ticks a new round waits before it accepts moves.
func WithCountdown(count int, tick time.Duration) Option {
	return func(s *Server) {
		s.countdown = count
		s.countdownTick = tick
	}
}

func New(logger *slog.Logger, sessions sessionManager, opts ...Option) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,

		countdownTick: time.Second,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	for _, opt := range opts {
		opt(server)
	}

	server.handlers[actionGameStart] = server.handleStart
	server.handlers[actionGameMove] = server.handleMove
	server.handlers[actionGameRestart] = server.handleRestart
	server.handlers[actionRules] = server.handleRules

	return server
}

func (that *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ws", that.serveWS)

	return r
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	if err := rest.Serve(ctx, srv); err != nil {
		return fmt.Errorf("websocket server: %w", err)
	}

	return nil
}

// serveWS upgrades the connection and runs its read loop.
func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	c := &client{conn: conn}
	defer that.handleDisconnect(c)

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	that.handleMessages(ctx, c)
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			that.reply(c.sendError("malformed message"))
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.reply(c.sendError(fmt.Sprintf("unknown action %q", message.Action)))
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) reply(err error) {
	if err != nil {
		that.logger.Debug("failed to send reply", "error", err)
	}
}
