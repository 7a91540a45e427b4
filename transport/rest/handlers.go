package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
	"github.com/rocketscienceinc/caro-backend/internal/repository"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	UpdateScore(w http.ResponseWriter, r *http.Request)
	GetScore(w http.ResponseWriter, r *http.Request)
}

type scoreService interface {
	RecordWin(ctx context.Context, name string) (*entity.Player, error)
	GetByName(ctx context.Context, name string) (*entity.Player, error)
}

type handlers struct {
	logger       *slog.Logger
	scoreService scoreService
}

type updateScoreRequest struct {
	Name string `json:"name"`
}

type updateScoreResponse struct {
	Success bool `json:"success"`
}

type scoreResponse struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
}

func NewHandlers(logger *slog.Logger, scoreService scoreService) Handlers {
	return &handlers{
		logger:       logger.With("component", "rest"),
		scoreService: scoreService,
	}
}

// UpdateScore adds one win to the named player.
func (that *handlers) UpdateScore(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "UpdateScore")

	var req updateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, updateScoreResponse{Success: false})
		return
	}

	if _, err := that.scoreService.RecordWin(r.Context(), req.Name); err != nil {
		log.Error("failed to update score", "player", req.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, updateScoreResponse{Success: false})
		return
	}

	writeJSON(w, http.StatusOK, updateScoreResponse{Success: true})
}

func (that *handlers) GetScore(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetScore")

	name := chi.URLParam(r, "name")

	player, err := that.scoreService.GetByName(r.Context(), name)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get score", "player", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{Name: player.Name, Score: player.Score})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
