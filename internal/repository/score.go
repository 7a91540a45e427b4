package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

var ErrPlayerNotFound = errors.New("player not found")

const scoreKeyPrefix = "score:"

type ScoreRepository interface {
	RecordWin(ctx context.Context, name string) (*entity.Player, error)
	GetByName(ctx context.Context, name string) (*entity.Player, error)
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

// RecordWin adds one win to the player's score, creating the player on first win.
func (that *dbScore) RecordWin(ctx context.Context, name string) (*entity.Player, error) {
	key, err := scoreKey(name)
	if err != nil {
		return nil, err
	}

	score, err := that.client.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to increment score: %w", err)
	}

	return &entity.Player{Name: strings.TrimSpace(name), Score: score}, nil
}

func (that *dbScore) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	key, err := scoreKey(name)
	if err != nil {
		return nil, err
	}

	score, err := that.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get score by name: %w", err)
	}

	return &entity.Player{Name: strings.TrimSpace(name), Score: score}, nil
}

func scoreKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.ErrPlayerNameRequired
	}

	return scoreKeyPrefix + name, nil
}
