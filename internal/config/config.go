package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Engine     Engine `yaml:"engine"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Engine tunes the machine player's search.
type Engine struct {
	MaxDepth int `yaml:"max-depth" env:"ENGINE_MAX_DEPTH" env-default:"5"`
	Radius   int `yaml:"radius" env:"ENGINE_RADIUS" env-default:"1"`
}

// Game holds UX pacing: the pause before the machine answers and the countdown length in seconds.
type Game struct {
	AIDelay   time.Duration `yaml:"ai-delay" env:"GAME_AI_DELAY" env-default:"500ms"`
	Countdown int           `yaml:"countdown" env:"GAME_COUNTDOWN" env-default:"3"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
