package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads values and fills defaults", func(t *testing.T) {
		// Given: a config file that only sets some keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nredis:\n  host: cache\nengine:\n  max-depth: 3\ngame:\n  ai-delay: 250ms\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: the config is loaded
		conf := MustLoad(path)

		// Then: explicit values win and the rest come from env-default
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 3, conf.Engine.MaxDepth)
		assert.Equal(t, 1, conf.Engine.Radius)
		assert.Equal(t, 250*time.Millisecond, conf.Game.AIDelay)
		assert.Equal(t, 3, conf.Game.Countdown)
	})

	t.Run("Panics when the file is missing", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}

func TestRedis_GetRedisAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", (&Redis{Host: "localhost", Port: "6379"}).GetRedisAddr())
	assert.Empty(t, (&Redis{}).GetRedisAddr())
}
